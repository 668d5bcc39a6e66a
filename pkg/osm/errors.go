package osm

import (
	"errors"
	"fmt"

	"github.com/beetlebugorg/osmclip/internal/parser"
)

var (
	// ErrInvalidBounds indicates a bounding box that cannot be used for filtering.
	ErrInvalidBounds = errors.New("invalid bounds")

	// ErrEmptyInputPath indicates no input file was given.
	ErrEmptyInputPath = errors.New("input path is empty")

	// ErrOutputCollision indicates the output path would overwrite the input.
	ErrOutputCollision = errors.New("output path equals input path")

	// ErrTruncated indicates the input ended inside an open element.
	ErrTruncated = parser.ErrTruncated
)

// InputUnavailableError indicates the input file is missing, unreadable or empty.
type InputUnavailableError struct {
	Path string
	Err  error
}

func (e *InputUnavailableError) Error() string {
	return fmt.Sprintf("input %s unavailable: %v", e.Path, e.Err)
}

func (e *InputUnavailableError) Unwrap() error {
	return e.Err
}
