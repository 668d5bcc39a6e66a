package parser

import (
	"errors"
	"fmt"
)

// ErrTruncated is matched by ErrTruncatedElement through errors.Is.
var ErrTruncated = errors.New("input ended inside an open element")

// ErrInvalidCoordinate indicates coordinate out of valid bounds
type ErrInvalidCoordinate struct {
	Lat, Lon float64
}

func (e *ErrInvalidCoordinate) Error() string {
	return fmt.Sprintf("invalid coordinate: lat=%f lon=%f (lat must be ±90, lon must be ±180)",
		e.Lat, e.Lon)
}

// ErrMissingAttribute indicates a required attribute is absent from a tag
type ErrMissingAttribute struct {
	Attr string
}

func (e *ErrMissingAttribute) Error() string {
	return fmt.Sprintf("missing attribute %q", e.Attr)
}

// ErrInvalidAttribute indicates an attribute value could not be parsed
type ErrInvalidAttribute struct {
	Attr  string
	Value string
	Err   error
}

func (e *ErrInvalidAttribute) Error() string {
	return fmt.Sprintf("invalid attribute %s=%q: %v", e.Attr, e.Value, e.Err)
}

func (e *ErrInvalidAttribute) Unwrap() error {
	return e.Err
}

// ErrTruncatedElement indicates the input ended while an element was still open.
// Tag is the element's opening tag and Line the input line where it began.
type ErrTruncatedElement struct {
	Tag   string
	Line  int64
	Depth int
}

func (e *ErrTruncatedElement) Error() string {
	return fmt.Sprintf("input ended inside <%s> opened at line %d (%d tags still open)",
		e.Tag, e.Line, e.Depth)
}

func (e *ErrTruncatedElement) Is(target error) bool {
	return target == ErrTruncated
}

// ErrNonWhitelisted reports a nested tag the filter does not know how to
// carry. It is never fatal; the offending line is dropped.
type ErrNonWhitelisted struct {
	Parent Kind
	Tag    string
}

func (e *ErrNonWhitelisted) Error() string {
	return fmt.Sprintf("non-whitelisted tag <%s> inside %s", e.Tag, e.Parent)
}
