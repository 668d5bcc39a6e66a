package osm

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/beetlebugorg/osmclip/internal/parser"
)

// DefaultProgressInterval is the number of input lines between progress reports.
const DefaultProgressInterval = 250000

// FilterOptions configures the keep-decision engine.
type FilterOptions struct {
	// Strict makes a missing or unparseable id/lat/lon attribute abort the
	// run. By default the element is dropped and counted as malformed.
	Strict bool

	// RequireSurvivingMember drops relations whose member lines were all
	// pruned. By default a relation is kept as long as it had at least one
	// member line in the input.
	//
	// Enabling this makes the output a fixed point: filtering it again with
	// the same bounds reproduces it byte for byte.
	RequireSurvivingMember bool

	// Logger receives warnings about dropped lines. Nil means slog.Default().
	Logger *slog.Logger
}

// ExtractOptions configures an extraction run.
type ExtractOptions struct {
	// Bounds is the region to keep. At least one box is required; with
	// several boxes a node is kept if it falls in any of them.
	Bounds []Bounds

	Strict                 bool
	RequireSurvivingMember bool

	// LineEnding is "lf" (default) or "crlf". Every written line is
	// terminated with it regardless of the input's terminators.
	LineEnding string

	// ProgressInterval is the number of input lines between Progress calls.
	// Zero disables periodic reports; the final report is always made.
	ProgressInterval int64

	// Progress is an optional callback for tracking extraction progress.
	Progress func(Stats)

	// MaxLineSize bounds a single input line in bytes.
	MaxLineSize int

	// Logger receives diagnostics. Nil means slog.Default().
	Logger *slog.Logger
}

// DefaultExtractOptions returns default options. Bounds must still be set.
func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{
		LineEnding:       "lf",
		ProgressInterval: DefaultProgressInterval,
		MaxLineSize:      parser.DefaultMaxLineSize,
	}
}

// Validate checks the options that can be checked without reading input.
func (o ExtractOptions) Validate() error {
	if _, err := o.lineTerminator(); err != nil {
		return err
	}
	if _, err := NewRegion(o.Bounds...); err != nil {
		return err
	}
	if o.ProgressInterval < 0 {
		return fmt.Errorf("progress interval must not be negative, got %d", o.ProgressInterval)
	}
	return nil
}

// lineTerminator maps the LineEnding option to the bytes written.
func (o ExtractOptions) lineTerminator() (string, error) {
	switch strings.ToLower(o.LineEnding) {
	case "", "lf":
		return "\n", nil
	case "crlf":
		return "\r\n", nil
	default:
		return "", fmt.Errorf("unknown line ending %q (want lf or crlf)", o.LineEnding)
	}
}

func (o ExtractOptions) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
