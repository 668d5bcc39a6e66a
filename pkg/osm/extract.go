package osm

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/beetlebugorg/osmclip/internal/parser"
)

// Extract copies the elements of r that survive filtering to w.
//
// The input is read once, front to back. Nodes inside opts.Bounds are kept;
// a way is kept only if all of its nodes were kept; a relation is kept if
// it has at least one member, with members pruned to kept ways. Kept
// elements are written verbatim, one line at a time.
//
// The returned Stats are valid even when err is non-nil. If the input ends
// inside an open element the error matches ErrTruncated; everything
// decided before that point has already been written.
//
// Example:
//
//	opts := osm.DefaultExtractOptions()
//	opts.Bounds = []osm.Bounds{{MinLon: 2.2, MinLat: 48.8, MaxLon: 2.5, MaxLat: 48.9}}
//	stats, err := osm.Extract(in, out, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(stats)
func Extract(r io.Reader, w io.Writer, opts ExtractOptions) (Stats, error) {
	if err := opts.Validate(); err != nil {
		return Stats{}, err
	}
	eol, err := opts.lineTerminator()
	if err != nil {
		return Stats{}, err
	}
	region, err := NewRegion(opts.Bounds...)
	if err != nil {
		return Stats{}, err
	}
	logger := opts.logger()

	maxLine := opts.MaxLineSize
	if maxLine <= 0 {
		maxLine = parser.DefaultMaxLineSize
	}

	run := &extraction{
		scanner: parser.NewScannerSize(r, maxLine),
		filter: NewFilter(region, FilterOptions{
			Strict:                 opts.Strict,
			RequireSurvivingMember: opts.RequireSurvivingMember,
			Logger:                 logger,
		}),
		emitter: newEmitter(w, eol),
	}

	interval := opts.ProgressInterval
	next := interval
	report := func() {
		if opts.Progress != nil {
			opts.Progress(run.stats())
		}
	}

	for {
		el, err := run.scanner.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			report()
			if errors.Is(err, parser.ErrTruncated) {
				logger.Warn("input truncated", "error", err)
			}
			return run.stats(), fmt.Errorf("scan input: %w", err)
		}
		run.elements++

		d, err := run.filter.Decide(el)
		if err != nil {
			report()
			return run.stats(), err
		}
		if d.Keep {
			run.kept++
			if err := run.emitter.emit(d.Lines); err != nil {
				report()
				return run.stats(), fmt.Errorf("write output: %w", err)
			}
		} else {
			run.dropped++
			logger.Debug("element dropped",
				"kind", el.Kind.String(),
				"line", el.StartLine,
				"reason", d.Reason)
		}

		if interval > 0 && run.scanner.Lines() >= next {
			report()
			next = (run.scanner.Lines()/interval + 1) * interval
		}
	}

	report()
	return run.stats(), nil
}

// extraction holds the state of a single Extract call.
type extraction struct {
	scanner *parser.Scanner
	filter  *Filter
	emitter *emitter

	elements int64
	kept     int64
	dropped  int64
}

func (x *extraction) stats() Stats {
	return Stats{
		Lines:          x.scanner.Lines(),
		Nodes:          x.filter.Nodes().Len(),
		Ways:           x.filter.Ways().Len(),
		Relations:      x.filter.Relations().Len(),
		Elements:       x.elements,
		Kept:           x.kept,
		Dropped:        x.dropped,
		Malformed:      x.filter.Malformed(),
		NonWhitelisted: x.filter.NonWhitelisted(),
		Bytes:          x.emitter.bytes,
	}
}

// ExtractFile runs Extract from inPath to outPath.
//
// Guards run before the output is created: the input must be a non-empty
// readable file and the output must not resolve to the input. Both files
// are closed on every path; output already flushed stays on disk if the
// run fails.
func ExtractFile(inPath, outPath string, opts ExtractOptions) (stats Stats, err error) {
	if inPath == "" {
		return Stats{}, ErrEmptyInputPath
	}
	if err := opts.Validate(); err != nil {
		return Stats{}, err
	}

	info, err := os.Stat(inPath)
	if err != nil {
		return Stats{}, &InputUnavailableError{Path: inPath, Err: err}
	}
	if info.IsDir() {
		return Stats{}, &InputUnavailableError{Path: inPath, Err: errors.New("is a directory")}
	}
	if info.Size() == 0 {
		return Stats{}, &InputUnavailableError{Path: inPath, Err: errors.New("file is empty")}
	}

	if err := checkCollision(inPath, outPath, info); err != nil {
		return Stats{}, err
	}

	in, err := os.Open(inPath)
	if err != nil {
		return Stats{}, &InputUnavailableError{Path: inPath, Err: err}
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return Stats{}, fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()

	return Extract(in, out, opts)
}

// checkCollision rejects an output path that names the input file, either
// literally or through a link.
func checkCollision(inPath, outPath string, inInfo os.FileInfo) error {
	absIn, err := filepath.Abs(inPath)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOut, err := filepath.Abs(outPath)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	if absIn == absOut {
		return fmt.Errorf("%w: %s", ErrOutputCollision, outPath)
	}
	if outInfo, err := os.Stat(outPath); err == nil && os.SameFile(inInfo, outInfo) {
		return fmt.Errorf("%w: %s", ErrOutputCollision, outPath)
	}
	return nil
}
