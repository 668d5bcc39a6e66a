package osm

import (
	"bufio"
	"io"
)

// emitter writes kept elements and flushes after each one, so output on
// disk is complete up to the last decision even if the run later fails.
type emitter struct {
	w     *bufio.Writer
	eol   string
	bytes int64
}

func newEmitter(w io.Writer, eol string) *emitter {
	return &emitter{w: bufio.NewWriterSize(w, 64*1024), eol: eol}
}

// emit writes each line followed by the configured terminator.
func (e *emitter) emit(lines []string) error {
	for _, l := range lines {
		n, err := e.w.WriteString(l)
		e.bytes += int64(n)
		if err != nil {
			return err
		}
		n, err = e.w.WriteString(e.eol)
		e.bytes += int64(n)
		if err != nil {
			return err
		}
	}
	return e.w.Flush()
}
