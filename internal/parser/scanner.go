package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// DefaultMaxLineSize bounds the length of a single input line.
// OSM exports keep one tag per line, so this only guards against
// pathological inputs.
const DefaultMaxLineSize = 16 << 20

// Scanner groups the lines of an OSM XML stream into complete elements.
//
// It reads one line at a time and tracks nesting with a stack of open tag
// names. An element is complete when the stack returns to empty. Only the
// element being accumulated is held in memory.
//
// The scanner relies on the layout produced by OSM exporters: one tag per
// line, every opening tag starting its line. It is not an XML parser.
type Scanner struct {
	sc    *bufio.Scanner
	lines int64
	stack []string
}

// NewScanner creates a scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	return NewScannerSize(r, DefaultMaxLineSize)
}

// NewScannerSize creates a scanner whose line buffer may grow to maxLineSize bytes.
func NewScannerSize(r io.Reader, maxLineSize int) *Scanner {
	sc := bufio.NewScanner(r)
	initial := 64 * 1024
	if maxLineSize < initial {
		initial = maxLineSize
	}
	sc.Buffer(make([]byte, 0, initial), maxLineSize)
	return &Scanner{sc: sc}
}

// Lines returns the number of input lines consumed so far.
func (s *Scanner) Lines() int64 {
	return s.lines
}

// Next returns the next complete element.
//
// At the end of well-formed input it returns io.EOF. If the input ends while
// an element is still open it returns *ErrTruncatedElement instead, and the
// partial element is discarded. Read failures are returned wrapped.
func (s *Scanner) Next() (*Element, error) {
	el := &Element{}

	for s.sc.Scan() {
		s.lines++
		text := strings.TrimRight(s.sc.Text(), " \t\r")
		if len(el.Lines) == 0 {
			el.StartLine = s.lines
		}

		tag := OpeningTag(text)
		atRoot := len(s.stack) == 0
		if tag != "" {
			s.stack = append(s.stack, tag)
		}
		line := Line{Text: text, Tag: tag}

		switch {
		case tag == "" && atRoot:
			// standalone line: blank, comment, stray text or </osm>
			el.Lines = append(el.Lines, line)
			if strings.TrimSpace(text) == rootClose {
				el.Kind = KindNative
				el.Tag = "/osm"
			}
			return el, nil

		case nativeTags[tag]:
			el.Lines = append(el.Lines, line)
			el.Kind = KindNative
			el.Tag = tag
			s.stack = s.stack[:0]
			return el, nil

		case tag == "":
			// closing line or text content of the open element
			el.Lines = append(el.Lines, line)

		case atRoot:
			if kind, ok := topLevelTags[tag]; ok {
				el.Kind = kind
			} else {
				el.Kind = KindUnknown
			}
			el.Tag = tag
			el.Lines = append(el.Lines, line)

		case topLevelTags[tag] != 0:
			// nested top-level marker: kept with the outer element
			el.Lines = append(el.Lines, line)

		default:
			line.Inner = true
			el.Lines = append(el.Lines, line)
		}

		s.closeTag(text)
		if len(s.stack) == 0 {
			return el, nil
		}
	}

	if err := s.sc.Err(); err != nil {
		return nil, fmt.Errorf("read line %d: %w", s.lines+1, err)
	}

	if len(s.stack) > 0 {
		err := &ErrTruncatedElement{Tag: el.Tag, Line: el.StartLine, Depth: len(s.stack)}
		s.stack = s.stack[:0]
		return nil, err
	}

	return nil, io.EOF
}

// closeTag pops the top of the stack if line closes it, either with a
// self-closing marker or with the matching closing tag.
func (s *Scanner) closeTag(line string) bool {
	if len(s.stack) == 0 {
		return false
	}
	top := s.stack[len(s.stack)-1]
	if !strings.HasSuffix(line, "/>") && !strings.HasSuffix(line, "</"+top+">") {
		return false
	}
	s.stack = s.stack[:len(s.stack)-1]
	return true
}
