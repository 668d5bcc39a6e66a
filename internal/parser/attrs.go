package parser

import (
	"strconv"
	"strings"
)

// OpeningTag returns the name of the tag opened at the start of line,
// after leading whitespace. Processing instructions keep their '?' prefix
// ("?xml"). Closing tags, comments and text return "".
func OpeningTag(line string) string {
	s := strings.TrimLeft(line, " \t\r\n")
	if len(s) < 2 || s[0] != '<' {
		return ""
	}
	start := 1
	if s[1] == '?' {
		start = 2
	}
	end := start
	for end < len(s) && isNameByte(s[end]) {
		end++
	}
	if end == start {
		return ""
	}
	if end < len(s) && !isTagTerminator(s[end]) {
		return ""
	}
	return s[1:end]
}

// Attr returns the value of the named attribute on the first tag of line.
//
// Attributes are matched by exact name, so "id" never matches "uid" or
// "changeset_id". Both quote styles are accepted; entities are returned
// undecoded.
func Attr(line, name string) (string, bool) {
	s := strings.TrimLeft(line, " \t")
	if len(s) == 0 || s[0] != '<' {
		return "", false
	}
	i := 1
	for i < len(s) && !isSpace(s[i]) && s[i] != '>' && s[i] != '/' {
		i++
	}
	for i < len(s) {
		for i < len(s) && isSpace(s[i]) {
			i++
		}
		if i >= len(s) || s[i] == '>' || s[i] == '/' || s[i] == '?' {
			return "", false
		}
		keyStart := i
		for i < len(s) && s[i] != '=' && !isSpace(s[i]) && s[i] != '>' && s[i] != '/' {
			i++
		}
		key := s[keyStart:i]
		for i < len(s) && isSpace(s[i]) {
			i++
		}
		if i >= len(s) || s[i] != '=' {
			// valueless attribute, not valid XML; stop rather than guess
			return "", false
		}
		i++
		for i < len(s) && isSpace(s[i]) {
			i++
		}
		if i >= len(s) || (s[i] != '"' && s[i] != '\'') {
			return "", false
		}
		quote := s[i]
		i++
		valStart := i
		j := strings.IndexByte(s[i:], quote)
		if j < 0 {
			return "", false
		}
		i += j
		if key == name {
			return s[valStart:i], true
		}
		i++
	}
	return "", false
}

// AttrInt64 parses the named attribute as a signed 64-bit identifier.
func AttrInt64(line, name string) (int64, error) {
	v, ok := Attr(line, name)
	if !ok {
		return 0, &ErrMissingAttribute{Attr: name}
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, &ErrInvalidAttribute{Attr: name, Value: v, Err: err}
	}
	return n, nil
}

// AttrFloat64 parses the named attribute as a decimal number.
func AttrFloat64(line, name string) (float64, error) {
	v, ok := Attr(line, name)
	if !ok {
		return 0, &ErrMissingAttribute{Attr: name}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, &ErrInvalidAttribute{Attr: name, Value: v, Err: err}
	}
	return f, nil
}

func isNameByte(c byte) bool {
	return c == '_' || c == '-' || c == ':' || c == '.' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isTagTerminator(c byte) bool {
	return isSpace(c) || c == '/' || c == '>'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
