package parser

// Kind classifies a complete top-level element of an OSM XML stream.
type Kind int

const (
	// KindUnknown is any block or standalone line that is not one of the
	// recognized markers (blank lines, comments, unrecognized tags).
	KindUnknown Kind = iota

	// KindNative is a structural marker passed through unfiltered:
	// the XML declaration, <osm>, </osm> and <bounds>.
	KindNative

	// KindNode is a coordinate-tagged point element.
	KindNode

	// KindWay is an ordered list of node references.
	KindWay

	// KindRelation is a group of members referencing other elements.
	KindRelation
)

// String returns the OSM tag name for top-level kinds.
func (k Kind) String() string {
	switch k {
	case KindNative:
		return "native"
	case KindNode:
		return "node"
	case KindWay:
		return "way"
	case KindRelation:
		return "relation"
	default:
		return "unknown"
	}
}

// Tag names recognized by the scanner and the keep-decision engine.
const (
	TagNode     = "node"
	TagWay      = "way"
	TagRelation = "relation"
	TagTag      = "tag"
	TagNd       = "nd"
	TagMember   = "member"
)

// nativeTags are always complete on the line that opens them.
var nativeTags = map[string]bool{
	"bound":  true,
	"?xml":   true,
	"osm":    true,
	"bounds": true,
}

// topLevelTags begin a new element.
var topLevelTags = map[string]Kind{
	TagNode:     KindNode,
	TagWay:      KindWay,
	TagRelation: KindRelation,
}

// rootClose is the document-root close marker. It carries no opening tag
// so it is recognized by its text.
const rootClose = "</osm>"

// Line is one input line of an element with its terminator removed.
type Line struct {
	// Text is the raw line. Trailing whitespace (including '\r') is removed.
	Text string

	// Tag is the opening tag name found at the start of the line,
	// or empty when the line opens nothing.
	Tag string

	// Inner marks nested children of a top-level element (tag, nd, member
	// and anything else) that are subject to per-line keep decisions.
	Inner bool
}

// Element is one complete top-level block of the input.
type Element struct {
	Kind Kind

	// Tag is the opening tag name of the block, empty for untagged lines.
	Tag string

	// Lines holds every line of the element in input order.
	Lines []Line

	// StartLine is the 1-based input line number of the first line.
	StartLine int64
}

// Header returns the first line of the element, which carries the
// element's own attributes (id, lat, lon).
func (e *Element) Header() string {
	if len(e.Lines) == 0 {
		return ""
	}
	return e.Lines[0].Text
}

// InnerLines returns the nested children carrying the given tag name.
func (e *Element) InnerLines(tag string) []Line {
	var out []Line
	for _, l := range e.Lines {
		if l.Inner && l.Tag == tag {
			out = append(out, l)
		}
	}
	return out
}

// HasInner reports whether the element has at least one nested child
// with the given tag name.
func (e *Element) HasInner(tag string) bool {
	for _, l := range e.Lines {
		if l.Inner && l.Tag == tag {
			return true
		}
	}
	return false
}

// Texts returns the raw text of every line.
func (e *Element) Texts() []string {
	out := make([]string, len(e.Lines))
	for i, l := range e.Lines {
		out[i] = l.Text
	}
	return out
}
