package osm

import (
	"fmt"
	"log/slog"

	"github.com/beetlebugorg/osmclip/internal/parser"
)

// Decision is the outcome of filtering one element.
type Decision struct {
	// Keep reports whether the element is written.
	Keep bool

	// Lines holds the surviving lines of a kept element, in input order.
	Lines []string

	// Reason explains a discard. Empty for kept elements.
	Reason string
}

// Filter is the keep-decision engine.
//
// It owns the node, way and relation registries for one pass. Nodes are
// kept by position, ways by referential closure over kept nodes, and
// relations by non-emptiness with their members pruned to kept ways.
// Decisions depend on the input order: a way can only see nodes decided
// before it, a relation only ways decided before it.
type Filter struct {
	region *Region
	opts   FilterOptions
	logger *slog.Logger

	nodes     *Registry
	ways      *Registry
	relations *Registry

	malformed      int64
	nonWhitelisted int64
}

// NewFilter creates a filter with empty registries.
func NewFilter(region *Region, opts FilterOptions) *Filter {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Filter{
		region:    region,
		opts:      opts,
		logger:    logger,
		nodes:     NewRegistry(100000),
		ways:      NewRegistry(10000),
		relations: NewRegistry(10000),
	}
}

// Nodes returns the registry of kept node ids.
func (f *Filter) Nodes() *Registry { return f.nodes }

// Ways returns the registry of kept way ids.
func (f *Filter) Ways() *Registry { return f.ways }

// Relations returns the registry of kept relation ids.
func (f *Filter) Relations() *Registry { return f.relations }

// Malformed returns the number of elements dropped for bad attributes.
func (f *Filter) Malformed() int64 { return f.malformed }

// NonWhitelisted returns the number of lines and blocks dropped for an unknown tag.
func (f *Filter) NonWhitelisted() int64 { return f.nonWhitelisted }

// Decide classifies el and decides whether it is kept, marking the
// matching registry when it is.
//
// The returned error is non-nil only in strict mode, for an element whose
// id or coordinates cannot be read.
func (f *Filter) Decide(el *parser.Element) (Decision, error) {
	if el == nil {
		return Decision{}, fmt.Errorf("decide: %w", parser.ValidateElement(el))
	}
	if err := parser.ValidateElement(el); err != nil {
		return f.reject(el, err)
	}

	switch el.Kind {
	case parser.KindNative:
		return Decision{Keep: true, Lines: el.Texts()}, nil
	case parser.KindNode:
		return f.decideNode(el)
	case parser.KindWay:
		return f.decideWay(el)
	case parser.KindRelation:
		return f.decideRelation(el)
	default:
		return f.decideUnknown(el), nil
	}
}

func (f *Filter) decideNode(el *parser.Element) (Decision, error) {
	header := el.Header()
	lon, lat, err := parser.NodeCoordinate(header)
	if err != nil {
		return f.reject(el, err)
	}
	if !f.region.Contains(lon, lat) {
		return Decision{Reason: "outside region"}, nil
	}

	id, err := parser.AttrInt64(header, "id")
	if err != nil {
		return f.reject(el, err)
	}
	f.nodes.Mark(id)
	return Decision{Keep: true, Lines: f.keepLines(el)}, nil
}

func (f *Filter) decideWay(el *parser.Element) (Decision, error) {
	for _, nd := range el.InnerLines(parser.TagNd) {
		ref, err := parser.AttrInt64(nd.Text, "ref")
		if err != nil {
			return Decision{Reason: "unreadable node reference"}, nil
		}
		if !f.nodes.Contains(ref) {
			return Decision{Reason: fmt.Sprintf("node %d not kept", ref)}, nil
		}
	}

	id, err := parser.AttrInt64(el.Header(), "id")
	if err != nil {
		return f.reject(el, err)
	}
	f.ways.Mark(id)
	return Decision{Keep: true, Lines: f.keepLines(el)}, nil
}

func (f *Filter) decideRelation(el *parser.Element) (Decision, error) {
	if !el.HasInner(parser.TagMember) {
		return Decision{Reason: "no members"}, nil
	}

	id, err := parser.AttrInt64(el.Header(), "id")
	if err != nil {
		return f.reject(el, err)
	}

	lines := f.keepLines(el)
	if f.opts.RequireSurvivingMember && !hasMemberLine(lines) {
		return Decision{Reason: "no surviving members"}, nil
	}

	f.relations.Mark(id)
	return Decision{Keep: true, Lines: lines}, nil
}

// decideUnknown passes untagged standalone lines through and drops blocks
// opened by a tag the filter does not recognize.
func (f *Filter) decideUnknown(el *parser.Element) Decision {
	if el.Tag == "" {
		return Decision{Keep: true, Lines: el.Texts()}
	}
	f.nonWhitelisted++
	f.logger.Warn("dropping non-whitelisted element",
		"tag", el.Tag,
		"line", el.StartLine)
	return Decision{Reason: "non-whitelisted element"}
}

// keepLines returns the lines of a kept element after the per-line
// whitelist: tag and nd lines always survive, member lines survive if they
// reference a kept way, anything else nested is dropped.
func (f *Filter) keepLines(el *parser.Element) []string {
	out := make([]string, 0, len(el.Lines))
	for i, l := range el.Lines {
		if !l.Inner {
			out = append(out, l.Text)
			continue
		}
		switch l.Tag {
		case parser.TagTag, parser.TagNd:
			out = append(out, l.Text)
		case parser.TagMember:
			if f.keepMember(l.Text) {
				out = append(out, l.Text)
			}
		default:
			f.nonWhitelisted++
			f.logger.Warn("dropping non-whitelisted line",
				"error", &parser.ErrNonWhitelisted{Parent: el.Kind, Tag: l.Tag},
				"line", el.StartLine+int64(i))
		}
	}
	return out
}

// keepMember reports whether a member line references a kept way.
// Node and relation members are never kept.
func (f *Filter) keepMember(line string) bool {
	if typ, ok := parser.Attr(line, "type"); ok && typ != parser.TagWay {
		return false
	}
	ref, err := parser.AttrInt64(line, "ref")
	if err != nil {
		return false
	}
	return f.ways.Contains(ref)
}

// reject handles an element whose attributes cannot be read.
func (f *Filter) reject(el *parser.Element, err error) (Decision, error) {
	err = fmt.Errorf("%s at line %d: %w", el.Kind, el.StartLine, err)
	if f.opts.Strict {
		return Decision{}, err
	}
	f.malformed++
	f.logger.Warn("dropping malformed element", "error", err)
	return Decision{Reason: "malformed"}, nil
}

func hasMemberLine(lines []string) bool {
	for _, l := range lines {
		if parser.OpeningTag(l) == parser.TagMember {
			return true
		}
	}
	return false
}
