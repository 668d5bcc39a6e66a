package osm

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beetlebugorg/osmclip/internal/parser"
)

// testBounds is the box used by the scenario tests: (-10,-10)-(10,10).
var testBounds = Bounds{MinLon: -10, MinLat: -10, MaxLon: 10, MaxLat: 10}

func newTestFilter(t *testing.T, opts FilterOptions) (*Filter, *bytes.Buffer) {
	t.Helper()
	region, err := NewRegion(testBounds)
	require.NoError(t, err)
	var logs bytes.Buffer
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return NewFilter(region, opts), &logs
}

// element scans exactly one element from text.
func element(t *testing.T, text string) *parser.Element {
	t.Helper()
	el, err := parser.NewScanner(strings.NewReader(text)).Next()
	require.NoError(t, err)
	return el
}

func decide(t *testing.T, f *Filter, text string) Decision {
	t.Helper()
	d, err := f.Decide(element(t, text))
	require.NoError(t, err)
	return d
}

// TestFilterScenarios walks the reference scenarios in input order
func TestFilterScenarios(t *testing.T) {
	f, _ := newTestFilter(t, FilterOptions{})

	// Scenario 1: point inside kept, point outside dropped
	d := decide(t, f, `<node id="1" lat="5" lon="5"/>`)
	assert.True(t, d.Keep)
	d = decide(t, f, `<node id="2" lat="50" lon="50"/>`)
	assert.False(t, d.Keep)
	assert.True(t, f.Nodes().Contains(1))
	assert.False(t, f.Nodes().Contains(2))

	// Scenario 2: line referencing a dropped point is dropped entirely
	d = decide(t, f, `<way id="10">
 <nd ref="1"/>
 <nd ref="2"/>
 <tag k="highway" v="residential"/>
</way>`)
	assert.False(t, d.Keep)
	assert.Empty(t, d.Lines)
	assert.False(t, f.Ways().Contains(10))

	// Scenario 3: line referencing only kept points is kept in full
	way := `<way id="11">
 <nd ref="1"/>
 <tag k="highway" v="service"/>
</way>`
	d = decide(t, f, way)
	require.True(t, d.Keep)
	assert.Equal(t, strings.Split(way, "\n"), d.Lines)
	assert.True(t, f.Ways().Contains(11))

	// Scenario 4: group kept, members pruned to kept lines
	d = decide(t, f, `<relation id="20">
 <member type="way" ref="11" role="outer"/>
 <member type="way" ref="999" role="inner"/>
</relation>`)
	require.True(t, d.Keep)
	assert.Equal(t, []string{
		`<relation id="20">`,
		` <member type="way" ref="11" role="outer"/>`,
		`</relation>`,
	}, d.Lines)
	assert.True(t, f.Relations().Contains(20))

	// Scenario 5: group without member lines dropped
	d = decide(t, f, `<relation id="21">
 <tag k="type" v="route"/>
</relation>`)
	assert.False(t, d.Keep)
	assert.False(t, f.Relations().Contains(21))

	assert.Equal(t, 1, f.Nodes().Len())
	assert.Equal(t, 1, f.Ways().Len())
	assert.Equal(t, 1, f.Relations().Len())
}

// TestFilterNodeDropsChildren tests that a node outside the region loses its tags too
func TestFilterNodeDropsChildren(t *testing.T) {
	f, _ := newTestFilter(t, FilterOptions{})
	d := decide(t, f, `<node id="2" lat="50" lon="50">
 <tag k="name" v="far"/>
</node>`)
	assert.False(t, d.Keep)
	assert.Empty(t, d.Lines)
	assert.Equal(t, "outside region", d.Reason)
}

// TestFilterNodeAttributeOrder tests that lon-before-lat is read correctly
func TestFilterNodeAttributeOrder(t *testing.T) {
	f, _ := newTestFilter(t, FilterOptions{})
	// lat=50 is outside, lon=5 inside; reading by position would swap them
	d := decide(t, f, `<node id="3" lon="5" lat="50"/>`)
	assert.False(t, d.Keep)
	d = decide(t, f, `<node id="4" lon="-10" lat="10"/>`)
	assert.True(t, d.Keep)
}

// TestFilterWayWithoutRefs tests vacuous closure
func TestFilterWayWithoutRefs(t *testing.T) {
	f, _ := newTestFilter(t, FilterOptions{})
	d := decide(t, f, `<way id="12">
 <tag k="note" v="no nodes"/>
</way>`)
	assert.True(t, d.Keep)
	assert.True(t, f.Ways().Contains(12))
}

// TestFilterWayUnreadableRef tests that a bad reference counts as unresolved
func TestFilterWayUnreadableRef(t *testing.T) {
	f, _ := newTestFilter(t, FilterOptions{})
	decide(t, f, `<node id="1" lat="0" lon="0"/>`)
	d := decide(t, f, `<way id="13">
 <nd ref="1"/>
 <nd ref="x"/>
</way>`)
	assert.False(t, d.Keep)
}

// TestFilterMemberKinds tests that only way members are resolved
func TestFilterMemberKinds(t *testing.T) {
	f, _ := newTestFilter(t, FilterOptions{})
	decide(t, f, `<node id="7" lat="0" lon="0"/>`)
	decide(t, f, `<way id="7">
 <nd ref="7"/>
</way>`)
	d := decide(t, f, `<relation id="30">
 <member type="node" ref="7" role="stop"/>
 <member type="relation" ref="7" role=""/>
 <member type="way" ref="7" role="platform"/>
 <member ref="7" role="untyped"/>
</relation>`)
	require.True(t, d.Keep)
	assert.Equal(t, []string{
		`<relation id="30">`,
		` <member type="way" ref="7" role="platform"/>`,
		` <member ref="7" role="untyped"/>`,
		`</relation>`,
	}, d.Lines)
}

// TestFilterRelationWithoutSurvivors tests both relation retention policies
func TestFilterRelationWithoutSurvivors(t *testing.T) {
	rel := `<relation id="22">
 <member type="way" ref="404" role=""/>
</relation>`

	f, _ := newTestFilter(t, FilterOptions{})
	d := decide(t, f, rel)
	require.True(t, d.Keep, "non-empty in the input is enough by default")
	assert.Equal(t, []string{`<relation id="22">`, `</relation>`}, d.Lines)
	assert.True(t, f.Relations().Contains(22))

	f, _ = newTestFilter(t, FilterOptions{RequireSurvivingMember: true})
	d = decide(t, f, rel)
	assert.False(t, d.Keep)
	assert.False(t, f.Relations().Contains(22))
}

// TestFilterNonWhitelisted tests unknown nested tags and unknown blocks
func TestFilterNonWhitelisted(t *testing.T) {
	f, logs := newTestFilter(t, FilterOptions{})

	d := decide(t, f, `<node id="1" lat="0" lon="0">
 <tag k="a" v="b"/>
 <center lat="0" lon="0"/>
</node>`)
	require.True(t, d.Keep)
	assert.Equal(t, []string{
		`<node id="1" lat="0" lon="0">`,
		` <tag k="a" v="b"/>`,
		`</node>`,
	}, d.Lines)
	assert.Equal(t, int64(1), f.NonWhitelisted())
	assert.Contains(t, logs.String(), "non-whitelisted tag <center> inside node")

	d = decide(t, f, `<changeset id="5">
 <tag k="comment" v="x"/>
</changeset>`)
	assert.False(t, d.Keep)
	assert.Equal(t, int64(2), f.NonWhitelisted())
}

// TestFilterPassThrough tests native markers and untagged lines
func TestFilterPassThrough(t *testing.T) {
	f, _ := newTestFilter(t, FilterOptions{})
	for _, text := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<osm version="0.6">`,
		` <bounds minlat="80" minlon="80" maxlat="81" maxlon="81"/>`,
		`</osm>`,
		`<!-- comment -->`,
		`   `,
	} {
		d := decide(t, f, text)
		assert.True(t, d.Keep, text)
		assert.Equal(t, []string{strings.TrimRight(text, " ")}, d.Lines)
	}
}

// TestFilterMalformed tests lenient and strict handling of missing attributes
func TestFilterMalformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"node without id", `<node lat="0" lon="0"/>`},
		{"node without lon", `<node id="1" lat="0"/>`},
		{"node with bad lat", `<node id="1" lat="x" lon="0"/>`},
		{"node out of range", `<node id="1" lat="91" lon="0"/>`},
		{"way without id", "<way>\n <nd ref=\"1\"/>\n</way>"},
		{"relation with bad id", "<relation id=\"r1\">\n <member type=\"way\" ref=\"1\"/>\n</relation>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, logs := newTestFilter(t, FilterOptions{})
			f.Nodes().Mark(1)
			d, err := f.Decide(element(t, tt.text))
			require.NoError(t, err)
			assert.False(t, d.Keep)
			assert.Equal(t, "malformed", d.Reason)
			assert.Equal(t, int64(1), f.Malformed())
			assert.Contains(t, logs.String(), "dropping malformed element")

			strict, _ := newTestFilter(t, FilterOptions{Strict: true})
			strict.Nodes().Mark(1)
			_, err = strict.Decide(element(t, tt.text))
			assert.Error(t, err)
			assert.Equal(t, int64(0), strict.Malformed())
		})
	}
}

// TestFilterOutsideNodeNeedsNoID tests that coordinates are checked before the id
func TestFilterOutsideNodeNeedsNoID(t *testing.T) {
	f, _ := newTestFilter(t, FilterOptions{Strict: true})
	d, err := f.Decide(element(t, `<node lat="50" lon="50"/>`))
	require.NoError(t, err)
	assert.False(t, d.Keep)
}

// TestFilterNilElement tests the nil guard
func TestFilterNilElement(t *testing.T) {
	f, _ := newTestFilter(t, FilterOptions{})
	_, err := f.Decide(nil)
	assert.Error(t, err)
}
