package osm

import (
	"fmt"

	"github.com/dhconnelly/rtreego"
)

// minExtent pads degenerate boxes so they can be stored in the R-tree.
// Candidates are always confirmed with the exact inclusive test.
const minExtent = 1e-9

// Region is the area a node must fall in to be kept: the union of one or
// more bounding boxes.
//
// A single box is tested directly. With several boxes an R-tree narrows the
// candidates before the exact inclusive test, so lookups stay O(log N) for
// large box sets (e.g. a coverage split into tiles).
//
// Example:
//
//	region, err := osm.NewRegion(
//	    osm.Bounds{MinLon: -10, MinLat: -10, MaxLon: 10, MaxLat: 10},
//	    osm.Bounds{MinLon: 20, MinLat: 20, MaxLon: 30, MaxLat: 30},
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	region.Contains(25, 25) // true
type Region struct {
	boxes []Bounds
	rtree *rtreego.Rtree // nil for a single box
}

// regionEntry adapts a box to the rtreego.Spatial interface.
type regionEntry struct {
	box Bounds
}

// Bounds method for rtreego.Spatial interface.
func (e regionEntry) Bounds() rtreego.Rect {
	point := rtreego.Point{e.box.MinLon, e.box.MinLat}
	lengths := []float64{
		max(e.box.MaxLon-e.box.MinLon, minExtent),
		max(e.box.MaxLat-e.box.MinLat, minExtent),
	}
	rect, _ := rtreego.NewRect(point, lengths)
	return rect
}

// NewRegion builds a region from one or more boxes.
func NewRegion(boxes ...Bounds) (*Region, error) {
	if len(boxes) == 0 {
		return nil, fmt.Errorf("%w: region needs at least one box", ErrInvalidBounds)
	}
	for i, b := range boxes {
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("box %d: %w", i+1, err)
		}
	}

	r := &Region{boxes: append([]Bounds(nil), boxes...)}
	if len(boxes) > 1 {
		// 2D, min=25 children, max=50 children
		r.rtree = rtreego.NewTree(2, 25, 50)
		for _, b := range r.boxes {
			r.rtree.Insert(regionEntry{b})
		}
	}
	return r, nil
}

// Contains reports whether (lon, lat) lies inside any box, edges included.
func (r *Region) Contains(lon, lat float64) bool {
	if r.rtree == nil {
		return r.boxes[0].Contains(lon, lat)
	}
	query := rtreego.Point{lon, lat}.ToRect(minExtent)
	for _, spatial := range r.rtree.SearchIntersect(query) {
		if spatial.(regionEntry).box.Contains(lon, lat) {
			return true
		}
	}
	return false
}

// Boxes returns the boxes making up the region.
func (r *Region) Boxes() []Bounds {
	return r.boxes
}

// Bounds returns the union of all boxes in the region.
func (r *Region) Bounds() Bounds {
	bounds := r.boxes[0]
	for i := 1; i < len(r.boxes); i++ {
		bounds = bounds.Union(r.boxes[i])
	}
	return bounds
}
