package osm

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Bounds represents a geographic bounding box in WGS-84 coordinates.
//
// Coordinates are in decimal degrees. All four edges are inclusive.
type Bounds struct {
	MinLon float64 // Western edge
	MinLat float64 // Southern edge
	MaxLon float64 // Eastern edge
	MaxLat float64 // Northern edge
}

// Contains returns true if the point (lon, lat) is within the bounds.
func (b Bounds) Contains(lon, lat float64) bool {
	return lon >= b.MinLon && lon <= b.MaxLon &&
		lat >= b.MinLat && lat <= b.MaxLat
}

// Intersects returns true if the given bounds intersects with this bounds.
func (b Bounds) Intersects(other Bounds) bool {
	return !(other.MaxLon < b.MinLon ||
		other.MinLon > b.MaxLon ||
		other.MaxLat < b.MinLat ||
		other.MinLat > b.MaxLat)
}

// Expand returns a new Bounds expanded by the given margin in all directions.
//
// Margin is in decimal degrees.
func (b Bounds) Expand(margin float64) Bounds {
	return Bounds{
		MinLon: b.MinLon - margin,
		MaxLon: b.MaxLon + margin,
		MinLat: b.MinLat - margin,
		MaxLat: b.MaxLat + margin,
	}
}

// Union returns the smallest bounds covering both b and other.
func (b Bounds) Union(other Bounds) Bounds {
	return Bounds{
		MinLon: math.Min(b.MinLon, other.MinLon),
		MinLat: math.Min(b.MinLat, other.MinLat),
		MaxLon: math.Max(b.MaxLon, other.MaxLon),
		MaxLat: math.Max(b.MaxLat, other.MaxLat),
	}
}

// Validate reports non-finite edges and inverted boxes.
// A box with zero width or height is valid.
func (b Bounds) Validate() error {
	for _, v := range []float64{b.MinLon, b.MinLat, b.MaxLon, b.MaxLat} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %v has a non-finite edge", ErrInvalidBounds, b)
		}
	}
	if b.MinLon > b.MaxLon {
		return fmt.Errorf("%w: min lon %g > max lon %g", ErrInvalidBounds, b.MinLon, b.MaxLon)
	}
	if b.MinLat > b.MaxLat {
		return fmt.Errorf("%w: min lat %g > max lat %g", ErrInvalidBounds, b.MinLat, b.MaxLat)
	}
	return nil
}

// String formats the bounds as "minLon,minLat,maxLon,maxLat".
func (b Bounds) String() string {
	return fmt.Sprintf("%g,%g,%g,%g", b.MinLon, b.MinLat, b.MaxLon, b.MaxLat)
}

// ParseBounds parses four decimal values in the order
// minLon, minLat, maxLon, maxLat.
func ParseBounds(values []string) (Bounds, error) {
	if len(values) != 4 {
		return Bounds{}, fmt.Errorf("%w: expected 4 values, got %d", ErrInvalidBounds, len(values))
	}
	var v [4]float64
	for i, s := range values {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return Bounds{}, fmt.Errorf("%w: value %d %q is not a number", ErrInvalidBounds, i+1, s)
		}
		v[i] = f
	}
	b := Bounds{MinLon: v[0], MinLat: v[1], MaxLon: v[2], MaxLat: v[3]}
	if err := b.Validate(); err != nil {
		return Bounds{}, err
	}
	return b, nil
}

// ParseBoundsString parses "minLon,minLat,maxLon,maxLat".
func ParseBoundsString(s string) (Bounds, error) {
	return ParseBounds(strings.Split(s, ","))
}
