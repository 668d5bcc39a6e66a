package parser

import (
	"fmt"
	"math"
)

// ValidateCoordinate validates a single coordinate pair
// WGS-84 coordinates must be within valid geographic bounds
func ValidateCoordinate(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return &ErrInvalidCoordinate{Lat: lat, Lon: lon}
	}
	if lat < -90.0 || lat > 90.0 {
		return &ErrInvalidCoordinate{Lat: lat, Lon: lon}
	}
	if lon < -180.0 || lon > 180.0 {
		return &ErrInvalidCoordinate{Lat: lat, Lon: lon}
	}
	return nil
}

// NodeCoordinate extracts and validates the coordinate of a node header.
// Attributes are looked up by name, so their order on the line is irrelevant.
func NodeCoordinate(header string) (lon, lat float64, err error) {
	lat, err = AttrFloat64(header, "lat")
	if err != nil {
		return 0, 0, err
	}
	lon, err = AttrFloat64(header, "lon")
	if err != nil {
		return 0, 0, err
	}
	if err := ValidateCoordinate(lat, lon); err != nil {
		return 0, 0, err
	}
	return lon, lat, nil
}

// ValidateElement checks the structural shape of a scanned element.
func ValidateElement(e *Element) error {
	if e == nil {
		return fmt.Errorf("element is nil")
	}
	if len(e.Lines) == 0 {
		return fmt.Errorf("element at line %d has no lines", e.StartLine)
	}
	switch e.Kind {
	case KindNode, KindWay, KindRelation:
		if e.Lines[0].Tag != e.Kind.String() {
			return fmt.Errorf("%s element at line %d does not start with <%s>",
				e.Kind, e.StartLine, e.Kind)
		}
	}
	return nil
}
