package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/osmclip/pkg/osm"
)

func safeExtract(in, out string) (osm.Stats, error) {
	opts := osm.DefaultExtractOptions()
	opts.Bounds = []osm.Bounds{{MinLon: -71.1, MaxLon: -71.0, MinLat: 42.3, MaxLat: 42.4}}

	stats, err := osm.ExtractFile(in, out, opts)
	if err != nil {
		var unavailable *osm.InputUnavailableError
		switch {
		case errors.As(err, &unavailable):
			// Check if file exists
			if errors.Is(err, os.ErrNotExist) {
				return stats, fmt.Errorf("input file not found: %s", unavailable.Path)
			}
			return stats, err
		case errors.Is(err, osm.ErrTruncated):
			// Everything before the cut was written
			log.Printf("Warning: %s is truncated after %d lines", in, stats.Lines)
			return stats, err
		case errors.Is(err, osm.ErrOutputCollision):
			return stats, fmt.Errorf("refusing to overwrite %s", in)
		}
		return stats, err
	}

	if stats.Malformed > 0 {
		log.Printf("Warning: %d malformed elements dropped", stats.Malformed)
	}
	return stats, nil
}

func main() {
	// Try to extract a region
	stats, err := safeExtract("massachusetts.osm", "boston.osm")
	if err != nil {
		log.Printf("Error: %v", err)
		return
	}
	fmt.Println(stats)

	// Try to extract into the input itself
	_, err = safeExtract("massachusetts.osm", "massachusetts.osm")
	if err != nil {
		log.Printf("Expected error: %v", err)
	}
}
