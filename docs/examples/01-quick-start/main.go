package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/osmclip/pkg/osm"
)

func main() {
	// Boston Harbor
	bounds, err := osm.ParseBounds([]string{"-71.1", "42.3", "-71.0", "42.4"})
	if err != nil {
		log.Fatal(err)
	}

	opts := osm.DefaultExtractOptions()
	opts.Bounds = []osm.Bounds{bounds}

	stats, err := osm.ExtractFile("massachusetts.osm", "boston.osm", opts)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(stats)
	fmt.Printf("Kept %d of %d elements, %d bytes written\n",
		stats.Kept, stats.Elements, stats.Bytes)
}
