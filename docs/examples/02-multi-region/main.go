package main

import (
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/osmclip/pkg/osm"
)

func main() {
	// Boston Harbor and Nantucket in one pass
	region, err := osm.NewRegion(
		osm.Bounds{MinLon: -71.1, MaxLon: -71.0, MinLat: 42.3, MaxLat: 42.4},
		osm.Bounds{MinLon: -70.3, MaxLon: -70.0, MinLat: 41.2, MaxLat: 41.3},
	)
	if err != nil {
		log.Fatal(err)
	}

	cover := region.Bounds()
	fmt.Printf("Cover: [%.4f,%.4f] to [%.4f,%.4f]\n",
		cover.MinLon, cover.MinLat,
		cover.MaxLon, cover.MaxLat)

	// Query R-tree index for the box holding a point (O(log n))
	fmt.Println("Long Wharf inside:", region.Contains(-71.05, 42.36))
	fmt.Println("Provincetown inside:", region.Contains(-70.18, 42.05))

	in, err := os.Open("massachusetts.osm")
	if err != nil {
		log.Fatal(err)
	}
	defer in.Close()

	opts := osm.DefaultExtractOptions()
	opts.Bounds = region.Boxes()
	opts.RequireSurvivingMember = true
	opts.Progress = func(s osm.Stats) {
		fmt.Println(s)
	}

	if _, err := osm.Extract(in, os.Stdout, opts); err != nil {
		log.Fatal(err)
	}
}
