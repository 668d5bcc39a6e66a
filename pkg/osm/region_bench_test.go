package osm

import (
	"fmt"
	"strings"
	"testing"
)

// Benchmark R-tree box lookup vs linear scan for regions split into tiles.

// BenchmarkRegionContains_Rtree benchmarks point lookups through the R-tree.
func BenchmarkRegionContains_Rtree(b *testing.B) {
	region := createTiledRegion(b, 100)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = region.Contains(float64(i%200)/10.0, float64(i%150)/10.0)
	}
}

// BenchmarkRegionContains_Linear benchmarks the same lookups over every box.
func BenchmarkRegionContains_Linear(b *testing.B) {
	region := createTiledRegion(b, 100)
	boxes := region.Boxes()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		lon, lat := float64(i%200)/10.0, float64(i%150)/10.0
		for _, box := range boxes {
			if box.Contains(lon, lat) {
				break
			}
		}
	}
}

// BenchmarkNewRegion benchmarks R-tree construction.
func BenchmarkNewRegion(b *testing.B) {
	boxes := tiles(100)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := NewRegion(boxes...); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkExtract benchmarks a full pass over a synthetic export.
func BenchmarkExtract(b *testing.B) {
	input := createLargeExport(10000)
	opts := testOptions()
	opts.ProgressInterval = 0

	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Extract(strings.NewReader(input), discard{}, opts); err != nil {
			b.Fatal(err)
		}
	}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

// tiles covers 0..n/10 degrees of longitude with n*n/10 tenth-degree boxes.
func tiles(n int) []Bounds {
	var boxes []Bounds
	for x := 0; x < n; x++ {
		for y := 0; y < n/10; y++ {
			lon, lat := float64(x)/10.0, float64(y)/10.0
			boxes = append(boxes, Bounds{MinLon: lon, MinLat: lat, MaxLon: lon + 0.1, MaxLat: lat + 0.1})
		}
	}
	return boxes
}

func createTiledRegion(b *testing.B, n int) *Region {
	b.Helper()
	region, err := NewRegion(tiles(n)...)
	if err != nil {
		b.Fatal(err)
	}
	return region
}

// createLargeExport builds nodes on a grid straddling the test bounds, one
// way per consecutive node pair and one relation per ten ways.
func createLargeExport(numNodes int) string {
	var sb strings.Builder
	sb.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<osm version=\"0.6\">\n")
	for i := 1; i <= numNodes; i++ {
		lon := -20.0 + float64(i%400)/10.0
		lat := -20.0 + float64(i/400)/float64(numNodes/400)*40.0
		fmt.Fprintf(&sb, " <node id=\"%d\" lat=\"%f\" lon=\"%f\">\n  <tag k=\"n\" v=\"%d\"/>\n </node>\n", i, lat, lon, i)
	}
	for i := 1; i < numNodes; i++ {
		fmt.Fprintf(&sb, " <way id=\"%d\">\n  <nd ref=\"%d\"/>\n  <nd ref=\"%d\"/>\n </way>\n", i, i, i+1)
	}
	for i := 1; i < numNodes; i += 10 {
		fmt.Fprintf(&sb, " <relation id=\"%d\">\n", i)
		for j := i; j < i+10 && j < numNodes; j++ {
			fmt.Fprintf(&sb, "  <member type=\"way\" ref=\"%d\" role=\"\"/>\n", j)
		}
		sb.WriteString(" </relation>\n")
	}
	sb.WriteString("</osm>\n")
	return sb.String()
}
