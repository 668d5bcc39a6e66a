package osm

import "fmt"

// Stats holds the running counters of an extraction.
//
// Nodes, Ways and Relations always equal the sizes of the corresponding
// registries at the moment the snapshot was taken.
type Stats struct {
	Lines     int64 // input lines read
	Nodes     int   // nodes kept
	Ways      int   // ways kept
	Relations int   // relations kept

	Elements       int64 // complete elements scanned
	Kept           int64 // elements written
	Dropped        int64 // elements discarded by a keep decision
	Malformed      int64 // elements discarded for missing or invalid attributes
	NonWhitelisted int64 // nested lines dropped for an unknown tag
	Bytes          int64 // bytes written
}

// String formats the progress line reported to operators.
func (s Stats) String() string {
	return fmt.Sprintf("After %d lines: %d nodes, %d ways kept, %d relations formed",
		s.Lines, s.Nodes, s.Ways, s.Relations)
}
