package osm

// Registry is an append-only set of element identifiers.
//
// An identifier is marked once its element has been kept; nothing is ever
// removed. Lookups during the single pass depend on the input being ordered
// nodes, then ways, then relations.
type Registry struct {
	ids map[int64]struct{}
}

// NewRegistry creates an empty registry sized for about hint identifiers.
func NewRegistry(hint int) *Registry {
	return &Registry{ids: make(map[int64]struct{}, hint)}
}

// Mark records id as kept.
func (r *Registry) Mark(id int64) {
	r.ids[id] = struct{}{}
}

// Contains reports whether id was kept.
func (r *Registry) Contains(id int64) bool {
	_, ok := r.ids[id]
	return ok
}

// Len returns the number of kept identifiers.
func (r *Registry) Len() int {
	return len(r.ids)
}
