package osm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRegistry tests the append-only identifier set
func TestRegistry(t *testing.T) {
	r := NewRegistry(0)
	assert.Equal(t, 0, r.Len())
	assert.False(t, r.Contains(1))

	r.Mark(1)
	r.Mark(-5)
	r.Mark(1)

	assert.True(t, r.Contains(1))
	assert.True(t, r.Contains(-5))
	assert.False(t, r.Contains(2))
	assert.Equal(t, 2, r.Len(), "marking twice does not grow the set")
}
