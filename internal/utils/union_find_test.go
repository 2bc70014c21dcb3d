package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnionFind(t *testing.T) {
	uf := NewUnionFind()
	uf.Union(1, 2)
	uf.Union(3, 4)
	uf.Union(2, 4)
	uf.Find(9)

	assert.True(t, uf.Connected(1, 3))
	assert.False(t, uf.Connected(1, 9))

	comps := uf.Components()
	assert.Len(t, comps, 2)
	assert.Len(t, comps[uf.Find(1)], 4)
	assert.Equal(t, []int{9}, comps[uf.Find(9)])
}
