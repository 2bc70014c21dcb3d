package gridmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayoutCellAt(t *testing.T) {
	l := Layout{CellSize: 10, OffsetX: 5, OffsetY: 20}

	p, ok := l.CellAt(5, 20, 3, 2)
	assert.True(t, ok)
	assert.Equal(t, Point{X: 0, Y: 0}, p)

	p, ok = l.CellAt(34, 39, 3, 2)
	assert.True(t, ok)
	assert.Equal(t, Point{X: 2, Y: 1}, p)

	_, ok = l.CellAt(35, 20, 3, 2)
	assert.False(t, ok, "right of the grid")
	_, ok = l.CellAt(4, 20, 3, 2)
	assert.False(t, ok, "left of the offset rounds down to -1")
	_, ok = (Layout{}).CellAt(0, 0, 3, 2)
	assert.False(t, ok)
}

func TestLayoutCellGeometry(t *testing.T) {
	l := Layout{CellSize: 10, OffsetX: 5, OffsetY: 20}
	x, y := l.CellOrigin(2, 1)
	assert.Equal(t, float32(25), x)
	assert.Equal(t, float32(30), y)
	cx, cy := l.CellCenter(2, 1)
	assert.Equal(t, float32(30), cx)
	assert.Equal(t, float32(35), cy)
}
