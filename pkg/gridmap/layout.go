package gridmap

import "math"

// Layout maps grid cells to screen pixels.
type Layout struct {
	CellSize float64
	OffsetX  float64
	OffsetY  float64
}

// CellOrigin returns the top-left pixel of cell (x, y).
func (l Layout) CellOrigin(x, y int) (float32, float32) {
	return float32(l.OffsetX + float64(x)*l.CellSize), float32(l.OffsetY + float64(y)*l.CellSize)
}

// CellCenter returns the center pixel of cell (x, y).
func (l Layout) CellCenter(x, y int) (float32, float32) {
	px, py := l.CellOrigin(x, y)
	half := float32(l.CellSize / 2)
	return px + half, py + half
}

// CellAt converts a screen position to the cell under it. ok is false when
// the position is outside a width x height grid.
func (l Layout) CellAt(px, py, width, height int) (Point, bool) {
	if l.CellSize <= 0 {
		return Point{}, false
	}
	fx := (float64(px) - l.OffsetX) / l.CellSize
	fy := (float64(py) - l.OffsetY) / l.CellSize
	p := Point{X: int(math.Floor(fx)), Y: int(math.Floor(fy))}
	if p.X < 0 || p.Y < 0 || p.X >= width || p.Y >= height {
		return p, false
	}
	return p, true
}
