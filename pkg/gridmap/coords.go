// pkg/gridmap/coords.go
package gridmap

// Point is a cell position. Y растёт вниз (на юг).
type Point struct {
	X, Y int
}

// Direction is one of the four grid directions.
type Direction int

const (
	North Direction = iota
	West
	South
	East
)

// Mask bits, one per direction. A NeighborMask is built from these.
const (
	MaskNorth Mask = 1 << North
	MaskWest  Mask = 1 << West
	MaskSouth Mask = 1 << South
	MaskEast  Mask = 1 << East
)

// Mask is a 4-bit set over {N, W, S, E}.
type Mask uint8

// Has reports whether the bit for d is set.
func (m Mask) Has(d Direction) bool {
	return m&(1<<d) != 0
}

// Count returns the number of set directions.
func (m Mask) Count() int {
	n := 0
	for d := North; d <= East; d++ {
		if m.Has(d) {
			n++
		}
	}
	return n
}

// TraversalOrder is the tie-break order used by the flood fill: South, East, North, West.
// Меняя порядок, меняем и распределение id, так что трогать аккуратно.
var TraversalOrder = [4]Direction{South, East, North, West}

var directionOffsets = [4]Point{
	North: {X: 0, Y: -1},
	West:  {X: -1, Y: 0},
	South: {X: 0, Y: 1},
	East:  {X: 1, Y: 0},
}

// Offset returns the unit step for the direction.
func (d Direction) Offset() Point {
	return directionOffsets[d]
}

// String returns the compass letter.
func (d Direction) String() string {
	switch d {
	case North:
		return "N"
	case West:
		return "W"
	case South:
		return "S"
	case East:
		return "E"
	}
	return "?"
}

// Add returns the sum of two points.
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Step returns the neighbouring point in direction d.
func (p Point) Step(d Direction) Point {
	return p.Add(d.Offset())
}
