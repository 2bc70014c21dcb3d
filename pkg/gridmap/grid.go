// pkg/gridmap/grid.go
package gridmap

import (
	"errors"
	"fmt"
)

// Group id values with special meaning.
const (
	GroupEmpty     = 0 // height == 0
	GroupUngrouped = 1 // occupied, waiting for a flood fill
	FirstGroupID   = 2
)

// Cell holds the block stack height and the group id of one grid position.
type Cell struct {
	Height int
	Group  int
}

// Occupied reports whether at least one block sits on the cell.
func (c Cell) Occupied() bool {
	return c.Height > 0
}

// CellPredicate selects cells for NeighborMask.
type CellPredicate func(Cell) bool

// HasGroup matches cells that carry a real group id (>= 2).
func HasGroup(c Cell) bool { return c.Group >= FirstGroupID }

// IsUngrouped matches cells carrying the ungrouped marker.
func IsUngrouped(c Cell) bool { return c.Group == GroupUngrouped }

// CellReader is the read side of a cell store.
type CellReader interface {
	Width() int
	Height() int
	GetHeight(x, y int) int
	GetGroup(x, y int) int
}

// NeighborMask builds a {N,W,S,E} mask of the neighbours of (x, y) matching pred.
// Neighbours outside the grid never match.
func NeighborMask(r CellReader, x, y int, pred CellPredicate) Mask {
	var mask Mask
	p := Point{X: x, Y: y}
	for d := North; d <= East; d++ {
		n := p.Step(d)
		if n.X < 0 || n.Y < 0 || n.X >= r.Width() || n.Y >= r.Height() {
			continue
		}
		if pred(Cell{Height: r.GetHeight(n.X, n.Y), Group: r.GetGroup(n.X, n.Y)}) {
			mask |= 1 << d
		}
	}
	return mask
}

// Edge selects the side of the grid a row or column is added to or removed from.
type Edge int

const (
	Top Edge = iota
	Bottom
	Left
	Right
)

func (e Edge) String() string {
	switch e {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("edge(%d)", int(e))
}

var (
	ErrInvalidEdge     = errors.New("invalid edge for this operation")
	ErrLineNotEmpty    = errors.New("row or column still has occupied cells")
	ErrNothingToRemove = errors.New("grid has no row or column to remove")
)

// Grid is a rectangular, row-major array of cells.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// NewGrid creates an empty grid.
func NewGrid(width, height int) *Grid {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("gridmap: negative grid size %dx%d", width, height))
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y) is a cell of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// CellID returns the row-major id of (x, y).
func (g *Grid) CellID(x, y int) int {
	return y*g.width + x
}

// PointOf is the inverse of CellID.
func (g *Grid) PointOf(id int) Point {
	return Point{X: id % g.width, Y: id / g.width}
}

// Cell returns the cell at (x, y); ok is false outside the grid.
func (g *Grid) Cell(x, y int) (Cell, bool) {
	if !g.InBounds(x, y) {
		return Cell{}, false
	}
	return g.cells[g.CellID(x, y)], true
}

// GetHeight returns the stack height, 0 outside the grid.
func (g *Grid) GetHeight(x, y int) int {
	c, _ := g.Cell(x, y)
	return c.Height
}

// GetGroup returns the group id, 0 outside the grid.
func (g *Grid) GetGroup(x, y int) int {
	c, _ := g.Cell(x, y)
	return c.Group
}

// SetGroup writes a group id. Out of range is a programming error.
func (g *Grid) SetGroup(x, y, v int) {
	g.mustContain(x, y)
	g.cells[g.CellID(x, y)].Group = v
}

// SetHeight writes a stack height. Group ids are left to the grouping engine.
func (g *Grid) SetHeight(x, y, h int) {
	g.mustContain(x, y)
	if h < 0 {
		panic(fmt.Sprintf("gridmap: negative height %d at (%d,%d)", h, x, y))
	}
	g.cells[g.CellID(x, y)].Height = h
}

// IsOccupied reports height > 0. Cells outside the grid count as occupied,
// so nothing walks off the edge.
func (g *Grid) IsOccupied(x, y int) bool {
	c, ok := g.Cell(x, y)
	if !ok {
		return true
	}
	return c.Occupied()
}

// NeighborMask is NeighborMask over this grid.
func (g *Grid) NeighborMask(x, y int, pred CellPredicate) Mask {
	return NeighborMask(g, x, y, pred)
}

// OccupiedInRow lists occupied cells of row y from west to east.
func (g *Grid) OccupiedInRow(y int) []Point {
	var pts []Point
	for x := 0; x < g.width; x++ {
		if g.cells[g.CellID(x, y)].Occupied() {
			pts = append(pts, Point{X: x, Y: y})
		}
	}
	return pts
}

// OccupiedInColumn lists occupied cells of column x from north to south.
func (g *Grid) OccupiedInColumn(x int) []Point {
	var pts []Point
	for y := 0; y < g.height; y++ {
		if g.cells[g.CellID(x, y)].Occupied() {
			pts = append(pts, Point{X: x, Y: y})
		}
	}
	return pts
}

// EdgeRow returns the row index at the Top or Bottom edge.
func (g *Grid) EdgeRow(edge Edge) (int, error) {
	switch edge {
	case Top:
		return 0, nil
	case Bottom:
		return g.height - 1, nil
	}
	return 0, fmt.Errorf("row at %s: %w", edge, ErrInvalidEdge)
}

// EdgeColumn returns the column index at the Left or Right edge.
func (g *Grid) EdgeColumn(edge Edge) (int, error) {
	switch edge {
	case Left:
		return 0, nil
	case Right:
		return g.width - 1, nil
	}
	return 0, fmt.Errorf("column at %s: %w", edge, ErrInvalidEdge)
}

// AddRow appends an empty row at the Top or Bottom edge.
func (g *Grid) AddRow(edge Edge) error {
	if edge != Top && edge != Bottom {
		return fmt.Errorf("add row at %s: %w", edge, ErrInvalidEdge)
	}
	row := make([]Cell, g.width)
	if edge == Top {
		g.cells = append(row, g.cells...)
	} else {
		g.cells = append(g.cells, row...)
	}
	g.height++
	return nil
}

// AddColumn appends an empty column at the Left or Right edge.
func (g *Grid) AddColumn(edge Edge) error {
	if edge != Left && edge != Right {
		return fmt.Errorf("add column at %s: %w", edge, ErrInvalidEdge)
	}
	cells := make([]Cell, 0, (g.width+1)*g.height)
	for y := 0; y < g.height; y++ {
		rowStart := y * g.width
		if edge == Left {
			cells = append(cells, Cell{})
		}
		cells = append(cells, g.cells[rowStart:rowStart+g.width]...)
		if edge == Right {
			cells = append(cells, Cell{})
		}
	}
	g.cells = cells
	g.width++
	return nil
}

// RemoveRow drops the row at the Top or Bottom edge. Every cell in it must
// already be empty.
func (g *Grid) RemoveRow(edge Edge) error {
	y, err := g.EdgeRow(edge)
	if err != nil {
		return err
	}
	if g.height == 0 {
		return ErrNothingToRemove
	}
	if len(g.OccupiedInRow(y)) > 0 {
		return fmt.Errorf("remove row %d: %w", y, ErrLineNotEmpty)
	}
	start := y * g.width
	g.cells = append(g.cells[:start:start], g.cells[start+g.width:]...)
	g.height--
	return nil
}

// RemoveColumn drops the column at the Left or Right edge. Every cell in it
// must already be empty.
func (g *Grid) RemoveColumn(edge Edge) error {
	x, err := g.EdgeColumn(edge)
	if err != nil {
		return err
	}
	if g.width == 0 {
		return ErrNothingToRemove
	}
	if len(g.OccupiedInColumn(x)) > 0 {
		return fmt.Errorf("remove column %d: %w", x, ErrLineNotEmpty)
	}
	cells := make([]Cell, 0, (g.width-1)*g.height)
	for y := 0; y < g.height; y++ {
		rowStart := y * g.width
		cells = append(cells, g.cells[rowStart:rowStart+x]...)
		cells = append(cells, g.cells[rowStart+x+1:rowStart+g.width]...)
	}
	g.cells = cells
	g.width--
	return nil
}

func (g *Grid) mustContain(x, y int) {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("gridmap: cell (%d,%d) outside %dx%d grid", x, y, g.width, g.height))
	}
}
