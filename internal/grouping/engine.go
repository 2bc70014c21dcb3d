// internal/grouping/engine.go
package grouping

import (
	"fmt"
	"slices"

	"go-stack-defense/internal/structure"
	"go-stack-defense/pkg/gridmap"

	"github.com/charmbracelet/log"
)

// TileOwner stores heights and group ids. The engine is the only writer of
// group values; heights are changed by the owner, which then calls the engine.
type TileOwner interface {
	gridmap.CellReader
	SetGroup(x, y, v int)
}

// Result reports which groups an edit touched.
type Result struct {
	Rebuilt []int // groups whose Structure was (re)built, ascending
	Removed []int // groups that no longer exist, ascending
}

// Merge appends other's groups. Ids may repeat when edits are chained.
func (r *Result) Merge(other Result) {
	r.Rebuilt = append(r.Rebuilt, other.Rebuilt...)
	r.Removed = append(r.Removed, other.Removed...)
}

// Engine maintains 4-connected groups of occupied cells and one Structure per group.
// Not safe for concurrent use: every call must finish before the next edit.
type Engine struct {
	tiles      TileOwner
	recognizer *structure.Recognizer
	logger     *log.Logger

	active     []int        // sorted group ids present on the grid
	reserved   map[int]bool // retired during a split, not handed out again until it finishes
	structures map[int]*structure.Structure

	verify    bool
	lastSteps int

	// traversal scratch: visit stamps per cell id and the DFS stack
	stamps []uint32
	stamp  uint32
	stack  []int
}

// NewEngine creates an engine over tiles and runs a full parse of whatever
// the tiles already hold.
func NewEngine(tiles TileOwner, recognizer *structure.Recognizer, logger *log.Logger) *Engine {
	if tiles == nil {
		panic("grouping: tiles cannot be nil")
	}
	if recognizer == nil {
		panic("grouping: recognizer cannot be nil")
	}
	if logger == nil {
		logger = log.Default()
	}
	e := &Engine{
		tiles:      tiles,
		recognizer: recognizer,
		logger:     logger,
		reserved:   make(map[int]bool),
		structures: make(map[int]*structure.Structure),
	}
	e.FullParse()
	return e
}

// EnableVerification makes every edit re-check the grouping invariants and
// panic on a violation. Meant for tests and debug builds.
func (e *Engine) EnableVerification(on bool) {
	e.verify = on
}

// FullParse discards all groups and rebuilds them from scratch.
func (e *Engine) FullParse() Result {
	var res Result
	for _, id := range e.active {
		e.recognizer.Destroy(e.structures[id])
		res.Removed = append(res.Removed, id)
	}
	e.active = e.active[:0]
	clear(e.structures)

	w, h := e.tiles.Width(), e.tiles.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if e.tiles.GetHeight(x, y) > 0 {
				e.tiles.SetGroup(x, y, gridmap.GroupUngrouped)
			} else {
				e.tiles.SetGroup(x, y, gridmap.GroupEmpty)
			}
		}
	}

	res.Rebuilt = e.GroupUngroupedStructures()
	e.logger.Debug("full parse", "groups", len(e.active))
	e.checkInvariants("full parse")
	return res
}

// OnAdd handles a cell whose height went from 0 to > 0.
func (e *Engine) OnAdd(x, y int) Result {
	if e.tiles.GetHeight(x, y) <= 0 {
		panic(fmt.Sprintf("grouping: OnAdd at empty cell (%d,%d)", x, y))
	}
	if e.tiles.GetGroup(x, y) >= gridmap.FirstGroupID {
		return e.OnRestack(x, y)
	}

	touched := e.neighborGroups(x, y)
	var res Result

	switch len(touched) {
	case 0:
		id := e.FindNextOpenGroupNumber()
		e.activate(id)
		e.tiles.SetGroup(x, y, gridmap.GroupUngrouped)
		e.Traverse(x, y, id)
		e.rebuild(id)
		res.Rebuilt = []int{id}
		e.logger.Debug("new group", "group", id, "at", gridmap.Point{X: x, Y: y})

	case 1:
		g := touched[0]
		e.tiles.SetGroup(x, y, g)
		e.rebuild(g)
		res.Rebuilt = []int{g}

	default:
		g := touched[0]
		e.resetGroups(touched)
		e.tiles.SetGroup(x, y, gridmap.GroupUngrouped)
		for _, id := range touched[1:] {
			e.deactivate(id)
			e.recognizer.Destroy(e.structures[id])
			delete(e.structures, id)
		}
		if p, ok := e.firstUngrouped(); ok {
			e.Traverse(p.X, p.Y, g)
		}
		e.rebuild(g)
		res.Rebuilt = []int{g}
		res.Removed = append([]int(nil), touched[1:]...)
		e.logger.Debug("merged groups", "into", g, "absorbed", touched[1:], "at", gridmap.Point{X: x, Y: y})
	}

	e.checkInvariants("add")
	return res
}

// OnRemove handles a cell whose height went from > 0 to 0.
func (e *Engine) OnRemove(x, y int) Result {
	if e.tiles.GetHeight(x, y) > 0 {
		panic(fmt.Sprintf("grouping: OnRemove at occupied cell (%d,%d)", x, y))
	}
	g := e.tiles.GetGroup(x, y)
	if g < gridmap.FirstGroupID {
		e.tiles.SetGroup(x, y, gridmap.GroupEmpty)
		return Result{}
	}

	e.resetGroups([]int{g})
	e.tiles.SetGroup(x, y, gridmap.GroupEmpty)
	e.deactivate(g)
	e.recognizer.Destroy(e.structures[g])
	delete(e.structures, g)

	// Осколки получают новые id, старый не переиспользуем.
	e.reserved[g] = true
	created := e.GroupUngroupedStructures()
	delete(e.reserved, g)

	e.logger.Debug("split group", "group", g, "into", created, "at", gridmap.Point{X: x, Y: y})
	e.checkInvariants("remove")
	return Result{Rebuilt: created, Removed: []int{g}}
}

// OnRestack handles a height change that did not change occupancy. It also
// routes occupancy changes to OnAdd / OnRemove, so callers may use it for any
// height edit.
func (e *Engine) OnRestack(x, y int) Result {
	h, g := e.tiles.GetHeight(x, y), e.tiles.GetGroup(x, y)
	switch {
	case h > 0 && g < gridmap.FirstGroupID:
		return e.OnAdd(x, y)
	case h == 0 && g != gridmap.GroupEmpty:
		return e.OnRemove(x, y)
	case h == 0:
		return Result{}
	}
	e.rebuild(g)
	e.checkInvariants("restack")
	return Result{Rebuilt: []int{g}}
}

// RebuildAll rebuilds every structure without touching group ids. Needed after
// the grid is resized because cell ids and coordinates shift.
func (e *Engine) RebuildAll() Result {
	var res Result
	for _, id := range e.active {
		e.rebuild(id)
		res.Rebuilt = append(res.Rebuilt, id)
	}
	e.checkInvariants("rebuild all")
	return res
}

// GroupUngroupedStructures gives a fresh id to every region of ungrouped
// cells, scanning row-major, and builds a Structure for each.
func (e *Engine) GroupUngroupedStructures() []int {
	var created []int
	w, h := e.tiles.Width(), e.tiles.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if e.tiles.GetGroup(x, y) != gridmap.GroupUngrouped {
				continue
			}
			id := e.FindNextOpenGroupNumber()
			e.activate(id)
			e.Traverse(x, y, id)
			e.rebuild(id)
			created = append(created, id)
		}
	}
	return created
}

// FindNextOpenGroupNumber returns the first id >= 2 that is neither active
// nor reserved.
func (e *Engine) FindNextOpenGroupNumber() int {
	next := gridmap.FirstGroupID
	for _, id := range e.active {
		for next < id {
			if !e.reserved[next] {
				return next
			}
			next++
		}
		if next == id {
			next++
		}
	}
	for e.reserved[next] {
		next++
	}
	return next
}

// ActiveGroups returns the sorted active group ids.
func (e *Engine) ActiveGroups() []int {
	return slices.Clone(e.active)
}

// Structure returns the structure of group g.
func (e *Engine) Structure(g int) (*structure.Structure, bool) {
	s, ok := e.structures[g]
	return s, ok
}

// Structures returns all structures ordered by group id.
func (e *Engine) Structures() []*structure.Structure {
	out := make([]*structure.Structure, 0, len(e.active))
	for _, id := range e.active {
		if s, ok := e.structures[id]; ok {
			out = append(out, s)
		}
	}
	return out
}

// StructureAt returns the structure owning cell (x, y).
func (e *Engine) StructureAt(x, y int) (*structure.Structure, bool) {
	if x < 0 || y < 0 || x >= e.tiles.Width() || y >= e.tiles.Height() {
		return nil, false
	}
	return e.Structure(e.tiles.GetGroup(x, y))
}

// Members lists the cells of group g in row-major order.
func (e *Engine) Members(g int) []gridmap.Point {
	var pts []gridmap.Point
	w, h := e.tiles.Width(), e.tiles.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if e.tiles.GetGroup(x, y) == g {
				pts = append(pts, gridmap.Point{X: x, Y: y})
			}
		}
	}
	return pts
}

// Recognizer returns the recognizer structures are built with.
func (e *Engine) Recognizer() *structure.Recognizer {
	return e.recognizer
}

// LastTraversalSteps is the step count of the most recent Traverse call.
func (e *Engine) LastTraversalSteps() int {
	return e.lastSteps
}

// Verify checks the grouping invariants against the current tiles.
func (e *Engine) Verify() error {
	if err := Verify(e.tiles, e.active); err != nil {
		return err
	}
	if len(e.structures) != len(e.active) {
		return fmt.Errorf("%d structures for %d active groups", len(e.structures), len(e.active))
	}
	for _, id := range e.active {
		if _, ok := e.structures[id]; !ok {
			return fmt.Errorf("active group %d has no structure", id)
		}
	}
	return nil
}

func (e *Engine) checkInvariants(op string) {
	if !e.verify {
		return
	}
	if err := e.Verify(); err != nil {
		panic(fmt.Sprintf("grouping: invariant violated after %s: %v", op, err))
	}
}

func (e *Engine) rebuild(g int) {
	s := e.recognizer.Rebuild(e.structures[g], g, e.Members(g), e.tiles)
	if s == nil {
		delete(e.structures, g)
		return
	}
	e.structures[g] = s
}

// neighborGroups returns the distinct group ids >= 2 around (x, y), ascending.
func (e *Engine) neighborGroups(x, y int) []int {
	mask := gridmap.NeighborMask(e.tiles, x, y, gridmap.HasGroup)
	var ids []int
	p := gridmap.Point{X: x, Y: y}
	for d := gridmap.North; d <= gridmap.East; d++ {
		if !mask.Has(d) {
			continue
		}
		n := p.Step(d)
		g := e.tiles.GetGroup(n.X, n.Y)
		if !slices.Contains(ids, g) {
			ids = append(ids, g)
		}
	}
	slices.Sort(ids)
	return ids
}

// resetGroups marks every cell of the given groups as ungrouped.
func (e *Engine) resetGroups(ids []int) {
	w, h := e.tiles.Width(), e.tiles.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if slices.Contains(ids, e.tiles.GetGroup(x, y)) {
				e.tiles.SetGroup(x, y, gridmap.GroupUngrouped)
			}
		}
	}
}

func (e *Engine) firstUngrouped() (gridmap.Point, bool) {
	w, h := e.tiles.Width(), e.tiles.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if e.tiles.GetGroup(x, y) == gridmap.GroupUngrouped {
				return gridmap.Point{X: x, Y: y}, true
			}
		}
	}
	return gridmap.Point{}, false
}

func (e *Engine) activate(id int) {
	i, found := slices.BinarySearch(e.active, id)
	if !found {
		e.active = slices.Insert(e.active, i, id)
	}
}

func (e *Engine) deactivate(id int) {
	if i, found := slices.BinarySearch(e.active, id); found {
		e.active = slices.Delete(e.active, i, i+1)
	}
}
