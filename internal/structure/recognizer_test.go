package structure

import (
	"bytes"
	"fmt"
	"testing"

	"go-stack-defense/internal/defs"
	"go-stack-defense/internal/entity"
	"go-stack-defense/internal/types"
	"go-stack-defense/pkg/gridmap"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFactory records calls and can pretend entities vanished on its own.
type stubFactory struct {
	next      types.EntityID
	live      map[types.EntityID]int
	notified  map[types.EntityID]string
	destroyed []types.EntityID
	failWith  error
}

func newStubFactory() *stubFactory {
	return &stubFactory{
		next:     1,
		live:     make(map[types.EntityID]int),
		notified: make(map[types.EntityID]string),
	}
}

func (f *stubFactory) CreateStructureEntity(groupID int, _ []int) types.EntityID {
	id := f.next
	f.next++
	f.live[id] = groupID
	return id
}

func (f *stubFactory) DestroyStructureEntity(id types.EntityID) error {
	f.destroyed = append(f.destroyed, id)
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.live[id]; !ok {
		return fmt.Errorf("entity %d: %w", id, entity.ErrEntityNotFound)
	}
	delete(f.live, id)
	return nil
}

func (f *stubFactory) NotifyStructureType(id types.EntityID, name string) {
	f.notified[id] = name
}

func gridFrom(rows ...[]int) *gridmap.Grid {
	g := gridmap.NewGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, h := range row {
			g.SetHeight(x, y, h)
		}
	}
	return g
}

func occupied(g *gridmap.Grid) []gridmap.Point {
	var pts []gridmap.Point
	for y := 0; y < g.Height(); y++ {
		pts = append(pts, g.OccupiedInRow(y)...)
	}
	return pts
}

func TestSnapshotFillsHolesWithZero(t *testing.T) {
	g := gridFrom(
		[]int{0, 0, 0, 0},
		[]int{0, 2, 1, 0},
		[]int{0, 3, 0, 0},
	)
	minX, minY, snap := Snapshot(occupied(g), g)
	assert.Equal(t, 1, minX)
	assert.Equal(t, 1, minY)
	assert.Equal(t, defs.HeightMap{{2, 1}, {3, 0}}, snap)

	_, _, empty := Snapshot(nil, g)
	assert.Nil(t, empty)
}

func TestRebuildRecognizesExactTemplate(t *testing.T) {
	catalog := defs.NewCatalog(
		defs.Template{Folder: "walls", Alias: "bar", Heights: defs.HeightMap{{1, 1}}},
		defs.Template{Folder: "walls", Alias: "tall-bar", Heights: defs.HeightMap{{1, 2}}},
		defs.Template{Folder: "towers", Alias: "also-tall-bar", Heights: defs.HeightMap{{1, 2}}},
	)
	f := newStubFactory()
	r := NewRecognizer(catalog, f, log.New(&bytes.Buffer{}))

	g := gridFrom([]int{1, 2})
	s := r.Rebuild(nil, 2, occupied(g), g)
	require.NotNil(t, s)
	assert.True(t, s.Recognized())
	assert.Equal(t, "tall-bar", s.TypeName(), "first matching template wins")
	assert.Equal(t, "tall-bar", f.notified[s.Entity().ID()])
	assert.Equal(t, []int{0, 1}, s.MemberIDs)

	// Same shape flipped: no reflection matching.
	g = gridFrom([]int{2, 1})
	s = r.Rebuild(s, 2, occupied(g), g)
	assert.False(t, s.Recognized())
	assert.Equal(t, Unrecognized, s.TypeName())
	assert.NotContains(t, f.notified, s.Entity().ID())
}

func TestRebuildInvalidatesPreviousHandle(t *testing.T) {
	f := newStubFactory()
	r := NewRecognizer(nil, f, log.New(&bytes.Buffer{}))
	g := gridFrom([]int{1, 1}, []int{1, 0})

	first := r.Rebuild(nil, 4, occupied(g), g)
	firstID := first.Entity().ID()
	require.True(t, first.Entity().Valid())

	second := r.Rebuild(first, 4, occupied(g), g)
	assert.False(t, first.Entity().Valid())
	assert.Equal(t, types.NoEntity, first.Entity().ID())
	assert.NotEqual(t, firstID, second.Entity().ID())
	assert.Equal(t, []types.EntityID{firstID}, f.destroyed)
	assert.Len(t, f.live, 1)

	assert.Nil(t, r.Rebuild(second, 4, nil, g))
	assert.Empty(t, f.live)
}

func TestDestroyToleratesMissingEntity(t *testing.T) {
	f := newStubFactory()
	var buf bytes.Buffer
	r := NewRecognizer(nil, f, log.New(&buf))
	g := gridFrom([]int{1})

	s := r.Rebuild(nil, 2, occupied(g), g)
	delete(f.live, s.Entity().ID()) // removed behind the recognizer's back

	assert.NotPanics(t, func() { r.Destroy(s) })
	assert.False(t, s.Entity().Valid())
	assert.Contains(t, buf.String(), "already removed")

	// Second destroy is a no-op.
	r.Destroy(s)
	assert.Len(t, f.destroyed, 1)
	r.Destroy(nil)
}

func TestDestroyLogsOtherFactoryErrors(t *testing.T) {
	f := newStubFactory()
	var buf bytes.Buffer
	r := NewRecognizer(nil, f, log.New(&buf))
	g := gridFrom([]int{1})
	s := r.Rebuild(nil, 2, occupied(g), g)

	f.failWith = fmt.Errorf("disk on fire")
	r.Destroy(s)
	assert.Contains(t, buf.String(), "failed to destroy")
	assert.Contains(t, buf.String(), "disk on fire")
}

func TestRebuildWithECSFactory(t *testing.T) {
	catalog := defs.NewCatalog(defs.Template{Folder: "walls", Alias: "corner", Heights: defs.HeightMap{{1, 1}, {1, 0}}})
	ecs := entity.NewECS()
	r := NewRecognizer(catalog, ecs, log.New(&bytes.Buffer{}))
	g := gridFrom([]int{1, 1}, []int{1, 0})

	s := r.Rebuild(nil, 3, occupied(g), g)
	id := s.Entity().ID()
	require.Contains(t, ecs.Structures, id)
	assert.Equal(t, 3, ecs.Structures[id].GroupID)
	assert.Equal(t, []int{0, 1, 2}, ecs.Structures[id].Members)
	assert.Equal(t, "corner", ecs.StructureTypes[id].Template)
	assert.Equal(t, "corner", ecs.Texts[id].Value)

	r.Destroy(s)
	assert.False(t, ecs.Exists(id))
}

func TestStructureContains(t *testing.T) {
	g := gridFrom([]int{0, 1, 1}, []int{0, 1, 0})
	r := NewRecognizer(nil, newStubFactory(), log.New(&bytes.Buffer{}))
	s := r.Rebuild(nil, 2, occupied(g), g)

	assert.True(t, s.Contains(gridmap.Point{X: 1, Y: 1}))
	assert.False(t, s.Contains(gridmap.Point{X: 2, Y: 1}), "hole inside the box")
	assert.False(t, s.Contains(gridmap.Point{X: 0, Y: 0}), "outside the box")
	assert.Equal(t, "group 2: 3 cells, 2x2 at (1,0), unrecognized", s.String())
}

func TestDescribe(t *testing.T) {
	catalog := defs.NewCatalog(defs.Template{Folder: "walls", Alias: "step", Heights: defs.HeightMap{{2, 0}, {1, 1}}})
	r := NewRecognizer(catalog, newStubFactory(), log.New(&bytes.Buffer{}))
	g := gridFrom([]int{2, 0}, []int{1, 1})
	s := r.Rebuild(nil, 7, occupied(g), g)

	assert.Equal(t, []string{
		"step",
		"group 7, 3 cells, entity 1",
		"box 2x2 at (0,0)",
		"2 .",
		"1 1",
	}, s.Describe())
}

func TestCardOutlivesRebuild(t *testing.T) {
	r := NewRecognizer(nil, newStubFactory(), log.New(&bytes.Buffer{}))
	g := gridFrom([]int{1, 1})
	s := r.Rebuild(nil, 5, occupied(g), g)

	card, ok := s.Card()
	require.True(t, ok)
	assert.Equal(t, 5, card.GroupID)
	assert.Equal(t, "group 5, 2 cells, entity 1", card.Lines[1])

	fresh := r.Rebuild(s, 5, occupied(g), g)
	_, ok = s.Card()
	assert.False(t, ok, "released structure has no card")
	assert.Equal(t, "group 5, 2 cells, entity 1", card.Lines[1], "card is a copy")

	card, ok = fresh.Card()
	require.True(t, ok)
	assert.Equal(t, "group 5, 2 cells, entity 2", card.Lines[1])

	r.Destroy(fresh)
	_, ok = fresh.Card()
	assert.False(t, ok)

	var none *Structure
	_, ok = none.Card()
	assert.False(t, ok)
}
