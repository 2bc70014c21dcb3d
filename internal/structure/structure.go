// internal/structure/structure.go
package structure

import (
	"fmt"

	"go-stack-defense/internal/defs"
	"go-stack-defense/internal/types"
	"go-stack-defense/pkg/gridmap"
)

// Unrecognized is the type name of a structure no template matched.
const Unrecognized = "unrecognized"

// Handle owns the one live representative entity of a structure.
// It is invalidated when the structure is rebuilt or destroyed, so a stale
// Structure value never points at a destroyed entity.
type Handle struct {
	id types.EntityID
}

// ID returns the entity id, or types.NoEntity once released.
func (h *Handle) ID() types.EntityID {
	return h.id
}

// Valid reports whether the handle still owns an entity.
func (h *Handle) Valid() bool {
	return h.id != types.NoEntity
}

func (h *Handle) release() types.EntityID {
	id := h.id
	h.id = types.NoEntity
	return id
}

// Structure is the recognized record derived from a group's current members.
type Structure struct {
	GroupID   int
	MinX      int
	MinY      int
	Snapshot  defs.HeightMap // [row][col] over the bounding box, holes are 0
	Members   []gridmap.Point
	MemberIDs []int
	Template  string // "" when unrecognized
	entity    Handle
}

// Width of the bounding box.
func (s *Structure) Width() int { return s.Snapshot.Width() }

// Height of the bounding box.
func (s *Structure) Height() int { return s.Snapshot.Height() }

// Recognized reports whether a template matched.
func (s *Structure) Recognized() bool { return s.Template != "" }

// TypeName returns the template name or Unrecognized.
func (s *Structure) TypeName() string {
	if s.Template == "" {
		return Unrecognized
	}
	return s.Template
}

// Entity returns the owning handle of the representative entity.
func (s *Structure) Entity() *Handle { return &s.entity }

// Contains reports whether p is a member cell.
func (s *Structure) Contains(p gridmap.Point) bool {
	if p.X < s.MinX || p.Y < s.MinY || p.X >= s.MinX+s.Width() || p.Y >= s.MinY+s.Height() {
		return false
	}
	for _, m := range s.Members {
		if m == p {
			return true
		}
	}
	return false
}

func (s *Structure) String() string {
	return fmt.Sprintf("group %d: %d cells, %dx%d at (%d,%d), %s",
		s.GroupID, len(s.Members), s.Width(), s.Height(), s.MinX, s.MinY, s.TypeName())
}

// Describe returns human-readable lines: type name, group, size, entity and
// the height snapshot one row per line.
func (s *Structure) Describe() []string {
	lines := []string{
		s.TypeName(),
		fmt.Sprintf("group %d, %d cells, entity %d", s.GroupID, len(s.Members), s.entity.id),
		fmt.Sprintf("box %dx%d at (%d,%d)", s.Width(), s.Height(), s.MinX, s.MinY),
	}
	return append(lines, s.Snapshot.Rows()...)
}

// Card is a detached copy of Describe that stays readable after the
// structure is rebuilt or destroyed.
type Card struct {
	GroupID int
	Lines   []string
}

// Card describes a live structure. ok is false once the entity was released.
func (s *Structure) Card() (card Card, ok bool) {
	if s == nil || !s.entity.Valid() {
		return Card{}, false
	}
	return Card{GroupID: s.GroupID, Lines: s.Describe()}, true
}

// Snapshot computes the bounding box origin and the height snapshot of members.
// Cells of the box that are not members read as 0.
func Snapshot(members []gridmap.Point, cells gridmap.CellReader) (minX, minY int, snap defs.HeightMap) {
	if len(members) == 0 {
		return 0, 0, nil
	}
	minX, minY = members[0].X, members[0].Y
	maxX, maxY := minX, minY
	for _, p := range members[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	snap = defs.NewHeightMap(maxX-minX+1, maxY-minY+1)
	for _, p := range members {
		snap[p.Y-minY][p.X-minX] = cells.GetHeight(p.X, p.Y)
	}
	return minX, minY, snap
}
