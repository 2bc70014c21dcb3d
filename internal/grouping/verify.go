// internal/grouping/verify.go
package grouping

import (
	"fmt"
	"slices"

	"go-stack-defense/internal/utils"
	"go-stack-defense/pkg/gridmap"
)

// Verify checks that the group ids stored in cells form the partition of
// occupied cells into 4-connected components and that active lists exactly
// the ids in use. A failure means the engine is broken, not the input.
func Verify(cells gridmap.CellReader, active []int) error {
	w, h := cells.Width(), cells.Height()
	uf := utils.NewUnionFind()
	groups := make(map[int]bool)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			height, g := cells.GetHeight(x, y), cells.GetGroup(x, y)
			if (g == gridmap.GroupEmpty) != (height == 0) {
				return fmt.Errorf("cell (%d,%d): height %d with group %d", x, y, height, g)
			}
			if height == 0 {
				continue
			}
			if g < gridmap.FirstGroupID {
				return fmt.Errorf("cell (%d,%d): occupied but ungrouped", x, y)
			}
			id := y*w + x
			uf.Find(id)
			// только восток и юг, запад и север уже пройдены
			for _, d := range []gridmap.Direction{gridmap.East, gridmap.South} {
				n := gridmap.Point{X: x, Y: y}.Step(d)
				if n.X >= w || n.Y >= h || cells.GetHeight(n.X, n.Y) == 0 {
					continue
				}
				if ng := cells.GetGroup(n.X, n.Y); ng != g {
					return fmt.Errorf("adjacent cells (%d,%d) and (%d,%d) in groups %d and %d", x, y, n.X, n.Y, g, ng)
				}
				uf.Union(id, n.Y*w+n.X)
			}
			groups[g] = true
		}
	}

	// одна компонента на группу
	seen := make(map[int]bool)
	for _, ids := range uf.Components() {
		g := cells.GetGroup(ids[0]%w, ids[0]/w)
		if seen[g] {
			return fmt.Errorf("group %d is not connected", g)
		}
		seen[g] = true
	}

	used := make([]int, 0, len(groups))
	for g := range groups {
		used = append(used, g)
	}
	slices.Sort(used)
	if !slices.Equal(used, active) {
		return fmt.Errorf("active groups %v, cells use %v", active, used)
	}
	return nil
}
