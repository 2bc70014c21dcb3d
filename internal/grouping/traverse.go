// internal/grouping/traverse.go
package grouping

import "go-stack-defense/pkg/gridmap"

// Traverse floods id over the ungrouped region containing (x, y).
//
// Depth-first with tie-break South, East, North, West. A cell on the stack is
// in progress and cannot be picked again; a cell is assigned id only when it
// has no ungrouped neighbour left, so ids are written in postorder.
// Visit state lives in a side array of stamps, never in the group field.
// Returns the number of visited cells.
func (e *Engine) Traverse(x, y, id int) int {
	w, h := e.tiles.Width(), e.tiles.Height()
	e.nextStamp(w * h)

	start := y*w + x
	e.stamps[start] = e.stamp
	stack := append(e.stack[:0], start)
	steps := 1

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		p := gridmap.Point{X: cur % w, Y: cur / w}
		mask := gridmap.NeighborMask(e.tiles, p.X, p.Y, gridmap.IsUngrouped)

		next := -1
		for _, d := range gridmap.TraversalOrder {
			if !mask.Has(d) {
				continue
			}
			n := p.Step(d)
			nid := n.Y*w + n.X
			if e.stamps[nid] == e.stamp {
				continue
			}
			next = nid
			break
		}

		if next >= 0 {
			e.stamps[next] = e.stamp
			stack = append(stack, next)
			steps++
			continue
		}

		e.tiles.SetGroup(p.X, p.Y, id)
		stack = stack[:len(stack)-1]
	}

	e.stack = stack
	e.lastSteps = steps
	return steps
}

// nextStamp starts a new traversal generation, resizing the stamp arena when
// the grid changed size.
func (e *Engine) nextStamp(cells int) {
	if len(e.stamps) != cells {
		e.stamps = make([]uint32, cells)
		e.stamp = 0
	}
	e.stamp++
	if e.stamp == 0 {
		clear(e.stamps)
		e.stamp = 1
	}
}
