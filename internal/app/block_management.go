// internal/app/block_management.go
package app

import (
	"fmt"

	"go-stack-defense/internal/event"
	"go-stack-defense/internal/grouping"
	"go-stack-defense/pkg/gridmap"
)

// PushBlock stacks one block on (x, y).
func (l *Level) PushBlock(x, y int) (grouping.Result, error) {
	if !l.Grid.InBounds(x, y) {
		return grouping.Result{}, fmt.Errorf("push at (%d,%d): %w", x, y, ErrOutOfBounds)
	}
	h := l.Grid.GetHeight(x, y)
	if h >= l.Settings.MaxStackHeight {
		return grouping.Result{}, fmt.Errorf("push at (%d,%d): %w", x, y, ErrStackFull)
	}
	return l.applyHeight(x, y, h, h+1), nil
}

// PopBlock removes the top block from (x, y).
func (l *Level) PopBlock(x, y int) (grouping.Result, error) {
	if !l.Grid.InBounds(x, y) {
		return grouping.Result{}, fmt.Errorf("pop at (%d,%d): %w", x, y, ErrOutOfBounds)
	}
	h := l.Grid.GetHeight(x, y)
	if h == 0 {
		return grouping.Result{}, fmt.Errorf("pop at (%d,%d): %w", x, y, ErrStackEmpty)
	}
	return l.applyHeight(x, y, h, h-1), nil
}

// SetHeight sets the stack on (x, y) directly. Setting the current height is
// a no-op.
func (l *Level) SetHeight(x, y, height int) (grouping.Result, error) {
	if !l.Grid.InBounds(x, y) {
		return grouping.Result{}, fmt.Errorf("set height at (%d,%d): %w", x, y, ErrOutOfBounds)
	}
	if height < 0 || height > l.Settings.MaxStackHeight {
		return grouping.Result{}, fmt.Errorf("set height %d at (%d,%d), max %d: %w",
			height, x, y, l.Settings.MaxStackHeight, ErrBadHeight)
	}
	h := l.Grid.GetHeight(x, y)
	if h == height {
		return grouping.Result{}, nil
	}
	return l.applyHeight(x, y, h, height), nil
}

// Scatter pushes up to count blocks on random cells, heavier weight on low
// stacks. Returns how many blocks were placed.
func (l *Level) Scatter(count int) int {
	weights := make([]int, l.Settings.MaxStackHeight)
	for i := range weights {
		weights[i] = len(weights) - i
	}

	placed := 0
	cells := l.Grid.Width() * l.Grid.Height()
	if cells == 0 {
		return 0
	}
	for attempt := 0; placed < count && attempt < count*4; attempt++ {
		p := l.Grid.PointOf(l.Rng.Intn(cells))
		target := 1 + l.Rng.ChooseWeighted(weights)
		if l.Grid.GetHeight(p.X, p.Y) >= target {
			continue
		}
		if _, err := l.SetHeight(p.X, p.Y, target); err != nil {
			l.logger.Warn("scatter failed", "cell", p, "err", err)
			continue
		}
		placed++
	}
	return placed
}

// applyHeight writes the new height and hands the change to the engine, then
// publishes the block and structure events.
func (l *Level) applyHeight(x, y, from, to int) grouping.Result {
	l.Grid.SetHeight(x, y, to)

	var res grouping.Result
	switch {
	case from == 0:
		res = l.Engine.OnAdd(x, y)
	case to == 0:
		res = l.Engine.OnRemove(x, y)
	default:
		res = l.Engine.OnRestack(x, y)
	}

	cell := gridmap.Point{X: x, Y: y}
	kind := event.BlockPushed
	if to < from {
		kind = event.BlockPopped
	}
	l.EventDispatcher.Dispatch(event.Event{Type: kind, Data: event.BlockData{Cell: cell, Height: to}})
	l.dispatchResult(res)
	return res
}
