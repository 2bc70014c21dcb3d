// internal/app/resize.go
package app

import (
	"fmt"

	"go-stack-defense/internal/event"
	"go-stack-defense/internal/grouping"
	"go-stack-defense/pkg/gridmap"
)

// AddRow grows the grid by one empty row at edge (Top or Bottom).
func (l *Level) AddRow(edge gridmap.Edge) (grouping.Result, error) {
	if err := l.Grid.AddRow(edge); err != nil {
		return grouping.Result{}, err
	}
	return l.afterResize(edge, true), nil
}

// AddColumn grows the grid by one empty column at edge (Left or Right).
func (l *Level) AddColumn(edge gridmap.Edge) (grouping.Result, error) {
	if err := l.Grid.AddColumn(edge); err != nil {
		return grouping.Result{}, err
	}
	return l.afterResize(edge, true), nil
}

// RemoveRow pops every block in the edge row and drops it.
func (l *Level) RemoveRow(edge gridmap.Edge) (grouping.Result, error) {
	if l.Grid.Height() == 0 {
		return grouping.Result{}, gridmap.ErrNothingToRemove
	}
	y, err := l.Grid.EdgeRow(edge)
	if err != nil {
		return grouping.Result{}, err
	}
	res := l.clearCells(l.Grid.OccupiedInRow(y))
	if err := l.Grid.RemoveRow(edge); err != nil {
		return res, fmt.Errorf("remove row: %w", err)
	}
	res.Merge(l.afterResize(edge, false))
	return res, nil
}

// RemoveColumn pops every block in the edge column and drops it.
func (l *Level) RemoveColumn(edge gridmap.Edge) (grouping.Result, error) {
	if l.Grid.Width() == 0 {
		return grouping.Result{}, gridmap.ErrNothingToRemove
	}
	x, err := l.Grid.EdgeColumn(edge)
	if err != nil {
		return grouping.Result{}, err
	}
	res := l.clearCells(l.Grid.OccupiedInColumn(x))
	if err := l.Grid.RemoveColumn(edge); err != nil {
		return res, fmt.Errorf("remove column: %w", err)
	}
	res.Merge(l.afterResize(edge, false))
	return res, nil
}

func (l *Level) clearCells(cells []gridmap.Point) grouping.Result {
	var res grouping.Result
	for _, p := range cells {
		from := l.Grid.GetHeight(p.X, p.Y)
		res.Merge(l.applyHeight(p.X, p.Y, from, 0))
	}
	return res
}

// Cell ids and coordinates shift on resize, so every structure is rebuilt.
func (l *Level) afterResize(edge gridmap.Edge, added bool) grouping.Result {
	res := l.Engine.RebuildAll()
	l.dispatchResult(res)
	l.EventDispatcher.Dispatch(event.Event{Type: event.GridResized, Data: event.ResizeData{
		Edge:   edge,
		Added:  added,
		Width:  l.Grid.Width(),
		Height: l.Grid.Height(),
	}})
	l.logger.Debug("grid resized", "edge", edge, "added", added, "size", fmt.Sprintf("%dx%d", l.Grid.Width(), l.Grid.Height()))
	return res
}
