// internal/system/render.go
package system

import (
	"go-stack-defense/internal/config"
	"go-stack-defense/internal/entity"
	"go-stack-defense/pkg/gridmap"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// RenderSystem рисует сущности структур поверх сетки
type RenderSystem struct {
	ecs      *entity.ECS
	fontFace font.Face
}

func NewRenderSystem(ecs *entity.ECS, face font.Face) *RenderSystem {
	return &RenderSystem{ecs: ecs, fontFace: face}
}

// Draw outlines recognized structures and prints their template names.
// gridWidth converts member cell ids back to coordinates.
func (s *RenderSystem) Draw(screen *ebiten.Image, layout gridmap.Layout, gridWidth int) {
	if gridWidth <= 0 {
		return
	}
	size := float32(layout.CellSize)

	for id, body := range s.ecs.Structures {
		render, ok := s.ecs.Renderables[id]
		if !ok || !render.HasStroke {
			continue
		}
		// обводим только внешние рёбра клеток структуры
		members := make(map[int]struct{}, len(body.Members))
		for _, cid := range body.Members {
			members[cid] = struct{}{}
		}
		for _, cid := range body.Members {
			p := gridmap.Point{X: cid % gridWidth, Y: cid / gridWidth}
			px, py := layout.CellOrigin(p.X, p.Y)
			for _, d := range gridmap.TraversalOrder {
				n := p.Step(d)
				if n.X >= 0 && n.X < gridWidth && n.Y >= 0 {
					if _, inside := members[n.Y*gridWidth+n.X]; inside {
						continue
					}
				}
				x0, y0, x1, y1 := edgeSegment(d, px, py, size)
				vector.StrokeLine(screen, x0, y0, x1, y1, float32(config.StrokeWidth), config.StructureStroke, true)
			}
		}
	}

	if s.fontFace == nil {
		return
	}
	for id, label := range s.ecs.Texts {
		body, ok := s.ecs.Structures[id]
		if !ok || len(body.Members) == 0 {
			continue
		}
		first := body.Members[0]
		px, py := layout.CellOrigin(first%gridWidth, first/gridWidth)
		text.Draw(screen, label.Value, s.fontFace, int(px)+2, int(py)-3, label.Color)
	}
}

func edgeSegment(d gridmap.Direction, px, py, size float32) (x0, y0, x1, y1 float32) {
	switch d {
	case gridmap.North:
		return px, py, px + size, py
	case gridmap.South:
		return px, py + size, px + size, py + size
	case gridmap.West:
		return px, py, px, py + size
	default:
		return px + size, py, px + size, py + size
	}
}
