// internal/state/game_state.go
package state

import (
	"fmt"
	"time"

	game "go-stack-defense/internal/app"
	"go-stack-defense/internal/config"
	"go-stack-defense/internal/event"
	"go-stack-defense/internal/system"
	"go-stack-defense/internal/ui"
	"go-stack-defense/pkg/gridmap"
	"go-stack-defense/pkg/palette"
	"go-stack-defense/pkg/render"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/font"
)

const scatterCount = 10

// GameState: редактирование сетки блоков мышью и клавиатурой
type GameState struct {
	sm            *StateMachine
	level         *game.Level
	layout        gridmap.Layout
	renderer      *render.GridRenderer
	renderSystem  *system.RenderSystem
	infoPanel     *ui.InfoPanel
	fontFace      font.Face
	logger        *log.Logger
	lastClickTime time.Time
	status        string
	hovered       gridmap.Point
	hoverOK       bool
}

func NewGameState(sm *StateMachine, level *game.Level, face font.Face, logger *log.Logger) *GameState {
	layout := gridmap.Layout{CellSize: config.CellSize, OffsetX: config.GridOffsetX, OffsetY: config.GridOffsetY}
	colors := &palette.GridColors{
		BackgroundColor: config.BackgroundColor,
		EmptyCellColor:  config.EmptyCellColor,
		GridLineColor:   config.GridLineColor,
		TextDarkColor:   config.TextDarkColor,
		TextLightColor:  config.TextLightColor,
		StrokeWidth:     float32(config.StrokeWidth),
	}

	gs := &GameState{
		sm:            sm,
		level:         level,
		layout:        layout,
		renderer:      render.NewGridRenderer(level.Grid, layout, level.Settings.MaxStackHeight, config.ScreenWidth, config.ScreenHeight, face, colors),
		renderSystem:  system.NewRenderSystem(level.ECS, face),
		infoPanel:     ui.NewInfoPanel(face),
		fontFace:      face,
		logger:        logger,
		lastClickTime: time.Now(),
		status:        "H for help",
	}
	level.EventDispatcher.SubscribeAll(gs, event.StructureRebuilt, event.StructureRemoved, event.GridResized)
	return gs
}

// OnEvent keeps the status line in sync with the level.
func (g *GameState) OnEvent(e event.Event) {
	switch data := e.Data.(type) {
	case event.StructureData:
		if e.Type == event.StructureRemoved {
			g.infoPanel.Forget(data.GroupID)
			g.status = fmt.Sprintf("group %d gone", data.GroupID)
		} else {
			if s, ok := g.level.Engine.Structure(data.GroupID); ok {
				g.infoPanel.Refresh(s)
			}
			g.status = fmt.Sprintf("group %d: %s", data.GroupID, data.TypeName)
		}
	case event.ResizeData:
		g.status = fmt.Sprintf("grid %dx%d", data.Width, data.Height)
	}
}

func (g *GameState) Enter() {}

func (g *GameState) Update(deltaTime float64) {
	g.infoPanel.Update()

	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.sm.SetState(NewHelpState(g.sm, g, g.fontFace))
		return
	}
	g.handleKeys()

	x, y := ebiten.CursorPosition()
	g.hovered, g.hoverOK = g.layout.CellAt(x, y, g.level.Grid.Width(), g.level.Grid.Height())
	if g.infoPanel.Contains(x, y) {
		g.hoverOK = false
	}

	if g.hoverOK {
		if time.Since(g.lastClickTime) >= config.ClickDebounceTime*time.Millisecond {
			if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
				g.report(g.level.PushBlock(g.hovered.X, g.hovered.Y))
				g.lastClickTime = time.Now()
			} else if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
				g.report(g.level.PopBlock(g.hovered.X, g.hovered.Y))
				g.lastClickTime = time.Now()
			}
		}
		s, _ := g.level.StructureAt(g.hovered.X, g.hovered.Y)
		g.infoPanel.SetTarget(s)
	} else if !g.infoPanel.Contains(x, y) {
		g.infoPanel.Hide()
	}
}

func (g *GameState) handleKeys() {
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	colEdge, rowEdge := gridmap.Right, gridmap.Bottom
	if shift {
		colEdge, rowEdge = gridmap.Left, gridmap.Top
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		res := g.level.Reparse()
		g.status = fmt.Sprintf("reparsed: %d groups", len(res.Rebuilt))
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		n := g.level.Scatter(scatterCount)
		g.status = fmt.Sprintf("scattered %d blocks", n)
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		g.report(g.level.AddColumn(colEdge))
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		g.report(g.level.RemoveColumn(colEdge))
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		g.report(g.level.AddRow(rowEdge))
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		g.report(g.level.RemoveRow(rowEdge))
	}
}

// report shows an edit error on the status line. Successful edits update it
// through OnEvent.
func (g *GameState) report(_ any, err error) {
	if err != nil {
		g.status = err.Error()
		g.logger.Warn("edit rejected", "err", err)
	}
}

func (g *GameState) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)
	if g.hoverOK {
		g.renderer.HighlightCell(screen, g.hovered.X, g.hovered.Y, config.HoverColor)
	}
	g.renderSystem.Draw(screen, g.layout, g.level.Grid.Width())
	g.infoPanel.Draw(screen)

	ebitenutil.DebugPrint(screen, fmt.Sprintf("grid %dx%d  structures %d  |  %s",
		g.level.Grid.Width(), g.level.Grid.Height(), len(g.level.Structures()), g.status))
}

func (g *GameState) Exit() {}
