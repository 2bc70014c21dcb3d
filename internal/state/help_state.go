// internal/state/help_state.go
package state

import (
	"image/color"

	"go-stack-defense/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// Убеждаемся, что HelpState соответствует интерфейсу State
var _ State = (*HelpState)(nil)

var helpLines = []string{
	"CONTROLS",
	"",
	"left click    push a block",
	"right click   pop a block",
	"R             reparse the whole grid",
	"S             scatter random blocks",
	"] / [         add / remove a column (right, Shift: left)",
	"= / -         add / remove a row (bottom, Shift: top)",
	"H, Esc        close this help",
}

// HelpState накладывает справку поверх предыдущего состояния и замораживает его.
type HelpState struct {
	stateMachine  *StateMachine
	previousState State
	fontFace      font.Face
}

func NewHelpState(sm *StateMachine, prevState State, face font.Face) *HelpState {
	return &HelpState{
		stateMachine:  sm,
		previousState: prevState,
		fontFace:      face,
	}
}

func (s *HelpState) Enter() {}

func (s *HelpState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.stateMachine.SetState(s.previousState)
	}
}

func (s *HelpState) Draw(screen *ebiten.Image) {
	if s.previousState != nil {
		s.previousState.Draw(screen)
	}
	vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, config.ScreenHeight, color.RGBA{0, 0, 0, 160}, false)

	y := config.ScreenHeight/2 - len(helpLines)*config.LineHeight/2
	for _, line := range helpLines {
		text.Draw(screen, line, s.fontFace, config.ScreenWidth/2-180, y, config.TextLightColor)
		y += config.LineHeight
	}
}

func (s *HelpState) Exit() {}
