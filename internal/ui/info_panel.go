// internal/ui/info_panel.go
package ui

import (
	"image"
	"math"

	"go-stack-defense/internal/config"
	"go-stack-defense/internal/structure"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const animationSpeed = 10.0

// InfoPanel slides in from the bottom and describes the structure under the cursor.
type InfoPanel struct {
	IsVisible bool
	card      structure.Card
	hasCard   bool
	fontFace  font.Face
	currentY  float64
	targetY   float64
}

// NewInfoPanel creates a hidden panel.
func NewInfoPanel(face font.Face) *InfoPanel {
	return &InfoPanel{
		fontFace: face,
		currentY: config.ScreenHeight,
		targetY:  config.ScreenHeight,
	}
}

// SetTarget shows the panel for s. A nil or released structure hides it.
func (p *InfoPanel) SetTarget(s *structure.Structure) {
	card, ok := s.Card()
	if !ok {
		p.Hide()
		return
	}
	p.card, p.hasCard = card, true
	p.IsVisible = true
	p.targetY = config.ScreenHeight - config.PanelHeight
}

// Refresh replaces the card when s is the structure on display.
func (p *InfoPanel) Refresh(s *structure.Structure) {
	if !p.hasCard || s == nil || s.GroupID != p.card.GroupID {
		return
	}
	if card, ok := s.Card(); ok {
		p.card = card
	}
}

// Forget hides the panel at once when it shows groupID.
func (p *InfoPanel) Forget(groupID int) {
	if !p.hasCard || p.card.GroupID != groupID {
		return
	}
	p.card, p.hasCard = structure.Card{}, false
	p.IsVisible = false
	p.currentY, p.targetY = config.ScreenHeight, config.ScreenHeight
}

func (p *InfoPanel) Hide() {
	p.targetY = config.ScreenHeight
}

// Contains reports whether a screen point is over the visible panel.
func (p *InfoPanel) Contains(x, y int) bool {
	return p.IsVisible && float64(y) >= p.currentY
}

func (p *InfoPanel) Update() {
	if p.currentY == p.targetY {
		return
	}
	diff := p.targetY - p.currentY
	if math.Abs(diff) < animationSpeed {
		p.currentY = p.targetY
	} else if diff > 0 {
		p.currentY += animationSpeed
	} else {
		p.currentY -= animationSpeed
	}
	if p.currentY >= config.ScreenHeight {
		p.IsVisible = false
		p.card, p.hasCard = structure.Card{}, false
	}
}

func (p *InfoPanel) Draw(screen *ebiten.Image) {
	if !p.IsVisible || !p.hasCard {
		return
	}

	rect := image.Rect(
		config.PanelMargin,
		int(p.currentY)+config.PanelMargin,
		config.ScreenWidth-config.PanelMargin,
		int(p.currentY)+config.PanelHeight-config.PanelMargin,
	)
	x, y := float32(rect.Min.X), float32(rect.Min.Y)
	w, h := float32(rect.Dx()), float32(rect.Dy())
	vector.DrawFilledRect(screen, x, y, w, h, config.PanelColor, true)
	vector.StrokeRect(screen, x, y, w, h, 2, config.StructureStroke, true)

	lineY := rect.Min.Y + 20
	for _, line := range p.card.Lines {
		text.Draw(screen, line, p.fontFace, rect.Min.X+15, lineY, config.TextLightColor)
		lineY += config.LineHeight
	}
}
