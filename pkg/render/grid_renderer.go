package render

import (
	"image/color"
	"strconv"

	"go-stack-defense/pkg/gridmap"
	"go-stack-defense/pkg/palette"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// GridRenderer draws the cell grid: empty cells, stacks coloured by group and
// their heights.
type GridRenderer struct {
	gridmap.Layout
	cells     gridmap.CellReader
	maxHeight int
	fontFace  font.Face
	colors    *palette.GridColors

	// фон перерисовывается только при смене размера сетки
	background *ebiten.Image
	bgW, bgH   int
	screenW    int
	screenH    int
}

func NewGridRenderer(cells gridmap.CellReader, layout gridmap.Layout, maxHeight, screenWidth, screenHeight int, face font.Face, colors *palette.GridColors) *GridRenderer {
	return &GridRenderer{
		Layout:    layout,
		cells:     cells,
		maxHeight: maxHeight,
		fontFace:  face,
		colors:    colors,
		screenW:   screenWidth,
		screenH:   screenHeight,
	}
}

// RenderBackground redraws the static empty-grid image.
func (r *GridRenderer) RenderBackground() {
	if r.background == nil {
		r.background = ebiten.NewImage(r.screenW, r.screenH)
	}
	r.background.Fill(r.colors.BackgroundColor)

	w, h := r.cells.Width(), r.cells.Height()
	size := float32(r.CellSize)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px, py := r.CellOrigin(x, y)
			vector.DrawFilledRect(r.background, px, py, size, size, r.colors.EmptyCellColor, false)
			vector.StrokeRect(r.background, px, py, size, size, 1, r.colors.GridLineColor, false)
		}
	}
	r.bgW, r.bgH = w, h
}

// Draw paints the background and every occupied cell.
func (r *GridRenderer) Draw(screen *ebiten.Image) {
	if r.background == nil || r.bgW != r.cells.Width() || r.bgH != r.cells.Height() {
		r.RenderBackground()
	}
	screen.DrawImage(r.background, nil)

	w, h := r.cells.Width(), r.cells.Height()
	size := float32(r.CellSize)
	inset := float32(2)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			height := r.cells.GetHeight(x, y)
			if height == 0 {
				continue
			}
			fill := palette.CellFill(r.cells.GetGroup(x, y), height, r.maxHeight, r.colors)
			px, py := r.CellOrigin(x, y)
			vector.DrawFilledRect(screen, px+inset, py+inset, size-2*inset, size-2*inset, fill, false)
			r.drawCentered(screen, strconv.Itoa(height), x, y, palette.TextColorFor(fill, r.colors))
		}
	}
}

// HighlightCell draws a translucent overlay on (x, y), outlined in a darker
// shade of the cell's fill.
func (r *GridRenderer) HighlightCell(screen *ebiten.Image, x, y int, c color.Color) {
	px, py := r.CellOrigin(x, y)
	size := float32(r.CellSize)
	vector.DrawFilledRect(screen, px, py, size, size, c, false)

	fill := palette.CellFill(r.cells.GetGroup(x, y), r.cells.GetHeight(x, y), r.maxHeight, r.colors)
	sw := r.colors.StrokeWidth
	vector.StrokeRect(screen, px+sw/2, py+sw/2, size-sw, size-sw, sw, palette.DarkenColor(fill), false)
}

func (r *GridRenderer) drawCentered(screen *ebiten.Image, label string, x, y int, c color.Color) {
	if r.fontFace == nil {
		return
	}
	cx, cy := r.CellCenter(x, y)
	b := text.BoundString(r.fontFace, label)
	text.Draw(screen, label, r.fontFace, int(cx)-b.Dx()/2, int(cy)+b.Dy()/2, c)
}
