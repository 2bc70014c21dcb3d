package palette

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupColorIsStable(t *testing.T) {
	assert.Equal(t, GroupColor(2), GroupColor(2+len(groupPalette)))
	assert.NotEqual(t, GroupColor(2), GroupColor(3))
	assert.Equal(t, GroupColor(4), GroupColor(-4))
}

func TestShadeForHeight(t *testing.T) {
	base := color.RGBA{200, 100, 50, 255}
	assert.Equal(t, base, ShadeForHeight(base, 4, 4))
	assert.Equal(t, base, ShadeForHeight(base, 9, 4))
	assert.Equal(t, color.RGBA{125, 62, 31, 255}, ShadeForHeight(base, 1, 4))
	assert.Equal(t, DarkenColor(color.RGBA{200, 100, 50, 255}), color.RGBA{100, 50, 25, 255})
}

func TestTextColorFor(t *testing.T) {
	colors := &GridColors{TextDarkColor: color.RGBA{A: 255}, TextLightColor: color.RGBA{255, 255, 255, 255}}
	assert.Equal(t, colors.TextDarkColor, TextColorFor(color.RGBA{250, 250, 250, 255}, colors))
	assert.Equal(t, colors.TextLightColor, TextColorFor(color.RGBA{10, 10, 10, 255}, colors))
}

func TestCellFill(t *testing.T) {
	colors := &GridColors{EmptyCellColor: color.RGBA{40, 40, 40, 255}}
	assert.Equal(t, colors.EmptyCellColor, CellFill(0, 0, 4, colors))
	assert.Equal(t, GroupColor(3), CellFill(3, 4, 4, colors))
	assert.Equal(t, ShadeForHeight(GroupColor(3), 1, 4), CellFill(3, 1, 4, colors))

	// контур подсветки темнее заливки
	outline := DarkenColor(CellFill(3, 4, 4, colors))
	assert.Equal(t, color.RGBA{0, 65, 100, 255}, outline)
}
