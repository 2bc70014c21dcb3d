// pkg/palette/palette.go
package palette

import "image/color"

// GridColors holds all the color definitions needed to render the static grid background.
type GridColors struct {
	BackgroundColor color.RGBA
	EmptyCellColor  color.RGBA
	GridLineColor   color.RGBA
	TextDarkColor   color.RGBA
	TextLightColor  color.RGBA
	// StrokeWidth is the outline width of the highlighted cell.
	StrokeWidth float32
}

var groupPalette = []color.RGBA{
	{230, 25, 75, 255},
	{60, 180, 75, 255},
	{255, 225, 25, 255},
	{0, 130, 200, 255},
	{245, 130, 48, 255},
	{145, 30, 180, 255},
	{70, 240, 240, 255},
	{240, 50, 230, 255},
	{210, 245, 60, 255},
	{0, 128, 128, 255},
}

// GroupColor picks a stable palette color for a group id.
func GroupColor(groupID int) color.RGBA {
	if groupID < 0 {
		groupID = -groupID
	}
	return groupPalette[groupID%len(groupPalette)]
}

// DarkenColor reduces the brightness of a color.
func DarkenColor(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * 0.5),
		G: uint8(float64(c.G) * 0.5),
		B: uint8(float64(c.B) * 0.5),
		A: c.A,
	}
}

// ShadeForHeight darkens a base color less for taller stacks so height reads at a glance.
func ShadeForHeight(c color.RGBA, height, maxHeight int) color.RGBA {
	if maxHeight <= 0 || height >= maxHeight {
		return c
	}
	if height < 1 {
		height = 1
	}
	k := 0.5 + 0.5*float64(height)/float64(maxHeight)
	return color.RGBA{
		R: uint8(float64(c.R) * k),
		G: uint8(float64(c.G) * k),
		B: uint8(float64(c.B) * k),
		A: c.A,
	}
}

// CellFill is the fill of a cell: the empty color for height 0, otherwise the
// group color shaded by height.
func CellFill(group, height, maxHeight int, colors *GridColors) color.RGBA {
	if height <= 0 {
		return colors.EmptyCellColor
	}
	return ShadeForHeight(GroupColor(group), height, maxHeight)
}

// TextColorFor returns dark text on light fills and light text on dark fills.
func TextColorFor(fill color.RGBA, colors *GridColors) color.RGBA {
	if (int(fill.R)+int(fill.G)+int(fill.B))/3 > 128 {
		return colors.TextDarkColor
	}
	return colors.TextLightColor
}
