// internal/config/config.go
package config

import "image/color"

const (
	ScreenWidth       = 1200
	ScreenHeight      = 900
	CellSize          = 48.0
	GridOffsetX       = 40.0
	GridOffsetY       = 60.0
	MaxDeltaTime      = 0.06
	ClickDebounceTime = 100 // ms
	PanelHeight       = 150
	PanelMargin       = 5
	LineHeight        = 16

	DefaultGridWidth      = 12
	DefaultGridHeight     = 10
	DefaultMaxStackHeight = 4
	DefaultCatalogPath    = "assets/templates/catalog.yaml"
	DefaultLogLevel       = "info"
)

var (
	BackgroundColor = color.RGBA{20, 20, 30, 255}
	EmptyCellColor  = color.RGBA{70, 100, 120, 220}
	GridLineColor   = color.RGBA{40, 50, 60, 255}
	TextLightColor  = color.RGBA{240, 240, 240, 255}
	TextDarkColor   = color.RGBA{20, 20, 30, 255}
	PanelColor      = color.RGBA{30, 30, 45, 230}
	HoverColor      = color.RGBA{255, 255, 255, 90}
	StructureStroke = color.RGBA{255, 255, 255, 255}
	StrokeWidth     = 2.0
)
