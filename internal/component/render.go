// internal/component/render.go
package component

import "image/color"

// Renderable: клетки структуры заливаются этим цветом.
type Renderable struct {
	Color     color.RGBA
	HasStroke bool
}

// Text holds all data needed to render a piece of text on the screen.
type Text struct {
	Value string
	Color color.RGBA
}
