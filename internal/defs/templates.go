// internal/defs/templates.go
package defs

import (
	"fmt"
	"strconv"
	"strings"
)

// HeightMap is a rectangular grid of stack heights indexed [row][col].
type HeightMap [][]int

// NewHeightMap allocates a zeroed width x height map.
func NewHeightMap(width, height int) HeightMap {
	hm := make(HeightMap, height)
	for i := range hm {
		hm[i] = make([]int, width)
	}
	return hm
}

// Width returns the column count (0 for an empty map).
func (hm HeightMap) Width() int {
	if len(hm) == 0 {
		return 0
	}
	return len(hm[0])
}

// Height returns the row count.
func (hm HeightMap) Height() int {
	return len(hm)
}

// Equal reports whether both maps have the same dimensions and per-cell heights.
func (hm HeightMap) Equal(other HeightMap) bool {
	if hm.Width() != other.Width() || hm.Height() != other.Height() {
		return false
	}
	for i := range hm {
		for j := range hm[i] {
			if hm[i][j] != other[i][j] {
				return false
			}
		}
	}
	return true
}

// Rows renders one line per row, heights separated by spaces and holes as ".".
func (hm HeightMap) Rows() []string {
	rows := make([]string, len(hm))
	for y, row := range hm {
		var b strings.Builder
		for x, h := range row {
			if x > 0 {
				b.WriteByte(' ')
			}
			if h == 0 {
				b.WriteByte('.')
			} else {
				b.WriteString(strconv.Itoa(h))
			}
		}
		rows[y] = b.String()
	}
	return rows
}

// Template is a named reference height-map used to recognize structure shapes.
type Template struct {
	Folder  string
	Alias   string
	Path    string // as written in the catalog, relative to its folder
	Heights HeightMap
}

// Name is what a recognized structure is labelled with.
func (t Template) Name() string {
	return t.Alias
}

// Key is unique across the catalog.
func (t Template) Key() string {
	return t.Folder + "/" + t.Alias
}

func (t Template) String() string {
	return fmt.Sprintf("%s (%dx%d)", t.Key(), t.Heights.Width(), t.Heights.Height())
}

// Catalog holds templates in catalog document order.
type Catalog struct {
	templates []Template
}

// NewCatalog builds a catalog from already parsed templates, keeping their order.
func NewCatalog(templates ...Template) *Catalog {
	return &Catalog{templates: append([]Template(nil), templates...)}
}

// Templates returns the templates in match order.
func (c *Catalog) Templates() []Template {
	if c == nil {
		return nil
	}
	return c.templates
}

// Len returns the number of templates.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.templates)
}

// Match returns the first template whose height-map exactly equals snapshot.
// Orientation is fixed: no rotations or reflections are tried.
func (c *Catalog) Match(snapshot HeightMap) (Template, bool) {
	if c == nil {
		return Template{}, false
	}
	for _, t := range c.templates {
		if t.Heights.Equal(snapshot) {
			return t, true
		}
	}
	return Template{}, false
}
