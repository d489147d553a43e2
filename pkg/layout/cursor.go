package layout

import "github.com/matzehuels/labelsheet/pkg/geometry"

// Cursor is the running placement state of one layout run.
//
// X and Y are the bottom-left corner of the next free cell. Index counts
// labels placed in the whole run and PlacedOnPage those on the current page.
// The position always equals Geometry.Cell(Index).
type Cursor struct {
	X, Y         float64
	Index        int
	PlacedOnPage int

	geom geometry.Geometry
}

// NewCursor returns a cursor at the top-left cell of the first page.
func NewCursor(g geometry.Geometry) Cursor {
	c := Cursor{geom: g}
	c.X, c.Y = g.Origin()
	return c
}

// Advance moves past the cell just filled. It wraps to the next row after
// the last column and back to the first cell once the page is full, in
// which case it returns true.
func (c *Cursor) Advance() (pageFull bool) {
	g := c.geom
	c.Index++
	c.PlacedOnPage++
	c.X += g.LabelWidth

	if c.PlacedOnPage%g.Columns == 0 {
		c.X = g.LeftMargin
		c.Y -= g.LabelHeight
	}
	if c.PlacedOnPage%g.Capacity() == 0 {
		c.X, c.Y = g.Origin()
		c.PlacedOnPage = 0
		return true
	}
	return false
}
