// Package geometry describes fixed-grid label sheets.
//
// A Geometry is an immutable description of one label stock: the size of a
// single label, the number of columns and rows per page, the outer margins and
// the page size. All lengths are in PDF points (1pt = 1/72in) and coordinates
// follow the PDF convention of a bottom-left origin.
//
// Slots are numbered row-major starting at the top-left cell of a page:
//
//	slot 0  slot 1  slot 2
//	slot 3  slot 4  slot 5
//	...
package geometry

import (
	"math"

	"github.com/matzehuels/labelsheet/pkg/errors"
)

// Units expressed in points.
const (
	Point = 1.0
	Inch  = 72.0
	MM    = 72.0 / 25.4
)

// tolerance absorbs float rounding in fit checks.
const tolerance = 1e-6

// Geometry is the grid description of one label sheet.
type Geometry struct {
	LabelWidth  float64 `json:"label_width"`
	LabelHeight float64 `json:"label_height"`
	Columns     int     `json:"columns"`
	Rows        int     `json:"rows"`
	LeftMargin  float64 `json:"left_margin"`
	TopMargin   float64 `json:"top_margin"`
	PageWidth   float64 `json:"page_width"`
	PageHeight  float64 `json:"page_height"`
}

// Validate checks that the grid is well formed and that every cell lies on
// the page. The right and bottom margins are whatever space remains; use
// ValidateSymmetric to also require them to match the left and top margins.
func (g Geometry) Validate() error {
	switch {
	case g.LabelWidth <= 0 || g.LabelHeight <= 0:
		return errors.New(errors.ErrCodeInvalidGeometry,
			"label size must be positive, got %gx%g", g.LabelWidth, g.LabelHeight)
	case g.PageWidth <= 0 || g.PageHeight <= 0:
		return errors.New(errors.ErrCodeInvalidGeometry,
			"page size must be positive, got %gx%g", g.PageWidth, g.PageHeight)
	case g.Columns < 1 || g.Rows < 1:
		return errors.New(errors.ErrCodeInvalidGeometry,
			"grid must have at least one column and row, got %dx%d", g.Columns, g.Rows)
	case g.LeftMargin < 0 || g.TopMargin < 0:
		return errors.New(errors.ErrCodeInvalidGeometry,
			"margins cannot be negative, got left=%g top=%g", g.LeftMargin, g.TopMargin)
	}

	return g.fits(1)
}

// ValidateSymmetric is Validate plus the requirement that the grid fits with
// a right margin at least as wide as the left one and a bottom margin at
// least as tall as the top one.
func (g Geometry) ValidateSymmetric() error {
	if err := g.Validate(); err != nil {
		return err
	}
	return g.fits(2)
}

func (g Geometry) fits(marginFactor float64) error {
	if w := float64(g.Columns)*g.LabelWidth + marginFactor*g.LeftMargin; w > g.PageWidth+tolerance {
		return errors.New(errors.ErrCodeInvalidGeometry,
			"%d columns need %.3fpt but page is %.3fpt wide", g.Columns, w, g.PageWidth)
	}
	if h := float64(g.Rows)*g.LabelHeight + marginFactor*g.TopMargin; h > g.PageHeight+tolerance {
		return errors.New(errors.ErrCodeInvalidGeometry,
			"%d rows need %.3fpt but page is %.3fpt tall", g.Rows, h, g.PageHeight)
	}
	return nil
}

// Capacity returns the number of labels per page.
func (g Geometry) Capacity() int {
	return g.Columns * g.Rows
}

// Origin returns the bottom-left corner of the top-left cell.
func (g Geometry) Origin() (x, y float64) {
	return g.LeftMargin, g.PageHeight - g.TopMargin - g.LabelHeight
}

// Cell returns the bottom-left corner of the cell holding slot. Slots beyond
// the page capacity wrap onto the same grid.
func (g Geometry) Cell(slot int) (x, y float64) {
	s := slot % g.Capacity()
	col := s % g.Columns
	row := s / g.Columns
	x0, y0 := g.Origin()
	return x0 + float64(col)*g.LabelWidth, y0 - float64(row)*g.LabelHeight
}

// PagesFor returns how many pages count labels occupy.
func (g Geometry) PagesFor(count int) int {
	if count < 1 || g.Capacity() < 1 {
		return 0
	}
	return int(math.Ceil(float64(count) / float64(g.Capacity())))
}

// Scale returns a copy with every length multiplied by f.
func (g Geometry) Scale(f float64) Geometry {
	g.LabelWidth *= f
	g.LabelHeight *= f
	g.LeftMargin *= f
	g.TopMargin *= f
	g.PageWidth *= f
	g.PageHeight *= f
	return g
}
