package layout

import (
	"github.com/matzehuels/labelsheet/pkg/errors"
	"github.com/matzehuels/labelsheet/pkg/geometry"
)

// Placement is one label positioned on a page. X and Y are the bottom-left
// corner of the cell in PDF points; Width and Height are the cell size.
type Placement struct {
	Index  int     `json:"index"`
	Value  int     `json:"value"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// PNG is the encoded label image.
	PNG []byte `json:"-"`
}

// Page is an ordered list of placements. Once sealed no more labels can be
// added to it.
type Page struct {
	Number     int         `json:"number"`
	Placements []Placement `json:"placements"`
	sealed     bool
}

// Sealed reports whether the page has been finalized.
func (p *Page) Sealed() bool { return p.sealed }

// Len returns the number of labels on the page.
func (p *Page) Len() int { return len(p.Placements) }

func (p *Page) place(pl Placement) error {
	if p.sealed {
		return errors.New(errors.ErrCodeInternal, "page %d is sealed", p.Number)
	}
	p.Placements = append(p.Placements, pl)
	return nil
}

func (p *Page) seal() { p.sealed = true }

// Document is the finished, paginated result of a layout run. Every page in
// a Document returned by Engine.Layout is sealed.
type Document struct {
	Geometry geometry.Geometry `json:"geometry"`
	Header   string            `json:"header"`
	Pages    []Page            `json:"pages"`
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int { return len(d.Pages) }

// LabelCount returns the number of labels across all pages.
func (d *Document) LabelCount() int {
	n := 0
	for i := range d.Pages {
		n += len(d.Pages[i].Placements)
	}
	return n
}

// Placements returns every placement in document order.
func (d *Document) Placements() []Placement {
	out := make([]Placement, 0, d.LabelCount())
	for i := range d.Pages {
		out = append(out, d.Pages[i].Placements...)
	}
	return out
}

// Empty reports whether the document has no pages.
func (d *Document) Empty() bool { return len(d.Pages) == 0 }
