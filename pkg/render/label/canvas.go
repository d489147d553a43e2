package label

import (
	"sort"

	"github.com/matzehuels/labelsheet/pkg/fonts"
	"github.com/matzehuels/labelsheet/pkg/geometry"
	"github.com/matzehuels/labelsheet/pkg/render/barcode"
)

// Canvas describes the pixel layout of one label. Vertical positions are
// the top edge of each element, measured from the top of the canvas.
type Canvas struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`

	HeaderSize float64 `json:"header_size"` // px
	FooterSize float64 `json:"footer_size"` // px
	HeaderY    int     `json:"header_y"`
	BarcodeY   int     `json:"barcode_y"`
	FooterY    int     `json:"footer_y"`

	Barcode barcode.Options `json:"barcode"`

	// Resize scales the barcode to ResizeWidth x ResizeHeight with
	// nearest-neighbour sampling. Otherwise it is pasted at native size.
	Resize       bool `json:"resize"`
	ResizeWidth  int  `json:"resize_width,omitempty"`
	ResizeHeight int  `json:"resize_height,omitempty"`

	FontName string `json:"font_name"`
}

// Wide is a 700x300 canvas with the barcode at native size.
var Wide = Canvas{
	Name:       geometry.CanvasWide,
	Width:      700,
	Height:     300,
	HeaderSize: 36,
	FooterSize: 34,
	HeaderY:    10,
	BarcodeY:   70,
	FooterY:    250,
	Barcode:    barcode.DefaultOptions(),
	FontName:   fonts.DefaultName,
}

// Compact is a 600x250 canvas with the barcode stretched to a fixed box.
var Compact = Canvas{
	Name:         geometry.CanvasCompact,
	Width:        600,
	Height:       250,
	HeaderSize:   30,
	FooterSize:   28,
	HeaderY:      8,
	BarcodeY:     58,
	FooterY:      205,
	Barcode:      barcode.DefaultOptions(),
	Resize:       true,
	ResizeWidth:  520,
	ResizeHeight: 140,
	FontName:     fonts.DefaultName,
}

var canvases = map[string]Canvas{
	Wide.Name:    Wide,
	Compact.Name: Compact,
}

// CanvasByName returns a built-in canvas profile.
func CanvasByName(name string) (Canvas, bool) {
	c, ok := canvases[name]
	return c, ok
}

// CanvasNames returns the built-in canvas profile names, sorted.
func CanvasNames() []string {
	names := make([]string, 0, len(canvases))
	for n := range canvases {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// WithResize returns a copy of c with barcode resizing switched on or off.
// Switching it on for a canvas without a resize box uses the barcode area
// between header and footer at 85% of the canvas width.
func (c Canvas) WithResize(on bool) Canvas {
	c.Resize = on
	if on && (c.ResizeWidth <= 0 || c.ResizeHeight <= 0) {
		c.ResizeWidth = c.Width * 85 / 100
		c.ResizeHeight = max(1, c.FooterY-c.BarcodeY-10)
	}
	return c
}
