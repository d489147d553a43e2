// Package label renders single library barcode labels.
//
// A label is a white canvas with the library name centred at the top, a
// Code-128 symbol of the numeric value in the middle and the value itself
// printed underneath. Renderers are safe for concurrent use.
package label

import (
	"bytes"
	"image"
	"image/color"
	"io"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/matzehuels/labelsheet/pkg/errors"
	"github.com/matzehuels/labelsheet/pkg/fonts"
	"github.com/matzehuels/labelsheet/pkg/render/barcode"
)

// Label is one rendered label. The image is owned by the caller.
type Label struct {
	Header string
	Value  int
	Image  image.Image
}

// PNG encodes the label image.
func (l *Label) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, l.Image, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger used to report font resolution.
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// Renderer draws labels on a fixed canvas.
type Renderer struct {
	canvas Canvas
	header fonts.Resolved
	footer fonts.Resolved
	logger *log.Logger
}

// New resolves fonts for canvas once and returns a renderer. Header and
// footer fall back together: if either preferred font is unavailable both
// use the built-in font.
func New(canvas Canvas, opts ...Option) *Renderer {
	r := &Renderer{canvas: canvas}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	r.header = fonts.Resolve(canvas.FontName, canvas.HeaderSize)
	r.footer = fonts.Resolve(canvas.FontName, canvas.FooterSize)
	if r.header.Source == fonts.SourceFallback || r.footer.Source == fonts.SourceFallback {
		r.header = fonts.Fallback(canvas.HeaderSize)
		r.footer = fonts.Fallback(canvas.FooterSize)
		r.logger.Debug("using built-in font", "wanted", canvas.FontName)
	} else {
		r.logger.Debug("using host font", "path", r.header.Path)
	}
	return r
}

// Canvas returns the renderer's canvas profile.
func (r *Renderer) Canvas() Canvas { return r.canvas }

// FontSource reports whether the preferred font or the fallback is in use.
func (r *Renderer) FontSource() fonts.Source { return r.header.Source }

// Render draws one label for value.
func (r *Renderer) Render(header string, value int) (*Label, error) {
	c := r.canvas
	text := strconv.Itoa(value)

	bc, err := barcode.Encode(text, c.Barcode)
	if err != nil {
		return nil, err
	}
	if c.Resize {
		if c.ResizeWidth <= 0 || c.ResizeHeight <= 0 {
			return nil, errors.New(errors.ErrCodeRenderFailed,
				"canvas %s: resize box %dx%d is empty", c.Name, c.ResizeWidth, c.ResizeHeight)
		}
		bc = imaging.Resize(bc, c.ResizeWidth, c.ResizeHeight, imaging.NearestNeighbor)
	}

	dc := gg.NewContext(c.Width, c.Height)
	dc.SetColor(color.White)
	dc.Clear()

	dc.DrawImage(bc, (c.Width-bc.Bounds().Dx())/2, c.BarcodeY)

	dc.SetColor(color.Black)
	hf := r.header.NewFace()
	defer hf.Close()
	dc.SetFontFace(hf)
	dc.DrawStringAnchored(header, float64(c.Width)/2, float64(c.HeaderY), 0.5, 1)

	ff := r.footer.NewFace()
	defer ff.Close()
	dc.SetFontFace(ff)
	dc.DrawStringAnchored(text, float64(c.Width)/2, float64(c.FooterY), 0.5, 1)

	return &Label{Header: header, Value: value, Image: dc.Image()}, nil
}
