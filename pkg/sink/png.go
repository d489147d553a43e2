package sink

import (
	"bytes"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/labelsheet/pkg/errors"
	"github.com/matzehuels/labelsheet/pkg/layout"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
}

// WithScale sets pixels per point (default 1.0; 300/72 gives 300dpi).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG rasterizes one page of doc. Pages are numbered from 1.
func RenderPNG(doc *layout.Document, page int, opts ...PNGOption) ([]byte, error) {
	if doc == nil || doc.Empty() {
		return nil, errors.New(errors.ErrCodeEmptyDocument, "document has no pages")
	}
	if page < 1 || page > doc.PageCount() {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"page %d out of range (document has %d)", page, doc.PageCount())
	}
	r := pngRenderer{scale: 1.0}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = 1.0
	}

	g := doc.Geometry
	px := func(v float64) int { return int(math.Round(v * r.scale)) }
	canvas := imaging.New(px(g.PageWidth), px(g.PageHeight), color.White)

	for _, p := range doc.Pages[page-1].Placements {
		img, err := imaging.Decode(bytes.NewReader(p.PNG))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "decode label %d", p.Value)
		}
		w, h := max(1, px(p.Width)), max(1, px(p.Height))
		img = imaging.Resize(img, w, h, imaging.Linear)
		top := g.PageHeight - p.Y - p.Height
		canvas = imaging.Paste(canvas, img, image.Pt(px(p.X), px(top)))
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.PNG); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "encode page %d", page)
	}
	return buf.Bytes(), nil
}
