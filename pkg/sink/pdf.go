package sink

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/matzehuels/labelsheet/pkg/errors"
	"github.com/matzehuels/labelsheet/pkg/layout"
)

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	title     string
	author    string
	creator   string
	created   time.Time
	cutGuides bool
}

// WithTitle sets the document title metadata.
func WithTitle(s string) PDFOption { return func(r *pdfRenderer) { r.title = s } }

// WithAuthor sets the document author metadata.
func WithAuthor(s string) PDFOption { return func(r *pdfRenderer) { r.author = s } }

// WithCreator sets the producing application. The default is "labelsheet".
func WithCreator(s string) PDFOption { return func(r *pdfRenderer) { r.creator = s } }

// WithCreationDate fixes the creation and modification dates. A fixed date
// makes output reproducible.
func WithCreationDate(t time.Time) PDFOption { return func(r *pdfRenderer) { r.created = t } }

// WithCutGuides outlines every cell with a hairline, for test prints on
// plain paper.
func WithCutGuides() PDFOption { return func(r *pdfRenderer) { r.cutGuides = true } }

// RenderPDF writes doc as a PDF with one page per layout page. The page size
// comes from the document geometry and every label image is stretched to
// its cell.
func RenderPDF(doc *layout.Document, opts ...PDFOption) ([]byte, error) {
	if doc == nil || doc.Empty() {
		return nil, errors.New(errors.ErrCodeEmptyDocument, "document has no pages")
	}
	r := pdfRenderer{creator: "labelsheet"}
	for _, opt := range opts {
		opt(&r)
	}

	g := doc.Geometry
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: g.PageWidth, Ht: g.PageHeight},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator(r.creator, true)
	pdf.SetCatalogSort(true)
	if r.title != "" {
		pdf.SetTitle(r.title, true)
	}
	if r.author != "" {
		pdf.SetAuthor(r.author, true)
	}
	if !r.created.IsZero() {
		pdf.SetCreationDate(r.created)
		pdf.SetModificationDate(r.created)
	}

	imgOpts := fpdf.ImageOptions{ImageType: "PNG"}
	for _, page := range doc.Pages {
		pdf.AddPage()
		for _, p := range page.Placements {
			name := fmt.Sprintf("label-%d", p.Index)
			pdf.RegisterImageOptionsReader(name, imgOpts, bytes.NewReader(p.PNG))
			top := g.PageHeight - p.Y - p.Height
			pdf.ImageOptions(name, p.X, top, p.Width, p.Height, false, imgOpts, 0, "")
			if r.cutGuides {
				pdf.SetDrawColor(180, 180, 180)
				pdf.SetLineWidth(0.25)
				pdf.Rect(p.X, top, p.Width, p.Height, "D")
			}
		}
		if err := pdf.Error(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "pdf page %d", page.Number)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "write pdf")
	}
	return buf.Bytes(), nil
}
