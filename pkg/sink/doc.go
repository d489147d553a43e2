// Package sink writes laid-out label documents to output formats.
//
// # Overview
//
// A "sink" turns a [layout.Document] into bytes:
//
//   - PDF: the printable label sheet, one PDF page per layout page
//   - PNG: a raster preview of a single page
//   - JSON: a placement manifest (geometry and per-label coordinates)
//
// Coordinates in a Document use the PDF convention of a bottom-left origin.
// Sinks that draw with a top-left origin convert them.
//
//	pdf, err := sink.RenderPDF(doc, sink.WithTitle("Library barcodes"))
//	png, err := sink.RenderPNG(doc, 1, sink.WithScale(2))
//	manifest, err := sink.RenderJSON(doc)
//
// [layout.Document]: github.com/matzehuels/labelsheet/pkg/layout#Document
package sink

// Content types of the sink outputs.
const (
	ContentTypePDF  = "application/pdf"
	ContentTypePNG  = "image/png"
	ContentTypeJSON = "application/json"
)

// ContentType returns the MIME type for a format name (pdf, png, json).
func ContentType(format string) string {
	switch format {
	case "pdf":
		return ContentTypePDF
	case "png":
		return ContentTypePNG
	case "json":
		return ContentTypeJSON
	}
	return "application/octet-stream"
}
