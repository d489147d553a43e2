package pipeline

import (
	"fmt"

	"github.com/matzehuels/labelsheet/pkg/buildinfo"
	"github.com/matzehuels/labelsheet/pkg/errors"
	"github.com/matzehuels/labelsheet/pkg/geometry"
	"github.com/matzehuels/labelsheet/pkg/layout"
	"github.com/matzehuels/labelsheet/pkg/sink"
)

// Render generates output artifacts in the requested formats.
func Render(doc *layout.Document, p geometry.Preset, canvas string, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatPDF:
			pdfOpts := []sink.PDFOption{sink.WithTitle(opts.Title), sink.WithCreator(buildinfo.Product())}
			if opts.CutGuides {
				pdfOpts = append(pdfOpts, sink.WithCutGuides())
			}
			data, err = sink.RenderPDF(doc, pdfOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(doc, opts.Page, sink.WithScale(opts.Scale))
		case FormatJSON:
			data, err = sink.RenderJSON(doc, sink.WithJSONPreset(p.Name), sink.WithJSONCanvas(canvas))
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
