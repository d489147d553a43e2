// Package pkg provides the libraries behind labelsheet, a generator for
// sheets of numbered Code-128 library barcode labels.
//
// # Overview
//
// Every label carries the library name at the top, a Code-128 symbol of its
// number in the middle and the number itself underneath. Labels are placed on
// a fixed grid (for example Avery 5160: 3 columns by 10 rows) and the sheet is
// written as a PDF ready for label stock. The pkg directory is organized into:
//
//  1. [geometry] - Label stock grids, paper sizes and presets
//  2. [render] - Barcode rasterisation and single-label drawing
//  3. [layout] - Page cursor and grid placement of rendered labels
//  4. [sink] - PDF, PNG page preview and JSON manifest writers
//  5. [pipeline] - Orchestration (validate → layout → render) with caching
//  6. [cache], [storage] - Artifact cache and publishing backends
//  7. [server] - HTTP download service
//
// # Architecture
//
// The typical data flow through labelsheet:
//
//	header, start, count, preset
//	         ↓
//	    [render/label] package (one raster per number)
//	         ↓
//	    [layout] package (cells, rows, pages)
//	         ↓
//	    [sink] package (PDF/PNG/JSON)
//	         ↓
//	    [storage] package (file or s3://)
//
// # Quick Start
//
// Generate a thousand labels as a PDF:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/labelsheet/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    Header: "JNIAS COLLEGE LIBRARY",
//	    Count:  1000,
//	})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("library_barcode_labels.pdf", result.Artifacts["pdf"], 0o644)
//
// # Error Handling
//
// Failures carry a machine-readable code from [errors], such as
// INVALID_COUNT or RENDER_FAILED. The CLI prints the message and the HTTP
// service maps INVALID_* codes to 400 responses.
//
// [geometry]: https://pkg.go.dev/github.com/matzehuels/labelsheet/pkg/geometry
// [render]: https://pkg.go.dev/github.com/matzehuels/labelsheet/pkg/render
// [layout]: https://pkg.go.dev/github.com/matzehuels/labelsheet/pkg/layout
// [sink]: https://pkg.go.dev/github.com/matzehuels/labelsheet/pkg/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/labelsheet/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/labelsheet/pkg/cache
// [storage]: https://pkg.go.dev/github.com/matzehuels/labelsheet/pkg/storage
// [server]: https://pkg.go.dev/github.com/matzehuels/labelsheet/pkg/server
// [errors]: https://pkg.go.dev/github.com/matzehuels/labelsheet/pkg/errors
// [render/label]: https://pkg.go.dev/github.com/matzehuels/labelsheet/pkg/render/label
package pkg
