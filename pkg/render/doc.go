// Package render produces the rasters printed on label sheets.
//
// # Overview
//
// Rendering is split in two subpackages:
//
//   - [barcode]: Code-128 symbol rasterization at a fixed DPI
//   - [label]: composition of one label (header, barcode, numeric footer)
//
// Both work entirely in memory. A label is an [image.Image] of fixed canvas
// dimensions that the layout engine scales into a grid cell.
//
//	r := label.New(label.Wide)
//	l, err := r.Render("JNIAS COLLEGE LIBRARY", 1042)
//	png, err := l.PNG()
//
// # Fonts
//
// Label text uses a preferred host font (arial.ttf by default) resolved
// through [fonts.Resolve]. When the font is unavailable the renderer uses the
// built-in Go Regular font for both header and footer.
//
// [barcode]: github.com/matzehuels/labelsheet/pkg/render/barcode
// [label]: github.com/matzehuels/labelsheet/pkg/render/label
// [fonts.Resolve]: github.com/matzehuels/labelsheet/pkg/fonts#Resolve
package render
