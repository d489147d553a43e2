// Package barcode rasterizes Code-128 symbols.
//
// Dimensions are given in millimetres and converted to pixels at a fixed
// DPI. Each module (the narrowest bar or space) is drawn as a whole number of
// pixels, at least one, so bars stay crisp when the image is placed on a PDF
// page. No human-readable caption is drawn: labels print their own.
package barcode

import (
	"image"
	"image/color"
	"math"

	"github.com/boombuler/barcode/code128"
	"golang.org/x/image/draw"

	"github.com/matzehuels/labelsheet/pkg/errors"
)

// Default symbol dimensions.
const (
	DefaultModuleWidth = 0.6  // mm
	DefaultBarHeight   = 18.0 // mm
	DefaultQuietZone   = 2.0  // mm
	DefaultDPI         = 300
)

// Options controls symbol dimensions. Zero ModuleWidth, BarHeight and DPI
// take the defaults; a zero QuietZone means none.
type Options struct {
	ModuleWidth float64 `json:"module_width"` // mm per module
	BarHeight   float64 `json:"bar_height"`   // mm
	QuietZone   float64 `json:"quiet_zone"`   // mm of white on each side
	DPI         int     `json:"dpi"`
}

// DefaultOptions returns the default symbol dimensions.
func DefaultOptions() Options {
	return Options{
		ModuleWidth: DefaultModuleWidth,
		BarHeight:   DefaultBarHeight,
		QuietZone:   DefaultQuietZone,
		DPI:         DefaultDPI,
	}
}

func (o Options) withDefaults() Options {
	if o.ModuleWidth <= 0 {
		o.ModuleWidth = DefaultModuleWidth
	}
	if o.BarHeight <= 0 {
		o.BarHeight = DefaultBarHeight
	}
	if o.QuietZone < 0 {
		o.QuietZone = 0
	}
	if o.DPI <= 0 {
		o.DPI = DefaultDPI
	}
	return o
}

// Pixels converts a length in millimetres to whole pixels at dpi.
func Pixels(mm float64, dpi int) int {
	return int(math.Round(mm * float64(dpi) / 25.4))
}

// Modules encodes payload as Code-128 and returns its module pattern, true
// for bars. The pattern includes start, checksum and stop symbols.
func Modules(payload string) ([]bool, error) {
	if payload == "" {
		return nil, errors.New(errors.ErrCodeEncodeFailed, "empty barcode payload")
	}
	bc, err := code128.Encode(payload)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncodeFailed, err, "encode %q", payload)
	}

	b := bc.Bounds()
	modules := make([]bool, b.Dx())
	for i := range modules {
		g := color.GrayModel.Convert(bc.At(b.Min.X+i, b.Min.Y)).(color.Gray)
		modules[i] = g.Y < 128
	}
	return modules, nil
}

// Encode renders payload as a grayscale Code-128 image.
func Encode(payload string, opts Options) (image.Image, error) {
	modules, err := Modules(payload)
	if err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	mw := max(1, Pixels(opts.ModuleWidth, opts.DPI))
	qz := Pixels(opts.QuietZone, opts.DPI)
	h := max(1, Pixels(opts.BarHeight, opts.DPI))
	w := 2*qz + len(modules)*mw

	img := image.NewGray(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	// Adjacent bar modules merge into one rectangle.
	for i := 0; i < len(modules); {
		if !modules[i] {
			i++
			continue
		}
		j := i
		for j < len(modules) && modules[j] {
			j++
		}
		r := image.Rect(qz+i*mw, 0, qz+j*mw, h)
		draw.Draw(img, r, image.Black, image.Point{}, draw.Src)
		i = j
	}
	return img, nil
}
