package label

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"github.com/matzehuels/labelsheet/pkg/errors"
	"github.com/matzehuels/labelsheet/pkg/fonts"
)

func dark(img image.Image, x, y int) bool {
	return color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y < 128
}

func darkInRows(img image.Image, y0, y1 int) int {
	n := 0
	b := img.Bounds()
	for y := y0; y < y1; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if dark(img, x, y) {
				n++
			}
		}
	}
	return n
}

func TestRenderCanvasSize(t *testing.T) {
	tests := []struct {
		canvas Canvas
		w, h   int
	}{
		{Wide, 700, 300},
		{Compact, 600, 250},
	}

	for _, tt := range tests {
		t.Run(tt.canvas.Name, func(t *testing.T) {
			l, err := New(tt.canvas).Render("HEADER", 1042)
			if err != nil {
				t.Fatal(err)
			}
			b := l.Image.Bounds()
			if b.Dx() != tt.w || b.Dy() != tt.h {
				t.Errorf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.w, tt.h)
			}
			if l.Value != 1042 || l.Header != "HEADER" {
				t.Errorf("label = %q/%d", l.Header, l.Value)
			}
		})
	}
}

func TestRenderComposition(t *testing.T) {
	l, err := New(Wide).Render("HEADER", 7)
	if err != nil {
		t.Fatal(err)
	}
	img := l.Image

	if dark(img, 0, 0) || dark(img, 699, 299) {
		t.Error("corners should be white")
	}
	if darkInRows(img, Wide.HeaderY, Wide.HeaderY+40) == 0 {
		t.Error("header band is empty")
	}
	if darkInRows(img, Wide.BarcodeY+50, Wide.BarcodeY+51) == 0 {
		t.Error("barcode band is empty")
	}
	if darkInRows(img, Wide.FooterY, Wide.Height) == 0 {
		t.Error("footer band is empty")
	}

	// The symbol is centred: its left and right margins differ by at most 1px.
	row := Wide.BarcodeY + 50
	left, right := -1, -1
	for x := 0; x < Wide.Width; x++ {
		if dark(img, x, row) {
			if left < 0 {
				left = x
			}
			right = x
		}
	}
	if d := left - (Wide.Width - 1 - right); d < -1 || d > 1 {
		t.Errorf("barcode not centred: left=%d right=%d", left, right)
	}
}

func TestRenderNativeBarHeight(t *testing.T) {
	l, err := New(Wide).Render("HEADER", 1000)
	if err != nil {
		t.Fatal(err)
	}

	// The first bar sits left of the footer text, so its full 18mm
	// (213px at 300dpi) height is visible below the footer baseline.
	row := Wide.BarcodeY + 50
	left := -1
	for x := 0; x < Wide.Width; x++ {
		if dark(l.Image, x, row) {
			left = x
			break
		}
	}
	if left < 0 {
		t.Fatal("no barcode found")
	}
	if !dark(l.Image, left, Wide.BarcodeY+210) {
		t.Errorf("bar at x=%d should reach y=%d", left, Wide.BarcodeY+210)
	}
	if dark(l.Image, left, Wide.BarcodeY+216) {
		t.Errorf("bar at x=%d should end before y=%d", left, Wide.BarcodeY+216)
	}
}

func TestRenderResize(t *testing.T) {
	l, err := New(Compact).Render("HEADER", 123456)
	if err != nil {
		t.Fatal(err)
	}
	row := Compact.BarcodeY + Compact.ResizeHeight/2
	x0 := (Compact.Width - Compact.ResizeWidth) / 2
	for x := 0; x < x0; x++ {
		if dark(l.Image, x, row) {
			t.Fatalf("pixel %d left of the resize box is dark", x)
		}
	}
	for x := x0 + Compact.ResizeWidth; x < Compact.Width; x++ {
		if dark(l.Image, x, row) {
			t.Fatalf("pixel %d right of the resize box is dark", x)
		}
	}
	if darkInRows(l.Image, row, row+1) == 0 {
		t.Error("resized barcode missing")
	}
}

func TestRenderResizeEmptyBox(t *testing.T) {
	c := Wide
	c.Resize = true
	_, err := New(c).Render("HEADER", 1)
	if !errors.Is(err, errors.ErrCodeRenderFailed) {
		t.Errorf("error = %v, want %v", err, errors.ErrCodeRenderFailed)
	}
}

func TestWithResize(t *testing.T) {
	c := Wide.WithResize(true)
	if !c.Resize || c.ResizeWidth != 595 || c.ResizeHeight != 170 {
		t.Errorf("WithResize(true) = %+v", c)
	}
	if Wide.Resize {
		t.Error("WithResize must not modify the receiver")
	}
	if n := Compact.WithResize(false); n.Resize || n.ResizeWidth != 520 {
		t.Errorf("WithResize(false) = %+v", n)
	}
}

func TestFontFallbackTogether(t *testing.T) {
	c := Wide
	c.FontName = "no-such-font-91c2.ttf"
	r := New(c)
	if r.FontSource() != fonts.SourceFallback {
		t.Errorf("FontSource() = %v", r.FontSource())
	}
	if r.header.Source != r.footer.Source {
		t.Errorf("header %v and footer %v disagree", r.header.Source, r.footer.Source)
	}
}

func TestRenderConcurrent(t *testing.T) {
	r := New(Wide)
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 1; i <= 16; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			if _, err := r.Render("HEADER", v); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestLabelPNG(t *testing.T) {
	l, err := New(Wide).Render("HEADER", 1)
	if err != nil {
		t.Fatal(err)
	}
	data, err := l.PNG()
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 700 {
		t.Errorf("decoded width = %d", img.Bounds().Dx())
	}
}

func TestCanvasByName(t *testing.T) {
	for _, n := range CanvasNames() {
		c, ok := CanvasByName(n)
		if !ok || c.Name != n {
			t.Errorf("CanvasByName(%q) = %v, %v", n, c.Name, ok)
		}
	}
	if _, ok := CanvasByName("huge"); ok {
		t.Error("unknown canvas found")
	}
}
