package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"regexp"
	"testing"
	"time"

	"github.com/matzehuels/labelsheet/pkg/errors"
	"github.com/matzehuels/labelsheet/pkg/geometry"
	"github.com/matzehuels/labelsheet/pkg/layout"
	"github.com/matzehuels/labelsheet/pkg/render/label"
)

// blockRenderer draws an all-black label.
type blockRenderer struct{}

func (blockRenderer) Render(header string, value int) (*label.Label, error) {
	img := image.NewGray(image.Rect(0, 0, 70, 30))
	for i := range img.Pix {
		img.Pix[i] = 0
	}
	return &label.Label{Header: header, Value: value, Image: img}, nil
}

func testDocument(t *testing.T, count int) *layout.Document {
	t.Helper()
	eng, err := layout.New(geometry.Avery5160.Geometry, blockRenderer{})
	if err != nil {
		t.Fatal(err)
	}
	doc, err := eng.Layout(context.Background(), 1, count, "LIB")
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

var pageObject = regexp.MustCompile(`/Type\s*/Page\b`)

func TestRenderPDF(t *testing.T) {
	tests := []struct {
		count int
		pages int
	}{
		{1, 1},
		{30, 1},
		{31, 2},
		{65, 3},
	}

	for _, tt := range tests {
		doc := testDocument(t, tt.count)
		data, err := RenderPDF(doc, WithTitle("Library barcodes"), WithAuthor("test"))
		if err != nil {
			t.Fatalf("count %d: %v", tt.count, err)
		}
		if !bytes.HasPrefix(data, []byte("%PDF-")) {
			t.Errorf("count %d: missing PDF header", tt.count)
		}
		if got := len(pageObject.FindAll(data, -1)); got != tt.pages {
			t.Errorf("count %d: %d page objects, want %d", tt.count, got, tt.pages)
		}
		if !bytes.Contains(data, []byte("595.28")) {
			t.Errorf("count %d: A4 media box not found", tt.count)
		}
	}
}

func TestRenderPDFEmpty(t *testing.T) {
	_, err := RenderPDF(testDocument(t, 0))
	if !errors.Is(err, errors.ErrCodeEmptyDocument) {
		t.Errorf("error = %v, want %v", err, errors.ErrCodeEmptyDocument)
	}
	if _, err := RenderPDF(nil); !errors.Is(err, errors.ErrCodeEmptyDocument) {
		t.Errorf("nil document error = %v", err)
	}
}

func TestRenderPDFReproducible(t *testing.T) {
	doc := testDocument(t, 4)
	when := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	a, err := RenderPDF(doc, WithCreationDate(when), WithCutGuides())
	if err != nil {
		t.Fatal(err)
	}
	b, err := RenderPDF(doc, WithCreationDate(when), WithCutGuides())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("identical input with a fixed date should give identical bytes")
	}
}

func TestRenderPNG(t *testing.T) {
	doc := testDocument(t, 31)
	data, err := RenderPNG(doc, 1)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 595 || b.Dy() != 842 {
		t.Errorf("size = %dx%d, want 595x842", b.Dx(), b.Dy())
	}

	g := doc.Geometry
	// Inside the first cell (top-left), the left margin and below the grid.
	insideX, insideY := int(g.LeftMargin)+10, int(g.TopMargin)+10
	if !isDark(img.At(insideX, insideY)) {
		t.Error("first cell should be drawn")
	}
	if isDark(img.At(5, insideY)) {
		t.Error("left margin should be white")
	}
	if isDark(img.At(insideX, 830)) {
		t.Error("bottom margin should be white")
	}

	// Page 2 holds one label in the top-left cell only.
	data, err = RenderPNG(doc, 2, WithScale(2))
	if err != nil {
		t.Fatal(err)
	}
	img, _ = png.Decode(bytes.NewReader(data))
	if img.Bounds().Dx() != 1191 {
		t.Errorf("scaled width = %d, want 1191", img.Bounds().Dx())
	}
	if !isDark(img.At(2*insideX, 2*insideY)) {
		t.Error("page 2 first cell should be drawn")
	}
	if isDark(img.At(2*(int(g.LeftMargin+g.LabelWidth)+10), 2*insideY)) {
		t.Error("page 2 second cell should be empty")
	}
}

func TestRenderPNGPageRange(t *testing.T) {
	doc := testDocument(t, 3)
	for _, page := range []int{0, 2, -1} {
		if _, err := RenderPNG(doc, page); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("page %d: error = %v", page, err)
		}
	}
	if _, err := RenderPNG(testDocument(t, 0), 1); !errors.Is(err, errors.ErrCodeEmptyDocument) {
		t.Errorf("empty document error = %v", err)
	}
}

func TestRenderJSON(t *testing.T) {
	doc := testDocument(t, 32)
	data, err := RenderJSON(doc, WithJSONPreset("avery5160"), WithJSONCanvas("wide"))
	if err != nil {
		t.Fatal(err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.Preset != "avery5160" || out.Canvas != "wide" || out.Header != "LIB" {
		t.Errorf("metadata = %q %q %q", out.Preset, out.Canvas, out.Header)
	}
	if out.Labels != 32 || out.Capacity != 30 || len(out.Pages) != 2 {
		t.Errorf("labels=%d capacity=%d pages=%d", out.Labels, out.Capacity, len(out.Pages))
	}
	last := out.Pages[1].Labels[1]
	if last.Index != 31 || last.Value != 32 {
		t.Errorf("last label = %+v", last)
	}
	x, y := doc.Geometry.Cell(31)
	if last.X != x || last.Y != y {
		t.Errorf("last label at (%v, %v), want (%v, %v)", last.X, last.Y, x, y)
	}
}

func TestRenderJSONEmpty(t *testing.T) {
	data, err := RenderJSON(testDocument(t, 0))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"pages": []`)) {
		t.Errorf("empty manifest = %s", data)
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"pdf":  ContentTypePDF,
		"png":  ContentTypePNG,
		"json": ContentTypeJSON,
		"svg":  "application/octet-stream",
	}
	for format, want := range tests {
		if got := ContentType(format); got != want {
			t.Errorf("ContentType(%q) = %q, want %q", format, got, want)
		}
	}
}

func isDark(c color.Color) bool {
	return color.GrayModel.Convert(c).(color.Gray).Y < 128
}
