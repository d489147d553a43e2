package fonts

import (
	"testing"

	"golang.org/x/image/font"
)

func TestFallback(t *testing.T) {
	r := Fallback(34)
	if r.Source != SourceFallback {
		t.Errorf("Source = %v, want %v", r.Source, SourceFallback)
	}
	if r.Font == nil {
		t.Fatal("Font is nil")
	}
	if r.Path != "" {
		t.Errorf("Path = %q, want empty", r.Path)
	}

	face := r.NewFace()
	defer face.Close()
	if w := font.MeasureString(face, "12345"); w <= 0 {
		t.Errorf("MeasureString = %v, want > 0", w)
	}
}

func TestResolveMissingFontFallsBack(t *testing.T) {
	r := Resolve("definitely-not-installed-7f3a.ttf", 36)
	if r.Source != SourceFallback {
		t.Errorf("Source = %v, want %v", r.Source, SourceFallback)
	}
	if r.Size != 36 {
		t.Errorf("Size = %v, want 36", r.Size)
	}

	// Second lookup hits the negative cache and still falls back.
	if again := Resolve("definitely-not-installed-7f3a.ttf", 36); again.Source != SourceFallback {
		t.Errorf("cached Source = %v, want %v", again.Source, SourceFallback)
	}
}

func TestResolveEmptyName(t *testing.T) {
	if r := Resolve("", 12); r.Source != SourceFallback {
		t.Errorf("Source = %v, want %v", r.Source, SourceFallback)
	}
}

func TestFaceSizeScales(t *testing.T) {
	small := Fallback(10).NewFace()
	large := Fallback(40).NewFace()
	defer small.Close()
	defer large.Close()

	ws := font.MeasureString(small, "LIBRARY")
	wl := font.MeasureString(large, "LIBRARY")
	if wl <= ws {
		t.Errorf("40px width %v should exceed 10px width %v", wl, ws)
	}
}
