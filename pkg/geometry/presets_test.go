package geometry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/labelsheet/pkg/errors"
)

func TestBuiltinPresetsValid(t *testing.T) {
	r := NewRegistry()
	for _, p := range r.Presets() {
		t.Run(p.Name, func(t *testing.T) {
			if err := p.Validate(); err != nil {
				t.Errorf("Validate() = %v", err)
			}
		})
	}
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()

	p, err := r.Lookup("")
	if err != nil || p.Name != DefaultPreset {
		t.Fatalf("Lookup(\"\") = %v, %v", p.Name, err)
	}

	p, err = r.Lookup("avery5160-compact")
	if err != nil {
		t.Fatal(err)
	}
	if p.Canvas != CanvasCompact || !approx(p.Geometry.LabelWidth, 180) {
		t.Errorf("compact preset = %+v", p)
	}

	_, err = r.Lookup("nope")
	if !errors.Is(err, errors.ErrCodeInvalidPreset) {
		t.Errorf("Lookup(nope) error = %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), "avery5160") {
		t.Errorf("error should list available presets: %v", err)
	}
}

func TestRegistryNames(t *testing.T) {
	r := NewRegistry()
	got := r.Names()
	want := []string{"avery5160", "avery5160-compact"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

const herma = `
[[preset]]
name = "herma4457"
description = "3x8 labels, 70 x 37 mm"
paper = "a4"
unit = "mm"
label_width = 70
label_height = 37
columns = 3
rows = 8
left_margin = 0
top_margin = 0
canvas = "compact"

[[preset]]
name = "avery5160"
description = "letter override"
paper = "letter"
unit = "in"
label_width = 2.625
label_height = 1
columns = 3
rows = 10
left_margin = 0.3
top_margin = 0.5
symmetric = true
`

func TestParsePresets(t *testing.T) {
	presets, err := ParsePresets([]byte(herma))
	if err != nil {
		t.Fatal(err)
	}
	if len(presets) != 2 {
		t.Fatalf("got %d presets, want 2", len(presets))
	}

	h := presets[0]
	if h.Name != "herma4457" || h.Canvas != CanvasCompact {
		t.Errorf("preset = %+v", h)
	}
	if !approx(h.Geometry.LabelWidth, 70*MM) || h.Geometry.Rows != 8 {
		t.Errorf("geometry = %+v", h.Geometry)
	}

	a := presets[1]
	if a.Canvas != CanvasWide {
		t.Errorf("default canvas = %q, want %q", a.Canvas, CanvasWide)
	}
	if a.Geometry.PageWidth != Letter.Width || !a.Symmetric {
		t.Errorf("override = %+v", a)
	}
}

func TestParsePresetsErrors(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"syntax", `[[preset]`},
		{"duplicate", `
[[preset]]
name = "a"
paper = "a4"
label_width = 100
label_height = 50
columns = 1
rows = 1
[[preset]]
name = "a"
paper = "a4"
label_width = 100
label_height = 50
columns = 1
rows = 1
`},
		{"unknown unit", `
[[preset]]
name = "a"
unit = "cm"
`},
		{"unknown paper", `
[[preset]]
name = "a"
paper = "tabloid"
`},
		{"bad canvas", `
[[preset]]
name = "a"
paper = "a4"
label_width = 100
label_height = 50
columns = 1
rows = 1
canvas = "huge"
`},
		{"does not fit", `
[[preset]]
name = "a"
paper = "a4"
label_width = 300
label_height = 50
columns = 2
rows = 1
`},
		{"bad name", `
[[preset]]
name = "has space"
paper = "a4"
label_width = 100
label_height = 50
columns = 1
rows = 1
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePresets([]byte(tt.toml)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRegistryLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.toml")
	if err := os.WriteFile(path, []byte(herma), 0644); err != nil {
		t.Fatal(err)
	}

	r := NewRegistry()
	if err := r.LoadFile(path); err != nil {
		t.Fatal(err)
	}

	if _, err := r.Lookup("herma4457"); err != nil {
		t.Errorf("loaded preset missing: %v", err)
	}
	p, _ := r.Lookup("avery5160")
	if p.Description != "letter override" {
		t.Errorf("loaded preset should override built-in, got %q", p.Description)
	}

	if err := r.LoadFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}
