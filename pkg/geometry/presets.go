package geometry

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/labelsheet/pkg/errors"
)

// Canvas profile names understood by the label renderer.
const (
	CanvasWide    = "wide"
	CanvasCompact = "compact"
)

// DefaultPreset is used when no preset is named.
const DefaultPreset = "avery5160"

// Preset binds a label stock to its grid geometry and label canvas profile.
type Preset struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Geometry    Geometry `json:"geometry"`
	Canvas      string   `json:"canvas"`
	Symmetric   bool     `json:"symmetric,omitempty"`
}

// Validate checks the preset name, canvas and geometry.
func (p Preset) Validate() error {
	if err := errors.ValidatePresetName(p.Name); err != nil {
		return err
	}
	switch p.Canvas {
	case CanvasWide, CanvasCompact:
	default:
		return errors.New(errors.ErrCodeInvalidPreset,
			"preset %s: unknown canvas %q (want %s or %s)", p.Name, p.Canvas, CanvasWide, CanvasCompact)
	}
	validate := p.Geometry.Validate
	if p.Symmetric {
		validate = p.Geometry.ValidateSymmetric
	}
	if err := validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidGeometry, err, "preset %s", p.Name)
	}
	return nil
}

// Avery5160 is a 3x10 sheet of 2.625in x 1in labels on A4.
var Avery5160 = Preset{
	Name:        "avery5160",
	Description: "3x10 labels, 2.625in x 1in, A4",
	Geometry: Geometry{
		LabelWidth:  2.625 * Inch,
		LabelHeight: 1 * Inch,
		Columns:     3,
		Rows:        10,
		LeftMargin:  0.3 * Inch,
		TopMargin:   0.5 * Inch,
		PageWidth:   A4.Width,
		PageHeight:  A4.Height,
	},
	Canvas: CanvasWide,
}

// Avery5160Compact is the narrower 2.5in cell variant with a compact canvas.
var Avery5160Compact = Preset{
	Name:        "avery5160-compact",
	Description: "3x10 labels, 2.5in x 1in, A4, fixed-size barcode",
	Geometry: Geometry{
		LabelWidth:  2.5 * Inch,
		LabelHeight: 1 * Inch,
		Columns:     3,
		Rows:        10,
		LeftMargin:  0.3 * Inch,
		TopMargin:   0.5 * Inch,
		PageWidth:   A4.Width,
		PageHeight:  A4.Height,
	},
	Canvas:    CanvasCompact,
	Symmetric: true,
}

// Registry holds presets by name. The zero value is empty; use NewRegistry
// for one seeded with the built-ins.
type Registry struct {
	presets map[string]Preset
}

// NewRegistry returns a registry containing the built-in presets.
func NewRegistry() *Registry {
	r := &Registry{presets: make(map[string]Preset)}
	for _, p := range []Preset{Avery5160, Avery5160Compact} {
		r.presets[p.Name] = p
	}
	return r
}

// Add validates p and stores it, replacing any preset with the same name.
func (r *Registry) Add(p Preset) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if r.presets == nil {
		r.presets = make(map[string]Preset)
	}
	r.presets[p.Name] = p
	return nil
}

// Lookup returns the preset called name.
func (r *Registry) Lookup(name string) (Preset, error) {
	if name == "" {
		name = DefaultPreset
	}
	p, ok := r.presets[name]
	if !ok {
		return Preset{}, errors.New(errors.ErrCodeInvalidPreset,
			"unknown preset %q (available: %s)", name, strings.Join(r.Names(), ", "))
	}
	return p, nil
}

// Names returns all preset names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.presets))
	for n := range r.presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Presets returns all presets sorted by name.
func (r *Registry) Presets() []Preset {
	out := make([]Preset, 0, len(r.presets))
	for _, n := range r.Names() {
		out = append(out, r.presets[n])
	}
	return out
}

// LoadFile reads presets from a TOML file into the registry. Loaded presets
// override built-ins of the same name.
func (r *Registry) LoadFile(path string) error {
	presets, err := LoadPresets(path)
	if err != nil {
		return err
	}
	for _, p := range presets {
		if err := r.Add(p); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// TOML preset files
// =============================================================================

type presetFile struct {
	Preset []presetEntry `toml:"preset"`
}

type presetEntry struct {
	Name        string  `toml:"name"`
	Description string  `toml:"description"`
	Paper       string  `toml:"paper"`
	PageWidth   float64 `toml:"page_width"`
	PageHeight  float64 `toml:"page_height"`
	Unit        string  `toml:"unit"`
	LabelWidth  float64 `toml:"label_width"`
	LabelHeight float64 `toml:"label_height"`
	Columns     int     `toml:"columns"`
	Rows        int     `toml:"rows"`
	LeftMargin  float64 `toml:"left_margin"`
	TopMargin   float64 `toml:"top_margin"`
	Canvas      string  `toml:"canvas"`
	Symmetric   bool    `toml:"symmetric"`
}

// LoadPresets reads a TOML preset file:
//
//	[[preset]]
//	name = "herma4457"
//	paper = "a4"
//	unit = "mm"
//	label_width = 70
//	label_height = 37
//	columns = 3
//	rows = 8
//	left_margin = 0
//	top_margin = 0
//	canvas = "wide"
//
// A custom page size may be given with page_width and page_height (in unit)
// instead of paper. Every preset is validated; duplicate names are an error.
func LoadPresets(path string) ([]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParsePresets(data)
}

// ParsePresets decodes TOML preset definitions. See LoadPresets.
func ParsePresets(data []byte) ([]Preset, error) {
	var f presetFile
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPreset, err, "parse preset file")
	}

	seen := make(map[string]bool, len(f.Preset))
	out := make([]Preset, 0, len(f.Preset))
	for i, e := range f.Preset {
		p, err := e.preset()
		if err != nil {
			return nil, fmt.Errorf("preset #%d: %w", i+1, err)
		}
		if seen[p.Name] {
			return nil, errors.New(errors.ErrCodeInvalidPreset, "duplicate preset %q", p.Name)
		}
		seen[p.Name] = true
		if err := p.Validate(); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (e presetEntry) preset() (Preset, error) {
	unit, ok := UnitByName(e.Unit)
	if !ok {
		return Preset{}, errors.New(errors.ErrCodeInvalidPreset,
			"unknown unit %q (want pt, in or mm)", e.Unit)
	}

	pw, ph := e.PageWidth*unit, e.PageHeight*unit
	if e.Paper != "" {
		paper, ok := PaperByName(e.Paper)
		if !ok {
			return Preset{}, errors.New(errors.ErrCodeInvalidPreset,
				"unknown paper %q (available: %s)", e.Paper, strings.Join(PaperNames(), ", "))
		}
		pw, ph = paper.Width, paper.Height
	}

	canvas := e.Canvas
	if canvas == "" {
		canvas = CanvasWide
	}

	return Preset{
		Name:        e.Name,
		Description: e.Description,
		Geometry: Geometry{
			LabelWidth:  e.LabelWidth * unit,
			LabelHeight: e.LabelHeight * unit,
			Columns:     e.Columns,
			Rows:        e.Rows,
			LeftMargin:  e.LeftMargin * unit,
			TopMargin:   e.TopMargin * unit,
			PageWidth:   pw,
			PageHeight:  ph,
		},
		Canvas:    canvas,
		Symmetric: e.Symmetric,
	}, nil
}
