// Package pipeline provides the label sheet generation pipeline.
//
// This package implements the complete layout → render pipeline that is used
// by both the CLI and the HTTP service. By centralizing this logic, both
// entry points share defaults, validation and caching.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Layout: render one label per value and place it on grid pages
//  2. Render: write the laid-out document in each requested format
//     (PDF, PNG page preview, JSON manifest)
//
// Artifacts are cached by a key covering every input that affects their
// bytes. When every requested format is cached, no labels are rendered.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Header:  "JNIAS COLLEGE LIBRARY",
//	    Start:   pipeline.Int(1),
//	    Count:   1000,
//	    Preset:  "avery5160",
//	    Formats: []string{"pdf"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pdf := result.Artifacts["pdf"]
package pipeline

import (
	"io"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/labelsheet/pkg/buildinfo"
	"github.com/matzehuels/labelsheet/pkg/cache"
	"github.com/matzehuels/labelsheet/pkg/errors"
	"github.com/matzehuels/labelsheet/pkg/fonts"
	"github.com/matzehuels/labelsheet/pkg/geometry"
	"github.com/matzehuels/labelsheet/pkg/layout"
	"github.com/matzehuels/labelsheet/pkg/render/label"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and HTTP service
// =============================================================================

const (
	// DefaultHeader is printed at the top of every label.
	DefaultHeader = "JNIAS COLLEGE LIBRARY"

	// DefaultStart is the first barcode number.
	DefaultStart = 1

	// DefaultCount is the number of labels the CLI generates when not told.
	DefaultCount = 1000

	// DefaultMaxCount caps the labels generated in one run.
	DefaultMaxCount = 5000

	// DefaultPreset is the label stock used when none is named.
	DefaultPreset = geometry.DefaultPreset

	// DefaultFilename is the base name of downloaded artifacts.
	DefaultFilename = "library_barcode_labels"
)

// Format constants for output formats.
const (
	FormatPDF  = "pdf"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPDF:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one label sheet run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Label options
	Header string `json:"header,omitempty"`
	Start  *int   `json:"start,omitempty"` // nil means DefaultStart
	Count  int    `json:"count"`
	Preset string `json:"preset,omitempty"`
	Resize *bool  `json:"resize,omitempty"` // nil keeps the preset's canvas setting

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Title     string   `json:"title,omitempty"`
	CutGuides bool     `json:"cut_guides,omitempty"`
	Page      int      `json:"page,omitempty"`  // page rendered for png
	Scale     float64  `json:"scale,omitempty"` // png pixels per point

	// Limits
	Workers  int `json:"-"`
	MaxCount int `json:"-"`

	// Runtime options (not serialized)
	Logger   *log.Logger         `json:"-"`
	Registry *geometry.Registry  `json:"-"`
	Progress layout.ProgressFunc `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the laid-out sheet. It is nil when every artifact came
	// from the cache.
	Document *layout.Document

	// Preset is the resolved label stock.
	Preset geometry.Preset

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Labels     int
	Pages      int
	LayoutTime time.Duration
	RenderTime time.Duration
	FontSource string // "preferred" or "fallback"
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	Hit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: pdf, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
//
// A nil Start means DefaultStart; an explicit start below 1 is rejected.
// Count has no default and must be set.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Header == "" {
		o.Header = DefaultHeader
	}
	if err := errors.ValidateHeader(o.Header); err != nil {
		return err
	}

	if o.Start == nil {
		o.Start = Int(DefaultStart)
	}
	if *o.Start < 1 {
		return errors.New(errors.ErrCodeInvalidStart, "start must be at least 1, got %d", *o.Start)
	}

	if o.MaxCount <= 0 {
		o.MaxCount = DefaultMaxCount
	}
	if o.Count < 1 {
		return errors.New(errors.ErrCodeInvalidCount, "count must be at least 1, got %d", o.Count)
	}
	if o.Count > o.MaxCount {
		return errors.New(errors.ErrCodeInvalidCount,
			"count must be at most %d, got %d", o.MaxCount, o.Count)
	}

	if o.Preset == "" {
		o.Preset = DefaultPreset
	}
	if o.Registry == nil {
		o.Registry = geometry.NewRegistry()
	}
	if _, err := o.Registry.Lookup(o.Preset); err != nil {
		return err
	}

	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if last := *o.Start + o.Count - 1; last < *o.Start {
		return errors.New(errors.ErrCodeInvalidCount, "label numbers overflow")
	}

	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// Int returns a pointer to n, for setting Options.Start.
func Int(n int) *int { return &n }

// FirstValue returns the number printed on the first label.
func (o *Options) FirstValue() int {
	if o.Start == nil {
		return DefaultStart
	}
	return *o.Start
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPDF}
	}
	if o.Page <= 0 {
		o.Page = 1
	}
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if o.Title == "" {
		o.Title = o.Header
	}
}

// ResolvePreset returns the preset named by the options.
func (o *Options) ResolvePreset() (geometry.Preset, error) {
	reg := o.Registry
	if reg == nil {
		reg = geometry.NewRegistry()
	}
	return reg.Lookup(o.Preset)
}

// ResolveCanvas returns the label canvas for p with the Resize override
// applied.
func (o *Options) ResolveCanvas(p geometry.Preset) (label.Canvas, error) {
	c, ok := label.CanvasByName(p.Canvas)
	if !ok {
		return label.Canvas{}, errors.New(errors.ErrCodeInvalidPreset,
			"preset %s: unknown canvas %q", p.Name, p.Canvas)
	}
	if o.Resize != nil {
		c = c.WithResize(*o.Resize)
	}
	return c, nil
}

// ArtifactKeyOpts returns cache key options for one artifact rendered with
// the given font source. Entries from other builds or fonts never match.
func (o *Options) ArtifactKeyOpts(format string, p geometry.Preset, c label.Canvas, font fonts.Source) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Header:   o.Header,
		Start:    o.FirstValue(),
		Count:    o.Count,
		Format:   format,
		Preset:   p.Name,
		Canvas:   c.Name,
		Resize:   c.Resize,
		Geometry: cache.HashJSON(p.Geometry),
		Font:     string(font),
		Version:  buildinfo.Version,
	}
	switch format {
	case FormatPDF:
		k.Title = o.Title
		k.CutGuides = o.CutGuides
	case FormatPNG:
		k.Page = o.Page
		k.Scale = o.Scale
	}
	return k
}

// Filename returns the download file name for format.
func Filename(format string) string {
	return DefaultFilename + "." + format
}
