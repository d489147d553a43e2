package pipeline

import (
	"context"

	"github.com/matzehuels/labelsheet/pkg/geometry"
	"github.com/matzehuels/labelsheet/pkg/layout"
	"github.com/matzehuels/labelsheet/pkg/render/label"
)

// =============================================================================
// Layout Generation
// =============================================================================

// NewRenderer builds the label renderer for a preset with the options'
// resize override applied.
func NewRenderer(p geometry.Preset, opts Options) (*label.Renderer, error) {
	c, err := opts.ResolveCanvas(p)
	if err != nil {
		return nil, err
	}
	return label.New(c, label.WithLogger(opts.Logger)), nil
}

// GenerateLayout renders and places every label of the run.
// Options must have been validated.
func GenerateLayout(ctx context.Context, p geometry.Preset, r layout.Renderer, opts Options) (*layout.Document, error) {
	eng, err := layout.New(p.Geometry, r,
		layout.WithWorkers(opts.Workers),
		layout.WithMaxCount(opts.MaxCount),
		layout.WithLogger(opts.Logger),
		layout.WithProgress(opts.Progress),
	)
	if err != nil {
		return nil, err
	}
	return eng.Layout(ctx, opts.FirstValue(), opts.Count, opts.Header)
}

// RenderLabel renders a single label for value as PNG, for previews.
func RenderLabel(opts Options, value int) ([]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	p, err := opts.ResolvePreset()
	if err != nil {
		return nil, err
	}
	r, err := NewRenderer(p, opts)
	if err != nil {
		return nil, err
	}
	l, err := r.Render(opts.Header, value)
	if err != nil {
		return nil, err
	}
	return l.PNG()
}
