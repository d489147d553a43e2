// Package layout places rendered labels onto fixed-grid pages.
//
// The engine walks values start..start+count-1, renders each one and puts it
// in the next free cell, left to right and top to bottom. A page is sealed as
// soon as its last cell is filled, and a final partial page is sealed after
// the loop, so a count that is a multiple of the page capacity never leaves
// an empty trailing page.
//
// Layout is all or nothing: if any label fails to render the run is aborted
// and no document is returned.
//
//	eng, err := layout.New(preset.Geometry, label.New(label.Wide), layout.WithWorkers(4))
//	doc, err := eng.Layout(ctx, 1, 1000, "JNIAS COLLEGE LIBRARY")
package layout

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/labelsheet/pkg/errors"
	"github.com/matzehuels/labelsheet/pkg/geometry"
	"github.com/matzehuels/labelsheet/pkg/render/label"
)

// Renderer produces one label image per value.
type Renderer interface {
	Render(header string, value int) (*label.Label, error)
}

// ProgressFunc receives the number of labels rendered so far. With more
// than one worker it is called from several goroutines.
type ProgressFunc func(done, total int)

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers renders up to n labels in parallel. Placement order and
// coordinates do not depend on n.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

// WithMaxCount rejects runs of more than n labels. Zero means no limit.
func WithMaxCount(n int) Option {
	return func(e *Engine) { e.maxCount = n }
}

// WithLogger sets the logger for page and run events.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithProgress registers a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(e *Engine) { e.progress = fn }
}

// Engine lays out labels for one grid geometry.
type Engine struct {
	geom     geometry.Geometry
	renderer Renderer
	workers  int
	maxCount int
	logger   *log.Logger
	progress ProgressFunc
}

// New validates g and returns an engine that renders with r.
func New(g geometry.Geometry, r Renderer, opts ...Option) (*Engine, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "renderer is required")
	}
	e := &Engine{geom: g, renderer: r, workers: 1}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers < 1 {
		e.workers = 1
	}
	if e.logger == nil {
		e.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return e, nil
}

// Geometry returns the engine's grid.
func (e *Engine) Geometry() geometry.Geometry { return e.geom }

// Layout renders count labels numbered from start and places them on pages.
//
// A count below one yields an empty document without rendering anything.
// A negative start is rejected.
func (e *Engine) Layout(ctx context.Context, start, count int, header string) (*Document, error) {
	if start < 0 {
		return nil, errors.New(errors.ErrCodeInvalidStart, "start must not be negative, got %d", start)
	}
	doc := &Document{Geometry: e.geom, Header: header}
	if count < 1 {
		return doc, nil
	}
	if e.maxCount > 0 && count > e.maxCount {
		return nil, errors.New(errors.ErrCodeInvalidCount,
			"count %d exceeds maximum of %d", count, e.maxCount)
	}

	e.logger.Debug("layout", "start", start, "count", count,
		"pages", e.geom.PagesFor(count), "workers", e.workers)

	var next func(i int) ([]byte, error)
	if e.workers > 1 && count > 1 {
		images, err := e.renderAll(ctx, start, count, header)
		if err != nil {
			return nil, err
		}
		next = func(i int) ([]byte, error) {
			img := images[i]
			images[i] = nil
			return img, nil
		}
	} else {
		next = func(i int) ([]byte, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			img, err := e.render(header, start+i)
			if err != nil {
				return nil, err
			}
			e.report(i+1, count)
			return img, nil
		}
	}

	cur := NewCursor(e.geom)
	page := &Page{Number: 1}
	for i := 0; i < count; i++ {
		img, err := next(i)
		if err != nil {
			return nil, err
		}
		if err := page.place(Placement{
			Index:  i,
			Value:  start + i,
			X:      cur.X,
			Y:      cur.Y,
			Width:  e.geom.LabelWidth,
			Height: e.geom.LabelHeight,
			PNG:    img,
		}); err != nil {
			return nil, err
		}

		if cur.Advance() {
			e.seal(doc, page)
			page = &Page{Number: page.Number + 1}
		}
	}
	if page.Len() > 0 {
		e.seal(doc, page)
	}
	return doc, nil
}

// render draws one label and encodes it. Only the encoded image is kept so
// memory stays proportional to the compressed size of the run.
func (e *Engine) render(header string, value int) ([]byte, error) {
	l, err := e.renderer.Render(header, value)
	if err != nil {
		return nil, fmt.Errorf("render label %d: %w", value, err)
	}
	img, err := l.PNG()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "encode label %d", value)
	}
	return img, nil
}

// renderAll renders every label with bounded parallelism. The first failure
// cancels the remaining work.
func (e *Engine) renderAll(ctx context.Context, start, count int, header string) ([][]byte, error) {
	images := make([][]byte, count)
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := 0; i < count; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			img, err := e.render(header, start+i)
			if err != nil {
				return err
			}
			images[i] = img
			e.report(int(done.Add(1)), count)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// A cancelled parent stops the loop without any goroutine failing.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return images, nil
}

func (e *Engine) seal(doc *Document, p *Page) {
	p.seal()
	doc.Pages = append(doc.Pages, *p)
	e.logger.Debug("sealed page", "page", p.Number, "labels", p.Len())
}

func (e *Engine) report(done, total int) {
	if e.progress != nil {
		e.progress(done, total)
	}
}
