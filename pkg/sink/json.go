package sink

import (
	"encoding/json"

	"github.com/matzehuels/labelsheet/pkg/geometry"
	"github.com/matzehuels/labelsheet/pkg/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	preset string
	canvas string
}

// WithJSONPreset records the preset name in the manifest.
func WithJSONPreset(name string) JSONOption { return func(r *jsonRenderer) { r.preset = name } }

// WithJSONCanvas records the label canvas profile in the manifest.
func WithJSONCanvas(name string) JSONOption { return func(r *jsonRenderer) { r.canvas = name } }

type jsonOutput struct {
	Preset   string            `json:"preset,omitempty"`
	Canvas   string            `json:"canvas,omitempty"`
	Header   string            `json:"header"`
	Geometry geometry.Geometry `json:"geometry"`
	Capacity int               `json:"capacity"`
	Labels   int               `json:"labels"`
	Pages    []jsonPage        `json:"pages"`
}

type jsonPage struct {
	Number int         `json:"number"`
	Labels []jsonLabel `json:"labels"`
}

type jsonLabel struct {
	Index  int     `json:"index"`
	Value  int     `json:"value"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RenderJSON exports the document's placements as a pretty-printed manifest.
// Label images are not included. An empty document yields a manifest with
// no pages.
func RenderJSON(doc *layout.Document, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Preset:   r.preset,
		Canvas:   r.canvas,
		Header:   doc.Header,
		Geometry: doc.Geometry,
		Capacity: doc.Geometry.Capacity(),
		Labels:   doc.LabelCount(),
		Pages:    make([]jsonPage, 0, doc.PageCount()),
	}
	for _, page := range doc.Pages {
		jp := jsonPage{Number: page.Number, Labels: make([]jsonLabel, 0, page.Len())}
		for _, p := range page.Placements {
			jp.Labels = append(jp.Labels, jsonLabel{
				Index:  p.Index,
				Value:  p.Value,
				X:      p.X,
				Y:      p.Y,
				Width:  p.Width,
				Height: p.Height,
			})
		}
		out.Pages = append(out.Pages, jp)
	}
	return json.MarshalIndent(out, "", "  ")
}
