package server

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/matzehuels/labelsheet/pkg/buildinfo"
	"github.com/matzehuels/labelsheet/pkg/errors"
	"github.com/matzehuels/labelsheet/pkg/geometry"
	"github.com/matzehuels/labelsheet/pkg/httputil"
	"github.com/matzehuels/labelsheet/pkg/pipeline"
	"github.com/matzehuels/labelsheet/pkg/sink"
)

// LabelsRequest is the body of POST /labels. Form posts use the same field
// names.
type LabelsRequest struct {
	Header    string  `json:"header,omitempty"`
	Start     *int    `json:"start,omitempty"`
	Count     int     `json:"count"`
	Preset    string  `json:"preset,omitempty"`
	Format    string  `json:"format,omitempty"`
	Resize    *bool   `json:"resize,omitempty"`
	Title     string  `json:"title,omitempty"`
	CutGuides bool    `json:"cut_guides,omitempty"`
	Page      int     `json:"page,omitempty"`
	Scale     float64 `json:"scale,omitempty"`
}

// PresetInfo describes one label stock in GET /presets.
type PresetInfo struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Canvas      string            `json:"canvas"`
	Geometry    geometry.Geometry `json:"geometry"`
	Capacity    int               `json:"capacity"`
	Default     bool              `json:"default,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	_ = httputil.WriteJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handlePresets(w http.ResponseWriter, _ *http.Request) {
	presets := s.cfg.Registry.Presets()
	out := make([]PresetInfo, 0, len(presets))
	for _, p := range presets {
		out = append(out, PresetInfo{
			Name:        p.Name,
			Description: p.Description,
			Canvas:      p.Canvas,
			Geometry:    p.Geometry,
			Capacity:    p.Geometry.Capacity(),
			Default:     p.Name == geometry.DefaultPreset,
		})
	}
	_ = httputil.WriteJSON(w, http.StatusOK, out)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	value := pipeline.DefaultStart
	if v := q.Get("value"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.fail(w, r, errors.New(errors.ErrCodeInvalidInput, "value must be a non-negative integer, got %q", v))
			return
		}
		value = n
	}

	png, err := pipeline.RenderLabel(pipeline.Options{
		Header:   q.Get("header"),
		Count:    1,
		Preset:   q.Get("preset"),
		Registry: s.cfg.Registry,
		Logger:   s.logger,
	}, value)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", sink.ContentTypePNG)
	_, _ = w.Write(png)
}

func (s *Server) handleLabels(w http.ResponseWriter, r *http.Request) {
	req, err := decodeLabelsRequest(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format == "" {
		format = pipeline.FormatPDF
	}

	res, err := s.cfg.Runner.Execute(r.Context(), pipeline.Options{
		Header:    req.Header,
		Start:     req.Start,
		Count:     req.Count,
		Preset:    req.Preset,
		Resize:    req.Resize,
		Formats:   []string{format},
		Title:     req.Title,
		CutGuides: req.CutGuides,
		Page:      req.Page,
		Scale:     req.Scale,
		Workers:   s.cfg.Workers,
		MaxCount:  s.cfg.MaxCount,
		Registry:  s.cfg.Registry,
		Logger:    s.logger.With("request_id", RequestIDFrom(r.Context())),
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	cacheState := "miss"
	if res.CacheInfo.Hit {
		cacheState = "hit"
	}
	w.Header().Set("X-Cache", cacheState)
	w.Header().Set("X-Label-Pages", strconv.Itoa(res.Stats.Pages))
	_ = httputil.WriteAttachment(w, pipeline.Filename(format), sink.ContentType(format), res.Artifacts[format])
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	id := RequestIDFrom(r.Context())
	status := httputil.WriteError(w, id, err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err, "request_id", id)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "err", err, "request_id", id)
	}
}

// decodeLabelsRequest reads a JSON body or, for any other content type,
// url-encoded or multipart form fields.
func decodeLabelsRequest(r *http.Request) (LabelsRequest, error) {
	var req LabelsRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			return req, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid JSON body")
		}
		return req, nil
	}

	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(MaxBodyBytes); err != nil {
			return req, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid form body")
		}
	} else if err := r.ParseForm(); err != nil {
		return req, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid form body")
	}

	var err error
	req.Header = r.PostFormValue("header")
	req.Preset = r.PostFormValue("preset")
	req.Format = r.PostFormValue("format")
	req.Title = r.PostFormValue("title")
	if r.PostForm.Has("start") {
		n, err := formInt(r, "start")
		if err != nil {
			return req, err
		}
		req.Start = &n
	}
	if req.Count, err = formInt(r, "count"); err != nil {
		return req, err
	}
	if req.Page, err = formInt(r, "page"); err != nil {
		return req, err
	}
	if v := r.PostFormValue("scale"); v != "" {
		if req.Scale, err = strconv.ParseFloat(v, 64); err != nil {
			return req, errors.New(errors.ErrCodeInvalidInput, "scale must be a number, got %q", v)
		}
	}
	if v := r.PostFormValue("resize"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return req, errors.New(errors.ErrCodeInvalidInput, "resize must be true or false, got %q", v)
		}
		req.Resize = &b
	}
	if v := r.PostFormValue("cut_guides"); v != "" {
		if req.CutGuides, err = strconv.ParseBool(v); err != nil {
			return req, errors.New(errors.ErrCodeInvalidInput, "cut_guides must be true or false, got %q", v)
		}
	}
	return req, nil
}

func formInt(r *http.Request, field string) (int, error) {
	v := strings.TrimSpace(r.PostFormValue(field))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s must be an integer, got %q", field, v)
	}
	return n, nil
}
