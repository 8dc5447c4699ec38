package server

import (
	"encoding/json"
	"net/http"
	"path"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/dressform/pkg/buildinfo"
	"github.com/matzehuels/dressform/pkg/cache"
	"github.com/matzehuels/dressform/pkg/draft"
	derrors "github.com/matzehuels/dressform/pkg/errors"
	"github.com/matzehuels/dressform/pkg/measure"
	"github.com/matzehuels/dressform/pkg/observability"
	"github.com/matzehuels/dressform/pkg/pipeline"
	"github.com/matzehuels/dressform/pkg/render"
	"github.com/matzehuels/dressform/pkg/render/pattern/sink"
	"github.com/matzehuels/dressform/pkg/render/pattern/tile"
)

// draftRequest is the body of POST /v1/drafts. Omitted measurements keep
// their reference values.
type draftRequest struct {
	Name         string                `json:"name,omitempty"`
	Measurements measure.Measurements  `json:"measurements"`
	Figure       measure.FigureOptions `json:"figure"`
	Split        string                `json:"split,omitempty"`
	Pieces       []string              `json:"pieces,omitempty"`
	Formats      []string              `json:"formats,omitempty"`
	Style        string                `json:"style,omitempty"`
	Paper        string                `json:"paper,omitempty"`
	Overlap      float64               `json:"overlap,omitempty"`
	Scale        float64               `json:"scale,omitempty"`
	NoGrid       bool                  `json:"no_grid,omitempty"`
	NoMarks      bool                  `json:"no_marks,omitempty"`
	Diagram      bool                  `json:"diagram,omitempty"`
}

func (req draftRequest) options(defaults pipeline.Options) pipeline.Options {
	o := pipeline.Options{
		Measurements: req.Measurements,
		Figure:       req.Figure,
		Split:        req.Split,
		Pieces:       req.Pieces,
		Formats:      req.Formats,
		Style:        req.Style,
		Paper:        req.Paper,
		Overlap:      req.Overlap,
		Scale:        req.Scale,
		NoGrid:       req.NoGrid,
		NoMarks:      req.NoMarks,
		Diagram:      req.Diagram,
	}
	if o.Split == "" {
		o.Split = defaults.Split
	}
	if len(o.Formats) == 0 {
		o.Formats = slices.Clone(defaults.Formats)
	}
	if o.Style == "" {
		o.Style = defaults.Style
	}
	if o.Paper == "" {
		o.Paper = defaults.Paper
	}
	if o.Scale == 0 {
		o.Scale = defaults.Scale
	}
	return o
}

// manifest is the index entry stored per draft ID.
type manifest struct {
	ID        string            `json:"id"`
	Name      string            `json:"name,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	DraftHash string            `json:"draft_hash"`
	Options   pipeline.Options  `json:"options"`
	Artifacts map[string]string `json:"artifacts"`
	Warnings  []draft.Warning   `json:"warnings"`
}

type artifactRef struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Bytes int    `json:"bytes"`
}

type draftResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name,omitempty"`
	DraftHash string          `json:"draft_hash"`
	Pattern   draft.Pattern   `json:"pattern"`
	Warnings  []draft.Warning `json:"warnings"`
	Artifacts []artifactRef   `json:"artifacts"`
}

type optionsResponse struct {
	Figure       map[measure.Axis][]string `json:"figure"`
	Splits       []string                  `json:"splits"`
	Pieces       []string                  `json:"pieces"`
	Formats      []string                  `json:"formats"`
	Styles       []string                  `json:"styles"`
	Papers       []string                  `json:"papers"`
	Measurements []measure.Range           `json:"measurements"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": buildinfo.Short(),
		// pdf output needs the external converter
		"pdf": render.Available(),
	})
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	figure := make(map[measure.Axis][]string, len(measure.Axes))
	for _, a := range measure.Axes {
		figure[a] = measure.Values(a)
	}
	jsonResponse(w, http.StatusOK, optionsResponse{
		Figure:       figure,
		Splits:       draft.DartSplitNames(),
		Pieces:       sortedKeys(pipeline.ValidPieces),
		Formats:      sortedKeys(pipeline.ValidFormats),
		Styles:       sink.StyleNames,
		Papers:       tile.PaperNames(),
		Measurements: measure.Ranges(),
	})
}

func (s *Server) handleCreateDraft(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	req := draftRequest{Measurements: measure.Defaults()}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.errorResponse(w, r, derrors.Wrap(derrors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	opts := req.options(s.cfg.Defaults)
	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	id := uuid.New().String()
	m := manifest{
		ID:        id,
		Name:      req.Name,
		CreatedAt: time.Now().UTC(),
		DraftHash: res.DraftHash,
		Options:   opts,
		Artifacts: res.Keys,
		Warnings:  res.Warnings,
	}
	data, err := json.Marshal(m)
	if err != nil {
		s.errorResponse(w, r, derrors.Wrap(derrors.ErrCodeInternal, err, "encode manifest"))
		return
	}
	if err := s.runner.Cache.Set(r.Context(), s.runner.Keyer.IndexKey(id), data, cache.TTLIndex); err != nil {
		s.errorResponse(w, r, derrors.Wrap(derrors.ErrCodeInternal, err, "store manifest"))
		return
	}
	reportCache(r, observability.KindManifest, observability.CacheStore, len(data))

	resp := draftResponse{
		ID:        id,
		Name:      req.Name,
		DraftHash: res.DraftHash,
		Pattern:   res.Pattern,
		Warnings:  res.Warnings,
		Artifacts: make([]artifactRef, 0, len(res.Artifacts)),
	}
	if resp.Warnings == nil {
		resp.Warnings = []draft.Warning{}
	}
	for _, name := range res.Names() {
		resp.Artifacts = append(resp.Artifacts, artifactRef{
			Name:  name,
			URL:   "/v1/drafts/" + id + "/" + name,
			Bytes: len(res.Artifacts[name]),
		})
	}
	s.logger.Info("draft created", "id", id, "artifacts", len(resp.Artifacts), "warnings", len(resp.Warnings))
	jsonResponse(w, http.StatusCreated, resp)
}

func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	m, err := s.loadManifest(r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, m)
}

func (s *Server) handleGetArtifact(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "artifact")
	if err := derrors.ValidateArtifactName(name); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	m, err := s.loadManifest(r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	key, ok := m.Artifacts[name]
	if !ok {
		s.errorResponse(w, r, derrors.New(derrors.ErrCodeNotFound, "draft %s has no artifact %q", m.ID, name))
		return
	}

	data, hit, err := s.runner.Cache.Get(r.Context(), key)
	if err != nil {
		s.logger.Warn("artifact cache read failed", "key", key, "error", err)
	}
	if hit && err == nil {
		reportCache(r, observability.KindArtifact, observability.CacheHit, len(data))
	} else {
		reportCache(r, observability.KindArtifact, observability.CacheMiss, 0)
		// Evicted: re-render from the stored inputs.
		res, err := s.runner.Execute(r.Context(), m.Options)
		if err != nil {
			s.errorResponse(w, r, err)
			return
		}
		if data, ok = res.Artifacts[name]; !ok {
			s.errorResponse(w, r, derrors.New(derrors.ErrCodeNotFound, "artifact %q no longer renders", name))
			return
		}
	}

	w.Header().Set("Content-Type", contentType(name))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func reportCache(r *http.Request, kind string, outcome observability.CacheOutcome, n int) {
	observability.Current().Cached(r.Context(), observability.CacheEvent{Kind: kind, Outcome: outcome, Bytes: n})
}

func (s *Server) loadManifest(r *http.Request) (manifest, error) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		return manifest{}, derrors.New(derrors.ErrCodeInvalidInput, "invalid draft id %q", id)
	}
	data, ok, err := s.runner.Cache.Get(r.Context(), s.runner.Keyer.IndexKey(id))
	if err != nil {
		return manifest{}, derrors.Wrap(derrors.ErrCodeInternal, err, "read manifest")
	}
	if !ok {
		reportCache(r, observability.KindManifest, observability.CacheMiss, 0)
		return manifest{}, derrors.New(derrors.ErrCodeDraftNotFound, "draft %s not found", id)
	}
	reportCache(r, observability.KindManifest, observability.CacheHit, len(data))
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return manifest{}, derrors.Wrap(derrors.ErrCodeInternal, err, "decode manifest")
	}
	return m, nil
}

var contentTypes = map[string]string{
	".svg":  "image/svg+xml",
	".png":  "image/png",
	".pdf":  "application/pdf",
	".dxf":  "application/dxf",
	".json": "application/json",
}

func contentType(name string) string {
	if ct, ok := contentTypes[path.Ext(name)]; ok {
		return ct
	}
	return "application/octet-stream"
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
