package sink

import (
	"encoding/json"

	"github.com/matzehuels/dressform/pkg/draft"
	"github.com/matzehuels/dressform/pkg/render/pattern"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	style string
	steps []draft.Step
}

// WithJSONStyle records the style name in the output.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

// WithJSONSteps attaches the construction steps that produced the drawing.
func WithJSONSteps(steps []draft.Step) JSONOption {
	return func(r *jsonRenderer) { r.steps = steps }
}

type jsonOutput struct {
	Name     string          `json:"name"`
	Units    string          `json:"units"`
	Style    string          `json:"style,omitempty"`
	Bounds   jsonBounds      `json:"bounds"`
	Layers   []pattern.Layer `json:"layers"`
	Warnings []draft.Warning `json:"warnings,omitempty"`
	Steps    []draft.Step    `json:"steps,omitempty"`
}

type jsonBounds struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// RenderJSON serialises the drawing with coordinates in centimetres.
func RenderJSON(d pattern.Drawing, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	out := jsonOutput{
		Name:     d.Name,
		Units:    "cm",
		Style:    r.style,
		Layers:   d.Layers,
		Warnings: d.Warnings,
		Steps:    r.steps,
	}
	if !d.Bounds.Empty() {
		out.Bounds = jsonBounds{d.Bounds.Min.X, d.Bounds.Min.Y, d.Bounds.Max.X, d.Bounds.Max.Y}
	}
	return json.MarshalIndent(out, "", "  ")
}
