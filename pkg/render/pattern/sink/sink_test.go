package sink

import (
	"bytes"
	"encoding/json"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/dressform/pkg/draft"
	derrors "github.com/matzehuels/dressform/pkg/errors"
	"github.com/matzehuels/dressform/pkg/geom"
	"github.com/matzehuels/dressform/pkg/render/pattern"
)

// square is a 10 cm square with one dashed diagonal and a label.
func square() pattern.Drawing {
	d := pattern.Drawing{
		Name: "square",
		Layers: []pattern.Layer{
			{Name: pattern.LayerGrid, Paths: []pattern.Path{
				{Name: "diag", Points: []geom.Point{geom.Pt(0, 0), geom.Pt(10, 10)}, Dashed: true},
			}},
			{Name: pattern.LayerOutline, Paths: []pattern.Path{
				{Name: "edge", Points: []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10), geom.Pt(0, 10)}, Closed: true},
			}},
			{Name: pattern.LayerLabels, Labels: []pattern.Label{
				{Text: "A & B", At: geom.Pt(5, 5), Size: 1},
			}},
		},
		Warnings: []draft.Warning{{Code: draft.WarnFrontClamped, Message: "front clamped"}},
	}
	d.Bounds = geom.NewRect(0, 0, 10, 10)
	return d
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(square()))

	for _, want := range []string{
		`viewBox="-3.000 -3.000 16.000 16.000"`,
		`width="160" height="160"`,
		`<title>square</title>`,
		`id="layer-outline"`,
		`d="M0.000 0.000 L10.000 0.000 L10.000 10.000 L0.000 10.000 Z"`,
		`stroke-dasharray="4 3"`,
		`A &amp; B`,
		`vector-effect="non-scaling-stroke"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("svg not terminated")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	svg := string(RenderSVG(square(),
		WithPhysicalSize(),
		WithMargin(0),
		WithoutLayers(pattern.LayerGrid),
		WithTitle("custom"),
		WithStyle(Print{}),
	))
	if !strings.Contains(svg, `width="100.0mm" height="100.0mm"`) {
		t.Error("physical size not in millimetres")
	}
	if strings.Contains(svg, "layer-grid") {
		t.Error("hidden layer rendered")
	}
	if !strings.Contains(svg, "<title>custom</title>") {
		t.Error("title not applied")
	}
	if strings.Contains(svg, "#1f2933") {
		t.Error("technical colour in print style")
	}
}

func TestRenderSVGViewportAndOverlay(t *testing.T) {
	overlay := pattern.Layer{Name: pattern.LayerRegistration, Paths: []pattern.Path{
		{Name: "mark", Points: []geom.Point{geom.Pt(1, 1), geom.Pt(2, 2)}},
	}}
	svg := string(RenderSVG(square(), WithViewport(geom.NewRect(5, 5, 2, 3)), WithOverlay(overlay)))
	if !strings.Contains(svg, `viewBox="5.000 5.000 2.000 3.000"`) {
		t.Errorf("viewport not applied")
	}
	if !strings.Contains(svg, `id="registration-mark"`) {
		t.Error("overlay not rendered")
	}
}

func TestRenderPNG(t *testing.T) {
	data, err := RenderPNG(square(), WithPNGScale(4), WithPNGMargin(1))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 48 || b.Dy() != 48 {
		t.Errorf("size = %dx%d, want 48x48", b.Dx(), b.Dy())
	}
}

func TestRenderPNGErrors(t *testing.T) {
	if _, err := RenderPNG(pattern.Drawing{Name: "empty"}); err == nil {
		t.Error("expected error for empty drawing")
	}
	if _, err := RenderPNG(square(), WithPNGScale(0)); err == nil {
		t.Error("expected error for zero scale")
	}
	if _, err := RenderPNG(square(), WithPNGScale(5000)); err == nil {
		t.Error("expected error for oversized raster")
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(square(), WithJSONStyle("print"))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Units != "cm" {
		t.Errorf("Units = %q, want cm", out.Units)
	}
	if out.Style != "print" {
		t.Errorf("Style = %q, want print", out.Style)
	}
	if out.Bounds.MaxX != 10 || out.Bounds.MaxY != 10 {
		t.Errorf("Bounds = %+v, want max 10,10", out.Bounds)
	}
	if len(out.Layers) != 3 {
		t.Errorf("len(Layers) = %d, want 3", len(out.Layers))
	}
	if len(out.Warnings) != 1 || out.Warnings[0].Code != draft.WarnFrontClamped {
		t.Errorf("Warnings = %v", out.Warnings)
	}
}

func TestRenderDXF(t *testing.T) {
	dxf := string(RenderDXF(square()))
	for _, want := range []string{
		"AC1009",
		"  2\nOUTLINE\n",
		"POLYLINE",
		"SEQEND",
		"  6\nDASHED\n",
		"  1\nA & B\n",
	} {
		if !strings.Contains(dxf, want) {
			t.Errorf("dxf missing %q", want)
		}
	}
	// y is flipped.
	if !strings.Contains(dxf, " 20\n-10.0000\n") {
		t.Error("dxf y coordinates not flipped")
	}
	if !strings.HasSuffix(dxf, "  0\nEOF\n") {
		t.Error("dxf not terminated with EOF")
	}
	if strings.Count(dxf, "SECTION") != 3 {
		t.Errorf("SECTION count = %d, want 3", strings.Count(dxf, "SECTION"))
	}
}

func TestStyleByName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"", "technical"},
		{"technical", "technical"},
		{"PRINT", "print"},
	}
	for _, tt := range tests {
		s, err := StyleByName(tt.name)
		if err != nil {
			t.Fatalf("StyleByName(%q) error: %v", tt.name, err)
		}
		if s.Name() != tt.want {
			t.Errorf("StyleByName(%q) = %s, want %s", tt.name, s.Name(), tt.want)
		}
	}

	_, err := StyleByName("neon")
	if derrors.GetCode(err) != derrors.ErrCodeInvalidStyle {
		t.Errorf("StyleByName(neon) code = %v, want %v", derrors.GetCode(err), derrors.ErrCodeInvalidStyle)
	}
}

func TestEscapeXML(t *testing.T) {
	if got := EscapeXML(`<a & "b">`); got != "&lt;a &amp; &#34;b&#34;&gt;" {
		t.Errorf("EscapeXML = %q", got)
	}
}
