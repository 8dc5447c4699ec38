package diagram

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/dressform/pkg/draft"
	"github.com/matzehuels/dressform/pkg/measure"
)

func TestToDOT(t *testing.T) {
	steps := []draft.Step{
		{ID: "bust", Kind: draft.StepMeasurement, Label: "Bust"},
		{ID: "grid.total", Kind: draft.StepQuantity, Label: "Total width", Formula: "(bust + ease) / 2", Inputs: []string{"bust", "missing"}, Value: "54.00"},
	}

	dot := ToDOT(steps, Options{})
	for _, want := range []string{
		"digraph construction {",
		`"bust" [label="Bust", shape=ellipse`,
		`"bust" -> "grid.total";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
	if strings.Contains(dot, `"missing"`) {
		t.Error("edge from unknown step emitted")
	}

	detailed := ToDOT(steps, Options{Detailed: true})
	if !strings.Contains(detailed, `(bust + ease) / 2\n= 54.00`) {
		t.Errorf("detailed label missing formula and value\n%s", detailed)
	}
}

func TestToDOTConstructionSteps(t *testing.T) {
	p, err := draft.DraftPattern(measure.Defaults(), measure.FigureOptions{}, draft.StandardSplit)
	if err != nil {
		t.Fatalf("DraftPattern() error: %v", err)
	}
	steps := draft.ConstructionSteps(&p)
	dot := ToDOT(steps, Options{Detailed: true})
	if got := strings.Count(dot, "shape="); got != len(steps) {
		t.Errorf("node count = %d, want %d", got, len(steps))
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="x"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("svg without viewBox modified")
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz layout in short mode")
	}
	svg, err := RenderSVG(context.Background(), `digraph { "a" -> "b"; }`)
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("output is not SVG")
	}
}
