package sink

import (
	"bytes"
	"encoding/xml"
	"strings"

	derrors "github.com/matzehuels/dressform/pkg/errors"
	"github.com/matzehuels/dressform/pkg/render/pattern"
)

// Stroke describes how the paths of one layer are drawn. Width is in screen
// pixels and does not scale with the drawing.
type Stroke struct {
	Color string
	Width float64
	Dash  []float64
}

// Style defines the visual appearance of a drawing.
type Style interface {
	Name() string
	Background() string
	Stroke(layer string) Stroke
	TextColor() string
}

// Technical is the colour-coded on-screen style.
type Technical struct{}

func (Technical) Name() string       { return "technical" }
func (Technical) Background() string { return "#ffffff" }
func (Technical) TextColor() string  { return "#1f2933" }
func (Technical) Stroke(layer string) Stroke {
	switch layer {
	case pattern.LayerGrid:
		return Stroke{Color: "#9aa5b1", Width: 0.75, Dash: []float64{4, 3}}
	case pattern.LayerDarts:
		return Stroke{Color: "#c0392b", Width: 1.2}
	case pattern.LayerMarks:
		return Stroke{Color: "#2563eb", Width: 1}
	case pattern.LayerRegistration:
		return Stroke{Color: "#7c3aed", Width: 0.75}
	default:
		return Stroke{Color: "#1f2933", Width: 1.6}
	}
}

// Print is the monochrome style used for paper output.
type Print struct{}

func (Print) Name() string       { return "print" }
func (Print) Background() string { return "#ffffff" }
func (Print) TextColor() string  { return "#000000" }
func (Print) Stroke(layer string) Stroke {
	switch layer {
	case pattern.LayerGrid:
		return Stroke{Color: "#bbbbbb", Width: 0.5, Dash: []float64{3, 3}}
	case pattern.LayerDarts:
		return Stroke{Color: "#000000", Width: 1}
	case pattern.LayerMarks, pattern.LayerRegistration:
		return Stroke{Color: "#000000", Width: 0.6}
	default:
		return Stroke{Color: "#000000", Width: 1.2}
	}
}

// StyleNames lists the accepted style names.
var StyleNames = []string{"technical", "print"}

// StyleByName returns the named style. The empty name selects Technical.
func StyleByName(name string) (Style, error) {
	switch strings.ToLower(name) {
	case "", "technical":
		return Technical{}, nil
	case "print":
		return Print{}, nil
	}
	return nil, derrors.New(derrors.ErrCodeInvalidStyle, "unknown style %q (expected one of: %s)",
		name, strings.Join(StyleNames, ", "))
}

// EscapeXML escapes s for use in SVG text and attributes.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
