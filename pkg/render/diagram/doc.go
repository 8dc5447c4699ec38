// Package diagram renders the construction graph of a draft with Graphviz.
//
// Each [draft.Step] becomes a node: body measurements as ellipses, derived
// grid quantities as boxes and contour points as filled boxes. Edges run from
// the inputs of a step to the step. [ToDOT] produces the DOT text and
// [RenderSVG] lays it out with the embedded Graphviz (go-graphviz, no system
// install needed). PDF and PNG go through rsvg-convert.
//
// [draft.Step]: github.com/matzehuels/dressform/pkg/draft.Step
package diagram
