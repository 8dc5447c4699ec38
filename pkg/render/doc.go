// Package render turns drafted patterns into output artifacts.
//
// # Overview
//
// Rendering is a pure consumer of the drafting engine: it walks the points
// and curves of a [draft.BodiceContour] or [draft.SleeveGeometry] and never
// re-derives geometry. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG via rsvg-convert)
//   - Pattern drawings and their sinks (in [pattern] and [pattern/sink])
//   - Print tiling onto paper sheets (in [pattern/tile])
//   - Construction diagrams (in [diagram])
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg := sink.RenderSVG(drawing)
//	pdf, err := render.ToPDF(svg)
//
// # Pattern Drawings
//
// [pattern.FromBodice] and [pattern.FromSleeve] flatten a draft into a
// layered [pattern.Drawing] (outline, darts, grid, marks). Sinks render a
// drawing as SVG, PNG, PDF, DXF or JSON.
//
//	d := pattern.FromBodice(contour, pattern.DefaultOptions())
//	svg := sink.RenderSVG(d, sink.WithStyle(sink.Print{}))
//	dxf := sink.RenderDXF(d)
//
// # Tiling
//
// [pattern/tile] splits a full-scale drawing into printable pages with
// overlap, registration marks and R{row}C{col} labels.
//
// [draft.BodiceContour]: github.com/matzehuels/dressform/pkg/draft.BodiceContour
// [draft.SleeveGeometry]: github.com/matzehuels/dressform/pkg/draft.SleeveGeometry
// [pattern]: github.com/matzehuels/dressform/pkg/render/pattern
// [pattern/sink]: github.com/matzehuels/dressform/pkg/render/pattern/sink
// [pattern/tile]: github.com/matzehuels/dressform/pkg/render/pattern/tile
// [pattern.FromBodice]: github.com/matzehuels/dressform/pkg/render/pattern.FromBodice
// [pattern.FromSleeve]: github.com/matzehuels/dressform/pkg/render/pattern.FromSleeve
// [pattern.Drawing]: github.com/matzehuels/dressform/pkg/render/pattern.Drawing
// [diagram]: github.com/matzehuels/dressform/pkg/render/diagram
package render
