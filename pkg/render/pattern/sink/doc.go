// Package sink provides output format renderers for pattern drawings.
//
// # Overview
//
// A "sink" transforms a [pattern.Drawing] into a final output format:
//
//   - SVG: scalable preview or full-scale print sheet
//   - PNG: raster preview drawn with gogpu/gg (no external tools)
//   - PDF: print-ready output (requires rsvg-convert)
//   - DXF: AutoCAD R12 ASCII exchange file, one DXF layer per drawing layer
//   - JSON: the drawing's layers for external tools
//
// # SVG Output
//
//	svg := sink.RenderSVG(d,
//	    sink.WithStyle(sink.Print{}),
//	    sink.WithScale(10),
//	)
//
// The SVG user unit is the centimetre; [WithScale] only sets the width and
// height attributes. [WithPhysicalSize] emits millimetre dimensions so the
// file prints at 1:1, and [WithViewport] crops the drawing to a window, which
// the tile package uses for page output.
//
// # PNG Output
//
// [RenderPNG] rasterises outlines, darts, grid and marks. Text labels are not
// drawn; use SVG or PDF when labels are needed.
//
// # PDF Output
//
// [RenderPDF] renders SVG and converts it with [render.ToPDF]:
//
//	pdf, err := sink.RenderPDF(d, sink.WithPDFSVGOptions(sink.WithPhysicalSize()))
//
// [pattern.Drawing]: github.com/matzehuels/dressform/pkg/render/pattern.Drawing
// [render.ToPDF]: github.com/matzehuels/dressform/pkg/render.ToPDF
package sink
