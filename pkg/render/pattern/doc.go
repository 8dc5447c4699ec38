// Package pattern converts drafted pieces into layered drawings.
//
// A [Drawing] is a renderer-neutral description of one pattern piece:
// flattened polylines grouped into named [Layer] values, text labels and a
// bounding box, all in centimetres in the drafting frame (x right, y down).
// Sinks in the sink subpackage turn a Drawing into SVG, PNG, PDF, DXF or
// JSON; the tile subpackage paginates it for printing.
//
// Layers, bottom to top:
//
//   - grid: level lines A, G, T, B, N and the section verticals (dashed)
//   - outline: the closed panel outlines
//   - darts: dart legs and diamonds
//   - marks: construction points and the bust apex
//   - labels: piece names
package pattern
