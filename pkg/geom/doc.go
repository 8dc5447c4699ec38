// Package geom provides the small set of 2D primitives the drafting engine
// emits: points, rectangles and the three curve kinds used in a pattern
// outline (straight line, quadratic and cubic Bézier), plus sampled
// polylines.
//
// Coordinates are centimetres with x growing to the right and y growing
// downward, matching the drafting table orientation where y=0 is the neck
// line. Consumers (renderers, DXF writer, paginator) flatten curves with
// [Curve.Flatten] and never re-derive geometry.
package geom
