// Package draft is the pattern-drafting engine: a deterministic, rules-based
// solver that turns body measurements and figure options into the named
// points, curves and darts of a bodice and a one-piece sleeve.
//
// # Stages
//
// Data flows strictly forward; every stage returns a new value and never
// mutates its inputs.
//
//  1. [ComputeGrid] derives the base section widths, reference levels and
//     total waist dart volume from [measure.Measurements].
//  2. [ApplyBodyAdjustments] folds the rows of the [Effects] table selected
//     by [measure.FigureOptions] into the grid, producing an [AdjustedGrid].
//  3. [AllocateDarts] splits the dart volume with a named [DartSplit] and
//     resolves the bust dart, shoulder dart and hip widening.
//  4. [ResolveContour] lays out the back and front [Panel] outlines.
//  5. [ResolveSleeve] builds the asymmetric sleeve cap, coupled to the
//     bodice through the adjusted armhole depth.
//
// [DraftBodice] and [DraftSleeve] run the whole chain.
//
// # Coordinates
//
// All values are centimetres. x grows from centre back toward centre front,
// y grows downward from the back neck line. The front panel is shifted up
// by the balance (front length minus back length). The sleeve uses its own
// frame with the underarm line at y=0.
//
// # Feasibility
//
// Out-of-range measurements and unknown options are rejected before any
// geometry is computed. Geometry that would become degenerate (a section
// narrower than its floor, a shoulder point past the side line, a waist
// point crossing the panel edge) is clamped and reported as a [Warning] on
// the result instead of failing the draft.
package draft
