package draft

import (
	"fmt"

	"github.com/matzehuels/dressform/pkg/measure"
)

// DraftBodice drafts the bodice with the standard dart split.
func DraftBodice(m measure.Measurements, o measure.FigureOptions) (BodiceContour, error) {
	return DraftBodiceWith(m, o, StandardSplit)
}

// DraftBodiceWith drafts the bodice using split to distribute the waist
// darts.
func DraftBodiceWith(m measure.Measurements, o measure.FigureOptions, split DartSplit) (BodiceContour, error) {
	a, err := adjustedGrid(m, o)
	if err != nil {
		return BodiceContour{}, err
	}
	if err := split.Validate(); err != nil {
		return BodiceContour{}, err
	}
	d := AllocateDarts(a, m, split)
	return ResolveContour(a, m, d), nil
}

// DraftSleeve drafts the sleeve. armholeDepth is the adjusted chest level of
// the matching bodice; when it is zero or negative the depth is derived
// from m and o.
func DraftSleeve(m measure.Measurements, o measure.FigureOptions, armholeDepth float64) (SleeveGeometry, error) {
	a, err := adjustedGrid(m, o)
	if err != nil {
		return SleeveGeometry{}, err
	}
	if armholeDepth > 0 {
		a.Chest = armholeDepth
	}
	return ResolveSleeve(m, a), nil
}

// Pattern is a bodice with its matching sleeve.
type Pattern struct {
	Bodice BodiceContour  `json:"bodice"`
	Sleeve SleeveGeometry `json:"sleeve"`
}

// Warnings returns the bodice and sleeve warnings together.
func (p Pattern) Warnings() []Warning {
	out := make([]Warning, 0, len(p.Bodice.Warnings)+len(p.Sleeve.Warnings))
	out = append(out, p.Bodice.Warnings...)
	return append(out, p.Sleeve.Warnings...)
}

// DraftPattern drafts the bodice and a sleeve fitted to its armhole depth.
func DraftPattern(m measure.Measurements, o measure.FigureOptions, split DartSplit) (Pattern, error) {
	b, err := DraftBodiceWith(m, o, split)
	if err != nil {
		return Pattern{}, err
	}
	s, err := DraftSleeve(m, o, b.Grid.Chest)
	if err != nil {
		return Pattern{}, err
	}
	return Pattern{Bodice: b, Sleeve: s}, nil
}

func adjustedGrid(m measure.Measurements, o measure.FigureOptions) (AdjustedGrid, error) {
	if err := m.Validate(); err != nil {
		return AdjustedGrid{}, err
	}
	g := ComputeGrid(m)
	if err := ValidateLevels(g); err != nil {
		return AdjustedGrid{}, err
	}
	a, err := ApplyBodyAdjustments(g, o)
	if err != nil {
		return AdjustedGrid{}, err
	}
	if err := ValidateLevels(a.Grid); err != nil {
		return AdjustedGrid{}, fmt.Errorf("after figure adjustments: %w", err)
	}
	return a, nil
}
