package draft

import (
	"math"
	"sort"
	"strings"

	derrors "github.com/matzehuels/dressform/pkg/errors"
	"github.com/matzehuels/dressform/pkg/measure"
)

// DartSplit distributes the total waist dart volume over the back, side and
// front darts. The three ratios sum to 1.
type DartSplit struct {
	Name  string  `json:"name" toml:"name"`
	Back  float64 `json:"back" toml:"back"`
	Side  float64 `json:"side" toml:"side"`
	Front float64 `json:"front" toml:"front"`
}

var (
	// StandardSplit is the side-dominant tailoring default.
	StandardSplit = DartSplit{Name: "standard", Back: 0.25, Side: 0.45, Front: 0.30}
	// ContourSplit moves intake from the front to the back and side seams.
	ContourSplit = DartSplit{Name: "contour", Back: 0.30, Side: 0.50, Front: 0.20}
)

var dartSplits = map[string]DartSplit{
	StandardSplit.Name: StandardSplit,
	ContourSplit.Name:  ContourSplit,
}

// DartSplitNames lists the registered split names.
func DartSplitNames() []string {
	names := make([]string, 0, len(dartSplits))
	for n := range dartSplits {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LookupDartSplit returns the registered split by name. The empty name
// selects StandardSplit.
func LookupDartSplit(name string) (DartSplit, error) {
	if name == "" {
		return StandardSplit, nil
	}
	s, ok := dartSplits[strings.ToLower(name)]
	if !ok {
		return DartSplit{}, derrors.New(derrors.ErrCodeInvalidOption,
			"unknown dart split %q (expected one of: %s)", name, strings.Join(DartSplitNames(), ", "))
	}
	return s, nil
}

// Validate checks the ratios are non-negative and sum to 1.
func (s DartSplit) Validate() error {
	if s.Back < 0 || s.Side < 0 || s.Front < 0 {
		return derrors.New(derrors.ErrCodeInvalidOption, "dart split %q has a negative ratio", s.Name)
	}
	if sum := s.Back + s.Side + s.Front; math.Abs(sum-1) > 1e-9 {
		return derrors.New(derrors.ErrCodeInvalidOption, "dart split %q ratios sum to %.4f, want 1", s.Name, sum)
	}
	return nil
}

// DartAllocation is the resolved set of dart intakes for one bodice.
type DartAllocation struct {
	Back  float64 `json:"back"`
	Side  float64 `json:"side"`
	Front float64 `json:"front"`

	Bust     float64 `json:"bust"`
	Shoulder float64 `json:"shoulder"`

	// HipWidening is added at each side seam between waist and hip.
	// Negative values taper the side seam inward.
	HipWidening float64 `json:"hip_widening"`

	Split DartSplit `json:"split"`
}

// WaistTotal returns Back+Side+Front.
func (d DartAllocation) WaistTotal() float64 { return d.Back + d.Side + d.Front }

// BustDartBase returns the base bust dart intake for a bust circumference.
func BustDartBase(bust float64) float64 {
	switch {
	case bust <= 90:
		return 2.0
	case bust <= 105:
		return 3.5
	default:
		return 5.0
	}
}

// AllocateDarts distributes the adjusted grid's dart volume by split and
// resolves the bust, shoulder and hip quantities.
func AllocateDarts(a AdjustedGrid, m measure.Measurements, split DartSplit) DartAllocation {
	v := a.DartVolume
	return DartAllocation{
		Back:        v * split.Back,
		Side:        v * split.Side,
		Front:       v * split.Front,
		Bust:        BustDartBase(m.Bust) + Delta(a.Options, FieldBustDart),
		Shoulder:    a.ShoulderDart,
		HipWidening: (a.HipWidth - a.Span()) / 2,
		Split:       split,
	}
}
