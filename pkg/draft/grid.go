package draft

import (
	"math"

	derrors "github.com/matzehuels/dressform/pkg/errors"
	"github.com/matzehuels/dressform/pkg/measure"
)

// Drafting constants shared by the grid and contour stages.
const (
	// MinArmholeWidth is the floor of the armhole section width.
	MinArmholeWidth = 9.5
	// MinFrontWidth is the floor of the front section width.
	MinFrontWidth = 10.0
	// HipDepth is the distance from waist level down to hip level.
	HipDepth = 19.0

	baseShoulderAngle     = 15.0
	baseFrontShoulderDrop = 4.0
	baseShoulderDart      = 1.5
)

// Grid is the rectangular drafting framework: section widths across the
// half-body and the horizontal reference levels, all in centimetres.
// Levels are measured downward from the back neck line.
//
// Total is the nominal half-width at bust level. Figure adjustments may move
// it independently of the sections, so the outline is laid out on Span and
// every width derived from the outline (dart volume, hip widening) is
// measured against Span.
type Grid struct {
	// Widths
	Total    float64 `json:"total"`
	Back     float64 `json:"back"`
	Armhole  float64 `json:"armhole"`
	Front    float64 `json:"front"`
	HipWidth float64 `json:"hip_width"`

	// WaistWidth is the required finished waist half-width.
	WaistWidth float64 `json:"waist_width"`

	// Levels
	Neck  float64 `json:"neck"`
	Chest float64 `json:"chest"`
	Waist float64 `json:"waist"`
	Hip   float64 `json:"hip"`
	Hem   float64 `json:"hem"`

	DartVolume float64 `json:"dart_volume"`

	BackLength        float64 `json:"back_length"`
	FrontLength       float64 `json:"front_length"`
	ShoulderAngle     float64 `json:"shoulder_angle"`
	FrontShoulderDrop float64 `json:"front_shoulder_drop"`
	ShoulderDart      float64 `json:"shoulder_dart"`

	ArmholeClamped    bool `json:"armhole_clamped,omitempty"`
	FrontClamped      bool `json:"front_clamped,omitempty"`
	DartVolumeClamped bool `json:"dart_volume_clamped,omitempty"`
}

// Span returns the width actually laid out between centre back and centre
// front. It equals Total for unadjusted grids.
func (g Grid) Span() float64 { return g.Back + g.Armhole + g.Front }

// Levels returns the reference levels from top to bottom.
func (g Grid) Levels() []float64 { return []float64{g.Neck, g.Chest, g.Waist, g.Hip, g.Hem} }

// Balance is the vertical offset between the front and back neck lines.
func (g Grid) Balance() float64 { return g.FrontLength - g.BackLength }

// ComputeGrid derives the base grid from validated measurements.
func ComputeGrid(m measure.Measurements) Grid {
	g := Grid{
		Total:             (m.Bust + m.BustEase) / 2,
		Back:              m.Bust/8 + 5.5,
		Armhole:           m.Bust/8 - 1.5,
		HipWidth:          (m.Hip + m.HipEase) / 2,
		WaistWidth:        (m.Waist + m.WaistEase) / 2,
		Neck:              0,
		Chest:             m.Bust/10 + 10.5 + 2.0,
		Waist:             m.BackLength,
		Hip:               m.BackLength + HipDepth,
		Hem:               m.GarmentLength,
		BackLength:        m.BackLength,
		FrontLength:       m.FrontLength,
		ShoulderAngle:     baseShoulderAngle,
		FrontShoulderDrop: baseFrontShoulderDrop,
		ShoulderDart:      baseShoulderDart,
	}
	if g.Armhole < MinArmholeWidth {
		g.Armhole = MinArmholeWidth
		g.ArmholeClamped = true
	}
	g.Front = g.Total - g.Back - g.Armhole
	g.clampFront()
	g.resolveDartVolume()
	return g
}

// resolveDartVolume sets DartVolume to the excess of the laid-out width over
// the required waist, floored at zero.
func (g *Grid) resolveDartVolume() {
	v := g.Span() - g.WaistWidth
	g.DartVolume = math.Max(0, v)
	g.DartVolumeClamped = v < 0
}

// clampFront raises Front to MinFrontWidth and re-establishes
// Back+Armhole+Front == Total.
func (g *Grid) clampFront() {
	if g.Front >= MinFrontWidth {
		return
	}
	g.Front = MinFrontWidth
	g.Total = g.Span()
	g.FrontClamped = true
}

// ValidateLevels checks Neck < Chest < Waist < Hip < Hem.
func ValidateLevels(g Grid) error {
	names := []string{"neck", "chest", "waist", "hip", "hem"}
	lv := g.Levels()
	for i := 1; i < len(lv); i++ {
		if lv[i] <= lv[i-1] {
			return derrors.New(derrors.ErrCodeInvalidMeasurement,
				"%s level (%.2f) must lie below %s level (%.2f)", names[i], lv[i], names[i-1], lv[i-1])
		}
	}
	return nil
}
