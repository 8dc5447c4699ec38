package draft

import (
	"github.com/matzehuels/dressform/pkg/measure"
)

// Field names a quantity a figure option may shift.
type Field string

const (
	FieldChest             Field = "chest"
	FieldShoulderAngle     Field = "shoulder_angle"
	FieldFrontShoulderDrop Field = "front_shoulder_drop"
	FieldShoulderDart      Field = "shoulder_dart"
	FieldBackLength        Field = "back_length"
	FieldFrontLength       Field = "front_length"
	FieldFront             Field = "front"
	FieldTotal             Field = "total"
	FieldHipWidth          Field = "hip_width"

	// Sleeve and dart fields are not part of Grid.
	FieldCapWidth Field = "cap_width"
	FieldBustDart Field = "bust_dart"
)

// Effect is one row of the figure adjustment table.
type Effect struct {
	Axis  measure.Axis `json:"axis"`
	Value string       `json:"value"`
	Field Field        `json:"field"`
	Delta float64      `json:"delta"`
}

// Effects is the complete figure adjustment table. Neutral values have no
// rows. Every row is an additive delta applied to the base value.
var Effects = []Effect{
	{measure.AxisShoulder, string(measure.ShoulderSloped), FieldChest, 1.0},
	{measure.AxisShoulder, string(measure.ShoulderSloped), FieldShoulderAngle, 5},
	{measure.AxisShoulder, string(measure.ShoulderSloped), FieldFrontShoulderDrop, 0.5},
	{measure.AxisShoulder, string(measure.ShoulderSquare), FieldChest, -0.5},
	{measure.AxisShoulder, string(measure.ShoulderSquare), FieldShoulderAngle, -5},
	{measure.AxisShoulder, string(measure.ShoulderSquare), FieldFrontShoulderDrop, -0.3},

	{measure.AxisPosture, string(measure.PostureStooped), FieldBackLength, 1.0},
	{measure.AxisPosture, string(measure.PostureStooped), FieldFrontLength, -0.5},
	{measure.AxisPosture, string(measure.PostureStooped), FieldShoulderDart, 1.0},
	{measure.AxisPosture, string(measure.PostureErect), FieldBackLength, -0.5},
	{measure.AxisPosture, string(measure.PostureErect), FieldFrontLength, 1.0},

	{measure.AxisBust, string(measure.BustFull), FieldFront, 1.0},
	{measure.AxisBust, string(measure.BustFull), FieldTotal, 0.5},
	{measure.AxisBust, string(measure.BustFull), FieldCapWidth, 1.0},
	{measure.AxisBust, string(measure.BustFull), FieldBustDart, 1.5},
	{measure.AxisBust, string(measure.BustSmall), FieldFront, -0.5},
	{measure.AxisBust, string(measure.BustSmall), FieldCapWidth, -0.5},

	{measure.AxisHips, string(measure.HipsFull), FieldHipWidth, 1.5},
	{measure.AxisHips, string(measure.HipsFull), FieldCapWidth, 0.5},
	{measure.AxisHips, string(measure.HipsFlat), FieldHipWidth, -1.0},

	{measure.AxisHeight, string(measure.HeightBelowAverage), FieldBackLength, -1.0},
	{measure.AxisHeight, string(measure.HeightBelowAverage), FieldFrontLength, -1.0},
	{measure.AxisHeight, string(measure.HeightAboveAverage), FieldBackLength, 1.0},
	{measure.AxisHeight, string(measure.HeightAboveAverage), FieldFrontLength, 1.0},
}

// ArmholeCoupling damps the change in armhole depth before it is added to
// the sleeve cap height.
const ArmholeCoupling = 0.4

// EffectsFor returns the table rows selected by o, in table order.
func EffectsFor(o measure.FigureOptions) []Effect {
	var out []Effect
	for _, e := range Effects {
		if o.Get(e.Axis) == e.Value {
			out = append(out, e)
		}
	}
	return out
}

// Delta sums every selected delta targeting f.
func Delta(o measure.FigureOptions, f Field) float64 {
	var d float64
	for _, e := range EffectsFor(o) {
		if e.Field == f {
			d += e.Delta
		}
	}
	return d
}

// AdjustedGrid is a Grid after figure adjustments. Base keeps the grid the
// adjustments were applied to.
type AdjustedGrid struct {
	Grid
	Base    Grid                  `json:"base"`
	Options measure.FigureOptions `json:"options"`
}

// ApplyBodyAdjustments folds every body row selected by o into a copy of g.
// g is treated as the base; calling it again with the same grid never
// double-applies. The dart volume is re-derived from the adjusted span so
// the finished waist stays at the required width.
func ApplyBodyAdjustments(g Grid, o measure.FigureOptions) (AdjustedGrid, error) {
	if err := o.Validate(); err != nil {
		return AdjustedGrid{}, err
	}
	adj := g
	for _, e := range EffectsFor(o) {
		if p := adj.field(e.Field); p != nil {
			*p += e.Delta
		}
	}
	adj.Waist = g.Waist + (adj.BackLength - g.BackLength)
	adj.Hip = adj.Waist + (g.Hip - g.Waist)
	adj.clampFront()
	adj.resolveDartVolume()
	return AdjustedGrid{Grid: adj, Base: g, Options: o.Normalized()}, nil
}

func (g *Grid) field(f Field) *float64 {
	switch f {
	case FieldChest:
		return &g.Chest
	case FieldShoulderAngle:
		return &g.ShoulderAngle
	case FieldFrontShoulderDrop:
		return &g.FrontShoulderDrop
	case FieldShoulderDart:
		return &g.ShoulderDart
	case FieldBackLength:
		return &g.BackLength
	case FieldFrontLength:
		return &g.FrontLength
	case FieldFront:
		return &g.Front
	case FieldTotal:
		return &g.Total
	case FieldHipWidth:
		return &g.HipWidth
	}
	return nil
}

// SleeveBase holds the sleeve quantities before figure adjustments.
type SleeveBase struct {
	CapHeight   float64 `json:"cap_height"`
	CapWidth    float64 `json:"cap_width"`
	BottomWidth float64 `json:"bottom_width"`
	Length      float64 `json:"length"`
}

// SleeveBaseFor derives the unadjusted sleeve quantities.
func SleeveBaseFor(m measure.Measurements) SleeveBase {
	return SleeveBase{
		CapHeight:   m.ArmholeLength / 3,
		CapWidth:    m.Bust/3 + 3,
		BottomWidth: m.SleeveBottomWidth,
		Length:      m.SleeveLength,
	}
}

// ApplySleeveAdjustments couples the sleeve to the adjusted armhole depth
// and applies the sleeve rows of the table.
func ApplySleeveAdjustments(s SleeveBase, a AdjustedGrid, o measure.FigureOptions) SleeveBase {
	s.CapHeight += (a.Chest - a.Base.Chest) * ArmholeCoupling
	s.CapWidth += Delta(o, FieldCapWidth)
	return s
}
