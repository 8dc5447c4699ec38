package draft

import (
	"fmt"

	"github.com/matzehuels/dressform/pkg/geom"
)

// StepKind classifies a construction step.
type StepKind string

const (
	StepMeasurement StepKind = "measurement"
	StepQuantity    StepKind = "quantity"
	StepPoint       StepKind = "point"
)

// Step is one node of the construction graph: a measurement, a derived grid
// quantity or a contour point, with the steps it is derived from.
type Step struct {
	ID      string   `json:"id"`
	Kind    StepKind `json:"kind"`
	Label   string   `json:"label"`
	Formula string   `json:"formula,omitempty"`
	Inputs  []string `json:"inputs,omitempty"`
	Value   string   `json:"value,omitempty"`
}

var constructionSteps = []Step{
	{ID: "bust", Kind: StepMeasurement, Label: "Bust"},
	{ID: "bust_ease", Kind: StepMeasurement, Label: "Bust ease"},
	{ID: "waist", Kind: StepMeasurement, Label: "Waist"},
	{ID: "waist_ease", Kind: StepMeasurement, Label: "Waist ease"},
	{ID: "hip", Kind: StepMeasurement, Label: "Hip"},
	{ID: "hip_ease", Kind: StepMeasurement, Label: "Hip ease"},
	{ID: "back_length", Kind: StepMeasurement, Label: "Back length"},
	{ID: "front_length", Kind: StepMeasurement, Label: "Front length"},
	{ID: "garment_length", Kind: StepMeasurement, Label: "Garment length"},
	{ID: "shoulder_width", Kind: StepMeasurement, Label: "Shoulder width"},
	{ID: "bust_height", Kind: StepMeasurement, Label: "Bust height"},
	{ID: "bust_offset", Kind: StepMeasurement, Label: "Bust offset"},
	{ID: "armhole_length", Kind: StepMeasurement, Label: "Armhole length"},

	{ID: "grid.total", Kind: StepQuantity, Label: "Total half-width", Formula: "(bust + bust_ease) / 2", Inputs: []string{"bust", "bust_ease"}},
	{ID: "grid.back", Kind: StepQuantity, Label: "Back width", Formula: "bust/8 + 5.5", Inputs: []string{"bust"}},
	{ID: "grid.armhole", Kind: StepQuantity, Label: "Armhole width", Formula: "max(bust/8 - 1.5, 9.5)", Inputs: []string{"bust"}},
	{ID: "grid.front", Kind: StepQuantity, Label: "Front width", Formula: "max(total - back - armhole, 10)", Inputs: []string{"grid.total", "grid.back", "grid.armhole"}},
	{ID: "grid.chest", Kind: StepQuantity, Label: "Chest level (G)", Formula: "bust/10 + 12.5", Inputs: []string{"bust"}},
	{ID: "grid.waist", Kind: StepQuantity, Label: "Waist level (T)", Formula: "back_length", Inputs: []string{"back_length"}},
	{ID: "grid.hip", Kind: StepQuantity, Label: "Hip level (B)", Formula: "waist + 19", Inputs: []string{"grid.waist"}},
	{ID: "grid.hem", Kind: StepQuantity, Label: "Hem level (N)", Formula: "garment_length", Inputs: []string{"garment_length"}},
	{ID: "grid.dart_volume", Kind: StepQuantity, Label: "Waist dart volume", Formula: "max(0, back + armhole + front - (waist + waist_ease)/2)", Inputs: []string{"grid.back", "grid.armhole", "grid.front", "waist", "waist_ease"}},
	{ID: "grid.hip_width", Kind: StepQuantity, Label: "Hip half-width", Formula: "(hip + hip_ease) / 2", Inputs: []string{"hip", "hip_ease"}},
	{ID: "grid.balance", Kind: StepQuantity, Label: "Balance", Formula: "front_length - back_length", Inputs: []string{"front_length", "back_length"}},
	{ID: "neck.width", Kind: StepQuantity, Label: "Neck width", Formula: "bust/20 + 1.55", Inputs: []string{"bust"}},
	{ID: "darts.side", Kind: StepQuantity, Label: "Side dart", Formula: "dart_volume * split.side", Inputs: []string{"grid.dart_volume"}},
	{ID: "darts.hip_widening", Kind: StepQuantity, Label: "Hip widening", Formula: "(hip_width - (back + armhole + front)) / 2", Inputs: []string{"grid.hip_width", "grid.back", "grid.armhole", "grid.front"}},
	{ID: "sleeve.cap_height", Kind: StepQuantity, Label: "Cap height", Formula: "armhole_length/3 + 0.4 * Δchest", Inputs: []string{"armhole_length", "grid.chest"}},
	{ID: "sleeve.cap_width", Kind: StepQuantity, Label: "Cap width", Formula: "bust/3 + 3", Inputs: []string{"bust"}},

	{ID: PtBackNeck, Kind: StepPoint, Label: "Back neck point", Formula: "(neck, -neck/3)", Inputs: []string{"neck.width"}},
	{ID: PtBackShoulder, Kind: StepPoint, Label: "Back shoulder point", Formula: "back neck + shoulder_width + shoulder dart at shoulder angle", Inputs: []string{PtBackNeck, "shoulder_width"}},
	{ID: PtSideChest, Kind: StepPoint, Label: "Side point", Formula: "(back + armhole/2, chest)", Inputs: []string{"grid.back", "grid.armhole", "grid.chest"}},
	{ID: PtFrontNeck, Kind: StepPoint, Label: "Front neck point", Formula: "(span - neck, -balance)", Inputs: []string{"grid.front", "neck.width", "grid.balance"}},
	{ID: PtFrontShoulder, Kind: StepPoint, Label: "Front shoulder point", Formula: "front neck - shoulder_width with front drop", Inputs: []string{PtFrontNeck, "shoulder_width"}},
	{ID: PtBackWaist, Kind: StepPoint, Label: "Back waist point", Formula: "side.x - side dart/2", Inputs: []string{PtSideChest, "darts.side", "grid.waist"}},
	{ID: PtFrontWaist, Kind: StepPoint, Label: "Front waist point", Formula: "side.x + side dart/2", Inputs: []string{PtSideChest, "darts.side", "grid.waist"}},
	{ID: PtBackHip, Kind: StepPoint, Label: "Back hip point", Formula: "side.x + hip widening", Inputs: []string{PtSideChest, "darts.hip_widening", "grid.hip"}},
	{ID: PtFrontHip, Kind: StepPoint, Label: "Front hip point", Formula: "side.x - hip widening", Inputs: []string{PtSideChest, "darts.hip_widening", "grid.hip"}},
	{ID: PtBustApex, Kind: StepPoint, Label: "Bust apex", Formula: "(span - bust_offset, bust_height - balance)", Inputs: []string{"bust_offset", "bust_height", "grid.balance"}},
	{ID: PtCapTop, Kind: StepPoint, Label: "Sleeve cap top", Formula: "(0, -cap height)", Inputs: []string{"sleeve.cap_height", "sleeve.cap_width"}},
}

// ConstructionSteps returns the construction graph. When p is non-nil each
// quantity and point carries its resolved value.
func ConstructionSteps(p *Pattern) []Step {
	out := make([]Step, len(constructionSteps))
	copy(out, constructionSteps)
	if p == nil {
		return out
	}
	c := p.Bodice
	g := c.Grid
	quantities := map[string]float64{
		"grid.total":         g.Total,
		"grid.back":          g.Back,
		"grid.armhole":       g.Armhole,
		"grid.front":         g.Front,
		"grid.chest":         g.Chest,
		"grid.waist":         g.Waist,
		"grid.hip":           g.Hip,
		"grid.hem":           g.Hem,
		"grid.dart_volume":   g.DartVolume,
		"grid.hip_width":     g.HipWidth,
		"grid.balance":       g.Balance(),
		"darts.side":         c.Darts.Side,
		"darts.hip_widening": c.Darts.HipWidening,
		"sleeve.cap_height":  p.Sleeve.CapHeight,
		"sleeve.cap_width":   p.Sleeve.CapWidth,
	}
	for i, s := range out {
		if v, ok := quantities[s.ID]; ok {
			out[i].Value = fmt.Sprintf("%.2f", v)
			continue
		}
		if s.ID == "neck.width" {
			if pt, ok := c.Back.Point(PtBackNeck); ok {
				out[i].Value = fmt.Sprintf("%.2f", pt.X)
			}
			continue
		}
		for _, pts := range []map[string]geom.Point{c.Back.Points, c.Front.Points, p.Sleeve.Points} {
			if pt, ok := pts[s.ID]; ok {
				out[i].Value = fmt.Sprintf("(%.2f, %.2f)", pt.X, pt.Y)
				break
			}
		}
	}
	return out
}
