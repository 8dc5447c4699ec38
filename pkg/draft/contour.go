package draft

import (
	"math"

	"github.com/matzehuels/dressform/pkg/geom"
	"github.com/matzehuels/dressform/pkg/measure"
)

// Contour tolerances and construction offsets, in centimetres.
const (
	shoulderClearance    = 1.0
	edgeClearance        = 1.0
	maxDiagonalDeviation = 5.0
	bustDartTipGap       = 2.0
	bustDartPosition     = 0.3
	shoulderDartDepth    = 7.0
)

// Neckline proportions. The width grows with the bust and passes through
// 6.7 cm at the 103 cm reference bust.
const (
	neckWidthPerBust = 1.0 / 20
	neckWidthOffset  = 1.55
	frontNeckExtra   = 1.5
)

// NeckWidth returns the horizontal neckline width for a bust circumference.
// The back neck is a third as deep as it is wide; the front neck is
// frontNeckExtra deeper than wide.
func NeckWidth(bust float64) float64 { return bust*neckWidthPerBust + neckWidthOffset }

// Point names used in bodice panels.
const (
	PtCBNeck        = "cb-neck"
	PtBackNeck      = "back-neck"
	PtBackShoulder  = "back-shoulder"
	PtBackWidth     = "back-width"
	PtSideChest     = "side-chest"
	PtBackWaist     = "back-waist"
	PtBackHip       = "back-hip"
	PtBackHem       = "back-hem"
	PtCBWaist       = "cb-waist"
	PtCBHem         = "cb-hem"
	PtFrontNeck     = "front-neck"
	PtCFNeck        = "cf-neck"
	PtFrontShoulder = "front-shoulder"
	PtFrontWidth    = "front-width"
	PtFrontWaist    = "front-waist"
	PtFrontHip      = "front-hip"
	PtFrontHem      = "front-hem"
	PtCFWaist       = "cf-waist"
	PtCFHem         = "cf-hem"
	PtBustApex      = "bust-apex"
)

// BodiceContour is the fully resolved bodice: both panels, the bust apex
// reference point and every intermediate quantity used to build them.
type BodiceContour struct {
	Back     Panel          `json:"back"`
	Front    Panel          `json:"front"`
	BustApex geom.Point     `json:"bust_apex"`
	Grid     AdjustedGrid   `json:"grid"`
	Darts    DartAllocation `json:"darts"`
	Warnings []Warning      `json:"warnings,omitempty"`

	// Diagnostics measured on the resolved outline.
	ArmholeLength    float64 `json:"armhole_length"`
	ShoulderDiagonal float64 `json:"shoulder_diagonal"`
}

// Bounds returns the bounding box of both panels.
func (c BodiceContour) Bounds() geom.Rect {
	return c.Back.Bounds().Union(c.Front.Bounds())
}

// ResolveContour lays out the back and front panels on the adjusted grid.
// Points that would cross a section boundary are clamped and reported as
// warnings.
func ResolveContour(a AdjustedGrid, m measure.Measurements, d DartAllocation) BodiceContour {
	var ws warnings
	if a.ArmholeClamped {
		ws.add(WarnArmholeFloor, "armhole width raised to the %.1f cm minimum", MinArmholeWidth)
	}
	if a.FrontClamped {
		ws.add(WarnFrontClamped, "front width raised to the %.1f cm minimum; total half-width is now %.2f cm",
			MinFrontWidth, a.Total)
	}
	if a.DartVolumeClamped {
		ws.add(WarnDartVolumeClamped, "waist exceeds bodice width; waist darts omitted")
	}

	wn := NeckWidth(m.Bust)
	span := a.Span()
	side := geom.Pt(a.Back+a.Armhole/2, a.Chest)
	clampX := func(x float64, code WarningCode, what string) float64 {
		lo, hi := edgeClearance, span-edgeClearance
		switch {
		case x < lo:
			ws.add(code, "%s moved from x=%.2f to %.2f", what, x, lo)
			return lo
		case x > hi:
			ws.add(code, "%s moved from x=%.2f to %.2f", what, x, hi)
			return hi
		}
		return x
	}

	// Back panel.
	cbNeck := geom.Pt(0, 0)
	backNeck := geom.Pt(wn, -wn/3)
	backShoulder := backNeck.Polar(m.ShoulderWidth+d.Shoulder, a.ShoulderAngle)
	if limit := side.X - shoulderClearance; backShoulder.X > limit {
		r := math.Max(1, (limit-backNeck.X)/math.Cos(a.ShoulderAngle*math.Pi/180))
		backShoulder = backNeck.Polar(r, a.ShoulderAngle)
		ws.add(WarnShoulderClamped, "back shoulder shortened to %.2f cm to stay inside the side line", r)
	}
	backWidth := geom.Pt(a.Back, backShoulder.Y+0.6*(a.Chest-backShoulder.Y))
	backArmhole := geom.Cubic("back-armhole", backShoulder, backWidth,
		geom.Pt(a.Back+0.25*a.Armhole, a.Chest), side)
	backWaist := geom.Pt(clampX(side.X-d.Side/2, WarnWaistCrossing, "back waist point"), a.Waist)
	backHip := geom.Pt(clampX(side.X+d.HipWidening, WarnHipCrossing, "back hip point"), a.Hip)
	backHem := geom.Pt(backHip.X, a.Hem)
	cbHem := geom.Pt(0, a.Hem)

	back := Panel{
		Name: "back",
		Points: map[string]geom.Point{
			PtCBNeck:       cbNeck,
			PtBackNeck:     backNeck,
			PtBackShoulder: backShoulder,
			PtBackWidth:    geom.Pt(a.Back, backWidth.Y),
			PtSideChest:    side,
			PtBackWaist:    backWaist,
			PtBackHip:      backHip,
			PtBackHem:      backHem,
			PtCBWaist:      geom.Pt(0, a.Waist),
			PtCBHem:        cbHem,
		},
		Outline: []geom.Curve{
			geom.Quad("back-neckline", cbNeck, geom.Pt(wn/2, 0), backNeck),
			geom.Line("back-shoulder", backNeck, backShoulder),
			backArmhole,
			geom.Line("back-side-upper", side, backWaist),
			geom.Line("back-side-lower", backWaist, backHip),
			geom.Line("back-side-skirt", backHip, backHem),
			geom.Line("back-hem", backHem, cbHem),
			geom.Line("centre-back", cbHem, cbNeck),
		},
	}

	// Front panel, shifted up by the balance.
	top := -a.Balance()
	frontNeck := geom.Pt(span-wn, top)
	cfNeck := geom.Pt(span, top+wn+frontNeckExtra)
	drop := a.FrontShoulderDrop
	run := math.Sqrt(math.Max(0, m.ShoulderWidth*m.ShoulderWidth-drop*drop))
	frontShoulder := geom.Pt(frontNeck.X-run, top+drop)
	if limit := side.X + shoulderClearance; frontShoulder.X < limit && run > 0 {
		t := math.Max(0, (frontNeck.X-limit)/run)
		frontShoulder = frontNeck.Lerp(frontShoulder, t)
		ws.add(WarnShoulderClamped, "front shoulder shortened to %.2f cm to stay inside the side line",
			frontNeck.Dist(frontShoulder))
	}
	frontWidth := geom.Pt(a.Back+a.Armhole, frontShoulder.Y+0.6*(a.Chest-frontShoulder.Y))
	frontArmhole := geom.Cubic("front-armhole", frontShoulder, frontWidth,
		geom.Pt(a.Back+0.75*a.Armhole, a.Chest), side)
	frontWaist := geom.Pt(clampX(side.X+d.Side/2, WarnWaistCrossing, "front waist point"), a.Waist)
	frontHip := geom.Pt(clampX(side.X-d.HipWidening, WarnHipCrossing, "front hip point"), a.Hip)
	frontHem := geom.Pt(frontHip.X, a.Hem)
	cfHem := geom.Pt(span, a.Hem)
	apex := geom.Pt(span-m.BustOffset, top+m.BustHeight)

	front := Panel{
		Name: "front",
		Points: map[string]geom.Point{
			PtFrontNeck:     frontNeck,
			PtCFNeck:        cfNeck,
			PtFrontShoulder: frontShoulder,
			PtFrontWidth:    geom.Pt(a.Back+a.Armhole, frontWidth.Y),
			PtSideChest:     side,
			PtFrontWaist:    frontWaist,
			PtFrontHip:      frontHip,
			PtFrontHem:      frontHem,
			PtCFWaist:       geom.Pt(span, a.Waist),
			PtCFHem:         cfHem,
			PtBustApex:      apex,
		},
		Outline: []geom.Curve{
			geom.Line("front-shoulder", frontNeck, frontShoulder),
			frontArmhole,
			geom.Line("front-side-upper", side, frontWaist),
			geom.Line("front-side-lower", frontWaist, frontHip),
			geom.Line("front-side-skirt", frontHip, frontHem),
			geom.Line("front-hem", frontHem, cfHem),
			geom.Line("centre-front", cfHem, cfNeck),
			geom.Quad("front-neckline", cfNeck, geom.Pt(span-wn, top+wn+frontNeckExtra), frontNeck),
		},
	}

	back.Darts = backDarts(a, d, backNeck, backShoulder)
	front.Darts = frontDarts(a, d, apex, side, frontWaist, &ws)

	c := BodiceContour{
		Back:             back,
		Front:            front,
		BustApex:         apex,
		Grid:             a,
		Darts:            d,
		ArmholeLength:    backArmhole.Length() + frontArmhole.Length(),
		ShoulderDiagonal: backShoulder.Dist(geom.Pt(0, a.Waist)),
	}
	if dev := c.ShoulderDiagonal - m.ShoulderDiagonal; math.Abs(dev) > maxDiagonalDeviation {
		ws.add(WarnShoulderDiagonal, "drafted shoulder diagonal %.2f cm differs from measured %.2f cm by %.2f cm",
			c.ShoulderDiagonal, m.ShoulderDiagonal, dev)
	}
	c.Warnings = ws
	return c
}

func backDarts(a AdjustedGrid, d DartAllocation, neck, shoulder geom.Point) []Dart {
	var out []Dart
	if d.Back > 0 {
		cx := a.Back / 2
		out = append(out, diamond("back-waist", d.Back, cx, a.Chest+2, a.Waist, a.Hip-4))
	}
	if d.Shoulder > 0 {
		dir := unit(shoulder.Sub(neck))
		mid := neck.Lerp(shoulder, 0.5)
		normal := geom.Pt(-dir.Y, dir.X)
		out = append(out, Dart{
			Name:   "back-shoulder",
			Intake: d.Shoulder,
			Points: []geom.Point{
				mid.Sub(dir.Scale(d.Shoulder / 2)),
				mid.Add(normal.Scale(shoulderDartDepth)),
				mid.Add(dir.Scale(d.Shoulder / 2)),
			},
		})
	}
	return out
}

func frontDarts(a AdjustedGrid, d DartAllocation, apex, side, waist geom.Point, ws *warnings) []Dart {
	var out []Dart
	if d.Front > 0 {
		tip := apex.Y + 3
		if limit := a.Waist - 3; tip > limit {
			ws.add(WarnDartTipClamped, "front waist dart tip raised from y=%.2f to %.2f", tip, limit)
			tip = limit
		}
		out = append(out, diamond("front-waist", d.Front, apex.X, tip, a.Waist, a.Hip-5))
	}
	if d.Bust > 0 {
		dir := unit(waist.Sub(side))
		on := side.Lerp(waist, bustDartPosition)
		tip := apex.Add(unit(on.Sub(apex)).Scale(bustDartTipGap))
		out = append(out, Dart{
			Name:   "bust",
			Intake: d.Bust,
			Points: []geom.Point{
				on.Sub(dir.Scale(d.Bust / 2)),
				tip,
				on.Add(dir.Scale(d.Bust / 2)),
			},
		})
	}
	return out
}

func diamond(name string, intake, x, top, waist, bottom float64) Dart {
	return Dart{
		Name:   name,
		Intake: intake,
		Points: []geom.Point{
			geom.Pt(x, top),
			geom.Pt(x-intake/2, waist),
			geom.Pt(x, bottom),
			geom.Pt(x+intake/2, waist),
		},
		Closed: true,
	}
}

func unit(p geom.Point) geom.Point {
	l := math.Hypot(p.X, p.Y)
	if l == 0 {
		return geom.Point{}
	}
	return p.Scale(1 / l)
}
