package draft

import (
	"math"

	"github.com/matzehuels/dressform/pkg/geom"
	"github.com/matzehuels/dressform/pkg/measure"
)

const (
	// frontCapHollow deepens the front half of the cap relative to the back.
	frontCapHollow = 0.12
	capSamples     = 32
	minCapHeight   = 5.0
	maxCapEase     = 6.0
)

// Point names used on the sleeve.
const (
	PtCapTop        = "cap-top"
	PtBackUnderarm  = "back-underarm"
	PtFrontUnderarm = "front-underarm"
	PtBackWrist     = "back-wrist"
	PtFrontWrist    = "front-wrist"
)

// SleeveGeometry is the resolved one-piece sleeve. The underarm line lies at
// y=0, the cap rises to y=-CapHeight and the hem sits at y=Length-CapHeight.
// The back half is on the negative x side.
type SleeveGeometry struct {
	SleeveBase
	Base    SleeveBase            `json:"base"`
	Options measure.FigureOptions `json:"options"`

	BackCap   geom.Curve            `json:"back_cap"`
	FrontCap  geom.Curve            `json:"front_cap"`
	BackSeam  geom.Curve            `json:"back_seam"`
	FrontSeam geom.Curve            `json:"front_seam"`
	Hem       geom.Curve            `json:"hem"`
	Points    map[string]geom.Point `json:"points"`

	// CapLength is the length of both cap halves; CapEase is CapLength minus
	// the measured armhole length.
	CapLength float64   `json:"cap_length"`
	CapEase   float64   `json:"cap_ease"`
	Warnings  []Warning `json:"warnings,omitempty"`
}

// Outline returns the closed sleeve outline starting at the back underarm.
func (s SleeveGeometry) Outline() []geom.Curve {
	return []geom.Curve{s.BackCap, s.FrontCap, s.FrontSeam, s.Hem, s.BackSeam}
}

// Panel returns the sleeve as a Panel for consumers that handle panels
// uniformly.
func (s SleeveGeometry) Panel() Panel {
	return Panel{Name: "sleeve", Points: s.Points, Outline: s.Outline()}
}

// Bounds returns the bounding box of the sleeve outline.
func (s SleeveGeometry) Bounds() geom.Rect { return s.Panel().Bounds() }

// ResolveSleeve builds the sleeve for measurements m on the adjusted grid a.
// The cap height follows the change of a.Chest relative to a.Base.Chest.
func ResolveSleeve(m measure.Measurements, a AdjustedGrid) SleeveGeometry {
	var ws warnings
	base := SleeveBaseFor(m)
	s := ApplySleeveAdjustments(base, a, a.Options)
	if s.CapHeight < minCapHeight {
		ws.add(WarnCapHeightClamped, "cap height raised from %.2f to %.2f cm", s.CapHeight, minCapHeight)
		s.CapHeight = minCapHeight
	}

	h, w := s.CapHeight, s.CapWidth
	backPts := make([]geom.Point, capSamples+1)
	frontPts := make([]geom.Point, capSamples+1)
	for i := 0; i <= capSamples; i++ {
		u := float64(i) / capSamples
		rise := h * (1 - math.Cos(math.Pi*u)) / 2
		backPts[i] = geom.Pt(-w/2+u*w/2, -rise)

		// Front runs from the cap top down to the front underarm.
		v := 1 - u
		frontRise := h * (1 - math.Cos(math.Pi*v)) / 2 * (1 - frontCapHollow*math.Sin(math.Pi*v))
		frontPts[i] = geom.Pt(w/2-v*w/2, -frontRise)
	}

	hemY := s.Length - h
	backUnder := geom.Pt(-w/2, 0)
	frontUnder := geom.Pt(w/2, 0)
	backWrist := geom.Pt(-s.BottomWidth/2, hemY)
	frontWrist := geom.Pt(s.BottomWidth/2, hemY)

	g := SleeveGeometry{
		SleeveBase: s,
		Base:       base,
		Options:    a.Options,
		BackCap:    geom.Polyline("back-cap", backPts),
		FrontCap:   geom.Polyline("front-cap", frontPts),
		FrontSeam:  geom.Line("front-underarm-seam", frontUnder, frontWrist),
		Hem:        geom.Line("sleeve-hem", frontWrist, backWrist),
		BackSeam:   geom.Line("back-underarm-seam", backWrist, backUnder),
		Points: map[string]geom.Point{
			PtCapTop:        geom.Pt(0, -h),
			PtBackUnderarm:  backUnder,
			PtFrontUnderarm: frontUnder,
			PtBackWrist:     backWrist,
			PtFrontWrist:    frontWrist,
		},
	}
	g.CapLength = g.BackCap.Length() + g.FrontCap.Length()
	g.CapEase = g.CapLength - m.ArmholeLength
	switch {
	case g.CapEase < 0:
		ws.add(WarnCapEaseNegative, "cap is %.2f cm shorter than the armhole", -g.CapEase)
	case g.CapEase > maxCapEase:
		ws.add(WarnCapEaseHigh, "cap ease %.2f cm exceeds %.1f cm", g.CapEase, maxCapEase)
	}
	g.Warnings = ws
	return g
}
