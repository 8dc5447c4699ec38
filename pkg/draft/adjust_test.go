package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "github.com/matzehuels/dressform/pkg/errors"
	"github.com/matzehuels/dressform/pkg/measure"
)

func TestEffectsCoverOnlyKnownValues(t *testing.T) {
	for _, e := range Effects {
		assert.Contains(t, measure.Values(e.Axis), e.Value)
		assert.NotEqual(t, measure.Values(e.Axis)[0], e.Value, "neutral value %s=%s has a row", e.Axis, e.Value)
		assert.NotZero(t, e.Delta)
	}
}

func TestApplyBodyAdjustmentsNeutral(t *testing.T) {
	g := ComputeGrid(measure.Defaults())
	a, err := ApplyBodyAdjustments(g, measure.FigureOptions{})
	require.NoError(t, err)

	assert.Equal(t, g, a.Grid)
	assert.Equal(t, g, a.Base)
	assert.True(t, a.Options.IsNeutral())
}

func TestApplyBodyAdjustmentsDeltas(t *testing.T) {
	g := ComputeGrid(measure.Defaults())

	for _, axis := range measure.Axes {
		for _, value := range measure.Values(axis)[1:] {
			var o measure.FigureOptions
			require.NoError(t, o.Set(axis, value))

			t.Run(string(axis)+"="+value, func(t *testing.T) {
				a, err := ApplyBodyAdjustments(g, o)
				require.NoError(t, err)

				for _, f := range []Field{
					FieldChest, FieldShoulderAngle, FieldFrontShoulderDrop, FieldShoulderDart,
					FieldBackLength, FieldFrontLength, FieldFront, FieldTotal, FieldHipWidth,
				} {
					base, adj := g, a.Grid
					got := *adj.field(f) - *base.field(f)
					assert.InDelta(t, Delta(o, f), got, eps, "field %s", f)
				}

				// Levels follow the adjusted back length.
				assert.InDelta(t, a.BackLength, a.Waist, eps)
				assert.InDelta(t, a.Waist+HipDepth, a.Hip, eps)
				// Dart volume follows the laid-out width.
				assert.InDelta(t, a.Span()-g.WaistWidth, a.DartVolume, eps)
				assert.InDelta(t, g.WaistWidth, a.WaistWidth, eps)
			})
		}
	}
}

func TestBustAxisSwitching(t *testing.T) {
	g := ComputeGrid(measure.Defaults())
	full, err := ApplyBodyAdjustments(g, measure.FigureOptions{Bust: measure.BustFull})
	require.NoError(t, err)
	small, err := ApplyBodyAdjustments(g, measure.FigureOptions{Bust: measure.BustSmall})
	require.NoError(t, err)

	assert.InDelta(t, g.Front+1.0, full.Front, eps)
	assert.InDelta(t, g.Total+0.5, full.Total, eps)
	assert.InDelta(t, g.Front-0.5, small.Front, eps)
	assert.InDelta(t, g.Total, small.Total, eps)

	// Re-running from the same base never compounds.
	again, err := ApplyBodyAdjustments(g, measure.FigureOptions{Bust: measure.BustFull})
	require.NoError(t, err)
	assert.Equal(t, full, again)
}

func TestAxesAreIndependent(t *testing.T) {
	g := ComputeGrid(measure.Defaults())
	combined := measure.FigureOptions{
		Shoulder: measure.ShoulderSloped,
		Posture:  measure.PostureStooped,
		Bust:     measure.BustFull,
		Hips:     measure.HipsFull,
		Height:   measure.HeightAboveAverage,
	}
	a, err := ApplyBodyAdjustments(g, combined)
	require.NoError(t, err)

	// Back length: +1 stooped, +1 above-average.
	assert.InDelta(t, g.BackLength+2, a.BackLength, eps)
	// Front length: -0.5 stooped, +1 above-average.
	assert.InDelta(t, g.FrontLength+0.5, a.FrontLength, eps)
	assert.InDelta(t, g.Chest+1, a.Chest, eps)
	assert.InDelta(t, g.HipWidth+1.5, a.HipWidth, eps)
	assert.InDelta(t, 1.5, Delta(combined, FieldCapWidth), eps)
}

func TestApplyBodyAdjustmentsUnknownOption(t *testing.T) {
	_, err := ApplyBodyAdjustments(ComputeGrid(measure.Defaults()), measure.FigureOptions{Posture: "hunched"})
	require.Error(t, err)
	assert.True(t, derrors.Is(err, derrors.ErrCodeInvalidOption))
}

func TestApplySleeveAdjustmentsCoupling(t *testing.T) {
	m := measure.Defaults()
	g := ComputeGrid(m)
	base := SleeveBaseFor(m)
	assert.InDelta(t, 16.0, base.CapHeight, eps)
	assert.InDelta(t, 103.0/3+3, base.CapWidth, eps)

	a, err := ApplyBodyAdjustments(g, measure.FigureOptions{Shoulder: measure.ShoulderSloped})
	require.NoError(t, err)
	s := ApplySleeveAdjustments(base, a, a.Options)
	assert.InDelta(t, base.CapHeight+0.4, s.CapHeight, eps)
	assert.InDelta(t, base.CapWidth, s.CapWidth, eps)

	a, err = ApplyBodyAdjustments(g, measure.FigureOptions{Bust: measure.BustFull, Hips: measure.HipsFull})
	require.NoError(t, err)
	s = ApplySleeveAdjustments(base, a, a.Options)
	assert.InDelta(t, base.CapHeight, s.CapHeight, eps)
	assert.InDelta(t, base.CapWidth+1.5, s.CapWidth, eps)
}
