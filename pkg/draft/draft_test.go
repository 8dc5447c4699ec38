package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "github.com/matzehuels/dressform/pkg/errors"
	"github.com/matzehuels/dressform/pkg/measure"
)

// Scenario A: reference measurements, neutral options.
func TestScenarioReference(t *testing.T) {
	p, err := DraftPattern(measure.Defaults(), measure.FigureOptions{}, StandardSplit)
	require.NoError(t, err)

	g := p.Bodice.Grid
	assert.InDelta(t, 54.0, g.Total, eps)
	assert.InDelta(t, 18.375, g.Back, eps)
	assert.InDelta(t, 11.375, g.Armhole, eps)
	assert.InDelta(t, 24.25, g.Front, eps)
	assert.InDelta(t, 22.8, g.Chest, eps)
	assert.InDelta(t, 41.0, g.Waist, eps)
	assert.InDelta(t, 60.0, g.Hip, eps)
	assert.InDelta(t, 110.0, g.Hem, eps)
	assert.InDelta(t, 9.5, g.DartVolume, eps)
	assert.Empty(t, p.Warnings())
}

// Scenario B: sloped shoulders lower the chest line and raise the cap.
func TestScenarioSlopedShoulders(t *testing.T) {
	m := measure.Defaults()
	ref, err := DraftPattern(m, measure.FigureOptions{}, StandardSplit)
	require.NoError(t, err)
	sloped, err := DraftPattern(m, measure.FigureOptions{Shoulder: measure.ShoulderSloped}, StandardSplit)
	require.NoError(t, err)

	assert.InDelta(t, 23.8, sloped.Bodice.Grid.Chest, eps)
	assert.InDelta(t, 0.4, sloped.Sleeve.CapHeight-ref.Sleeve.CapHeight, eps)
	assert.InDelta(t, ref.Sleeve.CapWidth, sloped.Sleeve.CapWidth, eps)
	assert.InDelta(t, ref.Sleeve.BottomWidth, sloped.Sleeve.BottomWidth, eps)
}

// Scenario C: small bust hits the armhole floor.
func TestScenarioSmallBust(t *testing.T) {
	m := measure.Defaults()
	m.Bust = 75
	c, err := DraftBodice(m, measure.FigureOptions{})
	require.NoError(t, err)

	assert.True(t, c.Grid.ArmholeClamped)
	assert.InDelta(t, 9.5, c.Grid.Armhole, eps)
	assert.InDelta(t, 40.0-75.0/8-5.5-9.5, c.Grid.Front, eps)
	assert.InDelta(t, c.Grid.Total, c.Grid.Back+c.Grid.Armhole+c.Grid.Front, eps)
}

func TestDraftRejectsBadInput(t *testing.T) {
	m := measure.Defaults()
	m.GarmentLength = 20
	_, err := DraftBodice(m, measure.FigureOptions{})
	require.Error(t, err)
	assert.True(t, derrors.Is(err, derrors.ErrCodeInvalidMeasurement))
	assert.Contains(t, err.Error(), "garment_length")

	_, err = DraftSleeve(measure.Defaults(), measure.FigureOptions{Height: "tall"}, 0)
	require.Error(t, err)
	assert.True(t, derrors.Is(err, derrors.ErrCodeInvalidOption))

	_, err = DraftBodiceWith(measure.Defaults(), measure.FigureOptions{}, DartSplit{Name: "bad", Side: 2})
	assert.True(t, derrors.Is(err, derrors.ErrCodeInvalidOption))
}

func TestDraftIsDeterministic(t *testing.T) {
	o := measure.FigureOptions{Posture: measure.PostureErect, Hips: measure.HipsFlat}
	a, err := DraftPattern(measure.Defaults(), o, ContourSplit)
	require.NoError(t, err)
	b, err := DraftPattern(measure.Defaults(), o, ContourSplit)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDraftPatternSleeveUsesBodiceDepth(t *testing.T) {
	o := measure.FigureOptions{Shoulder: measure.ShoulderSquare}
	p, err := DraftPattern(measure.Defaults(), o, StandardSplit)
	require.NoError(t, err)
	want := 16.0 + (p.Bodice.Grid.Chest-p.Bodice.Grid.Base.Chest)*ArmholeCoupling
	assert.InDelta(t, want, p.Sleeve.CapHeight, eps)
	assert.InDelta(t, 16.0-0.2, p.Sleeve.CapHeight, eps)
}

func TestConstructionSteps(t *testing.T) {
	steps := ConstructionSteps(nil)
	ids := make(map[string]bool, len(steps))
	for _, s := range steps {
		assert.False(t, ids[s.ID], "duplicate step %s", s.ID)
		ids[s.ID] = true
		assert.Empty(t, s.Value)
	}
	for _, s := range steps {
		for _, in := range s.Inputs {
			assert.True(t, ids[in], "step %s references unknown input %s", s.ID, in)
		}
	}

	p, err := DraftPattern(measure.Defaults(), measure.FigureOptions{}, StandardSplit)
	require.NoError(t, err)
	valued := ConstructionSteps(&p)
	for _, s := range valued {
		if s.ID == "grid.total" {
			assert.Equal(t, "54.00", s.Value)
		}
		if s.ID == PtBustApex {
			assert.Equal(t, "(44.50, 21.00)", s.Value)
		}
		if s.Kind != StepMeasurement {
			assert.NotEmpty(t, s.Value, s.ID)
		}
	}
}
