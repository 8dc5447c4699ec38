package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "github.com/matzehuels/dressform/pkg/errors"
	"github.com/matzehuels/dressform/pkg/measure"
)

const eps = 1e-6

func TestComputeGridReference(t *testing.T) {
	g := ComputeGrid(measure.Defaults())

	assert.InDelta(t, 54.0, g.Total, eps)
	assert.InDelta(t, 18.375, g.Back, eps)
	assert.InDelta(t, 11.375, g.Armhole, eps)
	assert.InDelta(t, 24.25, g.Front, eps)
	assert.InDelta(t, 22.8, g.Chest, eps)
	assert.InDelta(t, 41.0, g.Waist, eps)
	assert.InDelta(t, 60.0, g.Hip, eps)
	assert.InDelta(t, 110.0, g.Hem, eps)
	assert.InDelta(t, 9.5, g.DartVolume, eps)
	assert.InDelta(t, 52.0, g.HipWidth, eps)
	assert.False(t, g.ArmholeClamped)
	assert.False(t, g.FrontClamped)
	assert.False(t, g.DartVolumeClamped)
}

func TestComputeGridArmholeFloor(t *testing.T) {
	m := measure.Defaults()
	m.Bust = 75
	g := ComputeGrid(m)

	assert.True(t, g.ArmholeClamped)
	assert.InDelta(t, MinArmholeWidth, g.Armhole, eps)
	assert.InDelta(t, 40.0, g.Total, eps)
	assert.InDelta(t, 14.875, g.Back, eps)
	assert.InDelta(t, 40.0-14.875-9.5, g.Front, eps)
	assert.InDelta(t, g.Total, g.Back+g.Armhole+g.Front, eps)

	// Waist wider than the bodice: the dart volume clamps to zero.
	assert.Zero(t, g.DartVolume)
	assert.True(t, g.DartVolumeClamped)
}

func TestSumInvariant(t *testing.T) {
	for bust := 70.0; bust <= 130; bust += 2.5 {
		for ease := 0.0; ease <= 10; ease += 2.5 {
			m := measure.Defaults()
			m.Bust, m.BustEase = bust, ease
			g := ComputeGrid(m)
			assert.InDelta(t, g.Total, g.Back+g.Armhole+g.Front, eps, "bust=%v ease=%v", bust, ease)
			assert.GreaterOrEqual(t, g.Armhole, MinArmholeWidth)
			assert.GreaterOrEqual(t, g.Front, MinFrontWidth)
		}
	}
}

func TestClampFrontRestoresSum(t *testing.T) {
	g := Grid{Total: 30, Back: 15, Armhole: 10}
	g.Front = g.Total - g.Back - g.Armhole
	g.clampFront()

	assert.True(t, g.FrontClamped)
	assert.InDelta(t, MinFrontWidth, g.Front, eps)
	assert.InDelta(t, 35.0, g.Total, eps)
}

func TestLevelsIncreasing(t *testing.T) {
	extremes := []func(*measure.Measurements){
		func(m *measure.Measurements) {},
		func(m *measure.Measurements) { m.Bust, m.BackLength, m.GarmentLength = 130, 35, 80 },
		func(m *measure.Measurements) { m.Bust, m.BackLength, m.GarmentLength = 70, 45, 80 },
		func(m *measure.Measurements) { m.Bust, m.BackLength, m.GarmentLength = 130, 45, 120 },
	}
	options := []measure.FigureOptions{
		{},
		{Shoulder: measure.ShoulderSloped, Posture: measure.PostureStooped, Height: measure.HeightAboveAverage},
		{Shoulder: measure.ShoulderSquare, Posture: measure.PostureErect, Height: measure.HeightBelowAverage},
	}
	for i, mutate := range extremes {
		m := measure.Defaults()
		mutate(&m)
		require.NoError(t, m.Validate())
		for _, o := range options {
			a, err := ApplyBodyAdjustments(ComputeGrid(m), o)
			require.NoError(t, err)
			assert.NoError(t, ValidateLevels(a.Grid), "case %d options %s", i, o)
		}
	}
}

func TestValidateLevels(t *testing.T) {
	g := ComputeGrid(measure.Defaults())
	g.Hem = g.Hip

	err := ValidateLevels(g)
	require.Error(t, err)
	assert.True(t, derrors.Is(err, derrors.ErrCodeInvalidMeasurement))
	assert.Contains(t, err.Error(), "hem level")
}
