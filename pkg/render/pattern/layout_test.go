package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/dressform/pkg/draft"
	"github.com/matzehuels/dressform/pkg/geom"
	"github.com/matzehuels/dressform/pkg/measure"
)

func referenceBodice(t *testing.T) draft.BodiceContour {
	t.Helper()
	c, err := draft.DraftBodice(measure.Defaults(), measure.FigureOptions{})
	require.NoError(t, err)
	return c
}

func TestFromBodiceLayers(t *testing.T) {
	d := FromBodice(referenceBodice(t), DefaultOptions())

	var names []string
	for _, l := range d.Layers {
		names = append(names, l.Name)
	}
	assert.Equal(t, LayerOrder, names)
	assert.Equal(t, "bodice", d.Name)

	outline := d.Layer(LayerOutline)
	require.NotNil(t, outline)
	require.Len(t, outline.Paths, 2)
	assert.Equal(t, "back", outline.Paths[0].Name)
	assert.Equal(t, "front", outline.Paths[1].Name)
	for _, p := range outline.Paths {
		assert.True(t, p.Closed)
		assert.Greater(t, len(p.Points), 10)
	}

	darts := d.Layer(LayerDarts)
	require.NotNil(t, darts)
	assert.NotEmpty(t, darts.Paths)
}

func TestFromBodiceGridLetters(t *testing.T) {
	c := referenceBodice(t)
	d := FromBodice(c, DefaultOptions())
	grid := d.Layer(LayerGrid)
	require.NotNil(t, grid)

	var letters []string
	for _, lb := range grid.Labels {
		letters = append(letters, lb.Text)
	}
	assert.Equal(t, []string{"A", "G", "T", "B", "N"}, letters)

	for _, p := range grid.Paths {
		assert.True(t, p.Dashed, "grid path %s should be dashed", p.Name)
	}
	assert.InDelta(t, c.Grid.Waist, grid.Paths[2].Points[0].Y, 1e-9)
}

func TestFromBodiceOutlineOnly(t *testing.T) {
	d := FromBodice(referenceBodice(t), OutlineOnly())
	assert.Nil(t, d.Layer(LayerGrid))
	assert.Nil(t, d.Layer(LayerMarks))
	assert.Nil(t, d.Layer(LayerLabels))
	assert.NotNil(t, d.Layer(LayerOutline))
	assert.NotNil(t, d.Layer(LayerDarts))
}

func TestFromBodiceBoundsCoverOutline(t *testing.T) {
	d := FromBodice(referenceBodice(t), OutlineOnly())
	require.False(t, d.Bounds.Empty())
	for _, p := range d.Layer(LayerOutline).Paths {
		for _, pt := range p.Points {
			assert.True(t, d.Bounds.Contains(pt), "%s point %v outside bounds", p.Name, pt)
		}
	}
}

func TestFromSleeve(t *testing.T) {
	s, err := draft.DraftSleeve(measure.Defaults(), measure.FigureOptions{}, 0)
	require.NoError(t, err)

	d := FromSleeve(s, DefaultOptions())
	assert.Equal(t, "sleeve", d.Name)
	outline := d.Layer(LayerOutline)
	require.NotNil(t, outline)
	require.Len(t, outline.Paths, 1)
	assert.True(t, outline.Paths[0].Closed)

	bare := FromSleeve(s, OutlineOnly())
	assert.InDelta(t, -s.CapHeight, bare.Bounds.Min.Y, 1e-6)
	assert.InDelta(t, s.Length-s.CapHeight, bare.Bounds.Max.Y, 1e-6)
	assert.InDelta(t, -s.CapWidth/2, bare.Bounds.Min.X, 1e-6)

	labels := d.Layer(LayerLabels)
	require.NotNil(t, labels)
	assert.Equal(t, "SLEEVE", labels.Labels[0].Text)
}

func TestCross(t *testing.T) {
	p := cross("x", geom.Pt(1, 1), 0.5)
	require.Len(t, p.Points, 5)
	assert.Equal(t, geom.Pt(1, 1), p.Points[2])
	assert.False(t, p.Closed)
}
