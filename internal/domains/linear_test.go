package domains

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/axisview/internal/axis"
)

func TestLinearRoundSnapsNoise(t *testing.T) {
	var d Linear
	assert.Equal(t, 0.3, d.Round(0.1+0.2, 0.1, axis.RoundCeiling))
	assert.Equal(t, 0.75, d.Round(0.7, 0.25, axis.RoundNearest))
	assert.Equal(t, 0.75, d.Round(0.71, 0.25, axis.RoundCeiling))
	assert.Equal(t, 1.0, d.Round(0.76, 0.25, axis.RoundCeiling))
	assert.Equal(t, 0.71, d.Round(0.71, 0, axis.RoundCeiling))
}

func TestLinearFormat(t *testing.T) {
	var d Linear
	cases := []struct {
		value float64
		hint  string
		want  string
	}{
		{0.1 + 0.2, "", "0.3"},
		{2.5, "", "2.5"},
		{1500, HintSI, "1.5 k"},
		{1234567.891, HintComma, "1,234,567.891"},
		{1234.5, "#,###.##", "1,234.50"},
		{42, "#,###.", "42"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, d.Format(tc.value, axis.LevelLabel, tc.hint), "value %v hint %q", tc.value, tc.hint)
	}
}

func TestLinearUnits(t *testing.T) {
	var d Linear
	_, ok := d.Units(2)
	assert.True(t, ok)
	_, ok = d.Units(d.Sub(1e308, -1e308))
	assert.False(t, ok)
}

func TestLinearCatalog(t *testing.T) {
	cat, err := LinearCatalog(2, -1)
	require.NoError(t, err)
	require.Equal(t, 12, cat.Len())
	assert.Equal(t, 0.1, cat.At(0).Level(axis.LevelLabel).Interval)
	assert.Equal(t, 0.2, cat.At(1).Level(axis.LevelLabel).Interval)
	assert.Equal(t, 500.0, cat.At(cat.Len()-1).Level(axis.LevelLabel).Interval)
	assert.Equal(t, "0.1", cat.At(0).Name)
}

func TestLinearAxisLabels(t *testing.T) {
	cat, err := LinearCatalog(-2, 2)
	require.NoError(t, err)
	a, err := axis.New[float64, float64](Linear{Initial: axis.Span(0.0, 1.0)}, cat)
	require.NoError(t, err)
	a.SetExtent(1000, axis.All(axis.SourceResize))
	require.True(t, a.IsValid())
	require.Equal(t, 0.1, a.Arrangement().Level(axis.LevelLabel).Interval)

	var labels []string
	for _, tick := range a.Ticks() {
		if tick.Level == axis.LevelLabel {
			labels = append(labels, tick.Text)
		}
	}
	assert.Equal(t, []string{"0.1", "0.2", "0.3", "0.4", "0.6", "0.7", "0.8", "0.9"}, labels)
}
