package domains

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/axisview/internal/axis"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDecimalRound(t *testing.T) {
	var d Decimal
	assert.True(t, dec("0.4").Equal(d.Round(dec("0.37"), dec("0.1"), axis.RoundCeiling)))
	assert.True(t, dec("0.35").Equal(d.Round(dec("0.37"), dec("0.05"), axis.RoundNearest)))
	assert.True(t, dec("-0.3").Equal(d.Round(dec("-0.37"), dec("0.1"), axis.RoundCeiling)))
	assert.True(t, dec("0.37").Equal(d.Round(dec("0.37"), decimal.Zero, axis.RoundCeiling)))
}

func TestDecimalFormat(t *testing.T) {
	var d Decimal
	assert.Equal(t, "0.40", d.Format(dec("0.4"), axis.LevelLabel, "2"))
	assert.Equal(t, "12", d.Format(dec("12.0"), axis.LevelLabel, ""))
	assert.Equal(t, "3.5", d.Format(dec("3.5"), axis.LevelLabel, "bogus"))
}

func TestDecimalSize(t *testing.T) {
	var d Decimal
	assert.True(t, dec("0.25").Equal(d.Size(0.25)))
	u, ok := d.Units(dec("1.5"))
	require.True(t, ok)
	assert.Equal(t, 1.5, u)
}

func TestDecimalAxisExactTicks(t *testing.T) {
	cat, err := DecimalCatalog(-2, 2)
	require.NoError(t, err)
	assert.Equal(t, "0.01", cat.At(0).Name)

	a, err := axis.New[decimal.Decimal, decimal.Decimal](Decimal{Initial: axis.Span(dec("0"), dec("1"))}, cat)
	require.NoError(t, err)
	a.SetExtent(1000, axis.All(axis.SourceResize))
	require.True(t, a.IsValid())

	var labels []string
	for _, tick := range a.Ticks() {
		if tick.Level == axis.LevelLabel {
			labels = append(labels, tick.Text)
		}
	}
	assert.Equal(t, []string{"0.1", "0.2", "0.3", "0.4", "0.6", "0.7", "0.8", "0.9"}, labels)
}
