// Package domains provides concrete axis domains and their default
// arrangement catalogs.
package domains

import (
	"cmp"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/verte-zerg/axisview/internal/axis"
)

// Format hints understood by Linear.Format. Any other non-empty hint is
// passed to humanize.FormatFloat as a pattern such as "#,###.##".
const (
	HintSI    = "si"
	HintComma = "comma"
)

// significant is the precision float results are snapped to.
const significant = 12

// Linear is a float64 axis whose sizes are float64 as well.
type Linear struct {
	Initial axis.Range[float64]
}

var _ axis.Domain[float64, float64] = Linear{}

func (Linear) Units(s float64) (float64, bool) {
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return 0, false
	}
	return s, true
}

func (Linear) Size(units float64) float64 { return units }

func (Linear) Add(t, s float64) float64 { return t + s }

func (Linear) Sub(a, b float64) float64 { return a - b }

func (Linear) Compare(a, b float64) int { return cmp.Compare(a, b) }

// Round aligns t to a multiple of interval. Quotients and results are
// snapped to 12 significant digits so that 0.1 steps stay on the grid.
func (Linear) Round(t, interval float64, mode axis.RoundMode) float64 {
	if interval <= 0 || math.IsNaN(interval) || math.IsInf(interval, 0) {
		return t
	}
	q := snap(t / interval)
	if mode == axis.RoundCeiling {
		q = math.Ceil(q)
	} else {
		q = math.Round(q)
	}
	return snap(q * interval)
}

func (Linear) Value(begin, end float64) axis.Range[float64] {
	return axis.Span(begin, end)
}

func (d Linear) InitialValue() axis.Range[float64] {
	if d.Initial.IsFilled() {
		return d.Initial
	}
	return axis.Span(0.0, 100.0)
}

func (Linear) Format(t float64, _ axis.Level, hint string) string {
	t = snap(t)
	if t == 0 {
		t = 0 // drop negative zero
	}
	switch hint {
	case "":
		return humanize.Ftoa(t)
	case HintSI:
		return strings.TrimSpace(humanize.SIWithDigits(t, 2, ""))
	case HintComma:
		return humanize.Commaf(t)
	default:
		return humanize.FormatFloat(hint, t)
	}
}

func snap(v float64) float64 {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	s, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', significant, 64), 64)
	if err != nil {
		return v
	}
	return s
}

// LinearCatalog builds 1-2-5 arrangements for every decade from 10^minExp
// to 10^maxExp.
func LinearCatalog(minExp, maxExp int) (*axis.Catalog[float64], error) {
	if minExp > maxExp {
		minExp, maxExp = maxExp, minExp
	}
	var arrs []axis.Arrangement[float64]
	for exp := minExp; exp <= maxExp; exp++ {
		base := math.Pow(10, float64(exp))
		outer := decimalsPattern(exp - 1)
		for _, step := range linearSteps {
			label := snap(step.mantissa * base)
			var arr axis.Arrangement[float64]
			arr.Name = humanize.Ftoa(label)
			arr.Levels[axis.LevelOuter].Format = outer
			arr.Levels[axis.LevelBigLabel] = axis.TickLevel[float64]{Interval: snap(label * step.big)}
			arr.Levels[axis.LevelLabel] = axis.TickLevel[float64]{Interval: label}
			arr.Levels[axis.LevelBigTick] = axis.TickLevel[float64]{Interval: snap(label / step.bigTicks)}
			arr.Levels[axis.LevelTick] = axis.TickLevel[float64]{Interval: snap(label / step.ticks)}
			arrs = append(arrs, arr)
		}
	}
	return axis.NewCatalog(Linear{}.Units, arrs...)
}

// big is the big label interval in labels. bigTicks and ticks split one
// label interval.
var linearSteps = []struct {
	mantissa float64
	big      float64
	bigTicks float64
	ticks    float64
}{
	{mantissa: 1, big: 5, bigTicks: 2, ticks: 10},
	{mantissa: 2, big: 5, bigTicks: 2, ticks: 4},
	{mantissa: 5, big: 2, bigTicks: 5, ticks: 10},
}

// decimalsPattern returns a humanize.FormatFloat pattern with enough
// decimals for a grid of 10^exp.
func decimalsPattern(exp int) string {
	if exp >= 0 {
		return "#,###."
	}
	return "#,###." + strings.Repeat("#", -exp)
}
