package domains

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/verte-zerg/axisview/internal/axis"
)

// Decimal is an exact fixed-point axis. The Format hint is the number of
// decimal places to print.
type Decimal struct {
	Initial axis.Range[decimal.Decimal]
}

var _ axis.Domain[decimal.Decimal, decimal.Decimal] = Decimal{}

func (Decimal) Units(s decimal.Decimal) (float64, bool) {
	f := s.InexactFloat64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func (Decimal) Size(units float64) decimal.Decimal {
	if math.IsNaN(units) || math.IsInf(units, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(units)
}

func (Decimal) Add(t, s decimal.Decimal) decimal.Decimal { return t.Add(s) }

func (Decimal) Sub(a, b decimal.Decimal) decimal.Decimal { return a.Sub(b) }

func (Decimal) Compare(a, b decimal.Decimal) int { return a.Cmp(b) }

func (Decimal) Round(t, interval decimal.Decimal, mode axis.RoundMode) decimal.Decimal {
	if interval.Sign() <= 0 {
		return t
	}
	q := t.Div(interval)
	if mode == axis.RoundCeiling {
		q = q.Ceil()
	} else {
		q = q.Round(0)
	}
	return q.Mul(interval)
}

func (Decimal) Value(begin, end decimal.Decimal) axis.Range[decimal.Decimal] {
	return axis.Span(begin, end)
}

func (d Decimal) InitialValue() axis.Range[decimal.Decimal] {
	if d.Initial.IsFilled() {
		return d.Initial
	}
	return axis.Span(decimal.Zero, decimal.NewFromInt(100))
}

func (Decimal) Format(t decimal.Decimal, _ axis.Level, hint string) string {
	if hint == "" {
		return t.String()
	}
	places, err := strconv.Atoi(hint)
	if err != nil || places < 0 {
		return t.String()
	}
	return t.StringFixed(int32(places))
}

// DecimalCatalog is the decimal counterpart of LinearCatalog. Sizes are
// exact powers of ten times 1, 2 or 5.
func DecimalCatalog(minExp, maxExp int32) (*axis.Catalog[decimal.Decimal], error) {
	if minExp > maxExp {
		minExp, maxExp = maxExp, minExp
	}
	var arrs []axis.Arrangement[decimal.Decimal]
	for exp := minExp; exp <= maxExp; exp++ {
		for _, step := range linearSteps {
			label := decimal.New(int64(step.mantissa), exp)
			labelPlaces := strconv.Itoa(max(0, int(-exp)))
			var arr axis.Arrangement[decimal.Decimal]
			arr.Name = label.String()
			arr.Levels[axis.LevelOuter].Format = strconv.Itoa(max(0, int(1-exp)))
			arr.Levels[axis.LevelBigLabel] = axis.TickLevel[decimal.Decimal]{
				Interval: label.Mul(decimal.NewFromFloat(step.big)),
				Format:   labelPlaces,
			}
			arr.Levels[axis.LevelLabel] = axis.TickLevel[decimal.Decimal]{Interval: label, Format: labelPlaces}
			arr.Levels[axis.LevelBigTick].Interval = label.Div(decimal.NewFromFloat(step.bigTicks))
			arr.Levels[axis.LevelTick].Interval = label.Div(decimal.NewFromFloat(step.ticks))
			arrs = append(arrs, arr)
		}
	}
	return axis.NewCatalog(Decimal{}.Units, arrs...)
}
