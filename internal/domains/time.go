package domains

import (
	"math"
	"time"

	"github.com/verte-zerg/axisview/internal/axis"
)

const day = 24 * time.Hour

// Time is a wall clock axis. Sizes are durations and one unit is one
// second. The Format hint is a time layout.
type Time struct {
	Initial axis.Range[time.Time]
	// Location used for day alignment and labels; nil means time.Local.
	Location *time.Location
	Now      func() time.Time
}

var _ axis.Domain[time.Time, time.Duration] = Time{}

func (Time) Units(s time.Duration) (float64, bool) {
	return s.Seconds(), true
}

func (Time) Size(units float64) time.Duration {
	ns := units * float64(time.Second)
	switch {
	case math.IsNaN(ns):
		return 0
	case ns >= math.MaxInt64:
		return time.Duration(math.MaxInt64)
	case ns <= math.MinInt64:
		return time.Duration(math.MinInt64)
	}
	return time.Duration(math.Round(ns))
}

func (Time) Add(t time.Time, s time.Duration) time.Time { return t.Add(s) }

func (Time) Sub(a, b time.Time) time.Duration { return a.Sub(b) }

func (Time) Compare(a, b time.Time) int { return a.Compare(b) }

// Round aligns t to a multiple of interval counted from local midnight when
// interval divides a day, and from the Unix epoch otherwise.
func (d Time) Round(t time.Time, interval time.Duration, mode axis.RoundMode) time.Time {
	if interval <= 0 {
		return t
	}
	t = t.In(d.location())
	origin := time.Unix(0, 0).In(t.Location())
	if day%interval == 0 {
		y, m, dd := t.Date()
		origin = time.Date(y, m, dd, 0, 0, 0, 0, t.Location())
	}
	delta := t.Sub(origin)
	n, rem := delta/interval, delta%interval
	switch mode {
	case axis.RoundCeiling:
		if rem > 0 {
			n++
		}
	default:
		if rem > 0 && 2*rem >= interval {
			n++
		} else if rem < 0 && -2*rem > interval {
			n--
		}
	}
	return origin.Add(n * interval)
}

func (Time) Value(begin, end time.Time) axis.Range[time.Time] {
	return axis.Span(begin, end)
}

func (d Time) InitialValue() axis.Range[time.Time] {
	if d.Initial.IsFilled() {
		return d.Initial
	}
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	end := now().In(d.location())
	return axis.Span(end.Add(-time.Hour), end)
}

func (d Time) Format(t time.Time, _ axis.Level, hint string) string {
	if hint == "" {
		hint = time.DateTime
	}
	return t.In(d.location()).Format(hint)
}

func (d Time) location() *time.Location {
	if d.Location != nil {
		return d.Location
	}
	return time.Local
}

type timeStep struct {
	label     time.Duration
	big       time.Duration
	bigTick   time.Duration
	tick      time.Duration
	layout    string
	bigLayout string
	outer     string
}

var timeSteps = []timeStep{
	{time.Millisecond, 10 * time.Millisecond, 500 * time.Microsecond, 100 * time.Microsecond, ".000", "15:04:05.000", "2006-01-02 15:04:05.000"},
	{2 * time.Millisecond, 10 * time.Millisecond, time.Millisecond, 500 * time.Microsecond, ".000", "15:04:05.000", "2006-01-02 15:04:05.000"},
	{5 * time.Millisecond, 50 * time.Millisecond, time.Millisecond, time.Millisecond, ".000", "15:04:05.000", "2006-01-02 15:04:05.000"},
	{10 * time.Millisecond, 100 * time.Millisecond, 5 * time.Millisecond, time.Millisecond, ".000", "15:04:05.000", "2006-01-02 15:04:05.000"},
	{20 * time.Millisecond, 100 * time.Millisecond, 10 * time.Millisecond, 5 * time.Millisecond, ".000", "15:04:05.000", "2006-01-02 15:04:05.000"},
	{50 * time.Millisecond, 500 * time.Millisecond, 10 * time.Millisecond, 10 * time.Millisecond, ".000", "15:04:05.000", "2006-01-02 15:04:05.000"},
	{100 * time.Millisecond, time.Second, 50 * time.Millisecond, 10 * time.Millisecond, ".0", "15:04:05", "2006-01-02 15:04:05.0"},
	{200 * time.Millisecond, time.Second, 100 * time.Millisecond, 50 * time.Millisecond, ".0", "15:04:05", "2006-01-02 15:04:05.0"},
	{500 * time.Millisecond, 5 * time.Second, 100 * time.Millisecond, 100 * time.Millisecond, ".0", "15:04:05", "2006-01-02 15:04:05.0"},
	{time.Second, 10 * time.Second, 500 * time.Millisecond, 100 * time.Millisecond, ":05", "15:04:05", "2006-01-02 15:04:05"},
	{2 * time.Second, 10 * time.Second, time.Second, 500 * time.Millisecond, ":05", "15:04:05", "2006-01-02 15:04:05"},
	{5 * time.Second, 30 * time.Second, time.Second, time.Second, ":05", "15:04:05", "2006-01-02 15:04:05"},
	{10 * time.Second, time.Minute, 5 * time.Second, time.Second, ":05", "15:04", "2006-01-02 15:04:05"},
	{15 * time.Second, time.Minute, 5 * time.Second, 5 * time.Second, ":05", "15:04", "2006-01-02 15:04:05"},
	{30 * time.Second, 5 * time.Minute, 10 * time.Second, 5 * time.Second, ":05", "15:04", "2006-01-02 15:04:05"},
	{time.Minute, 10 * time.Minute, 30 * time.Second, 10 * time.Second, "15:04", "15:04", "2006-01-02 15:04"},
	{2 * time.Minute, 10 * time.Minute, time.Minute, 30 * time.Second, "15:04", "15:04", "2006-01-02 15:04"},
	{5 * time.Minute, 30 * time.Minute, time.Minute, time.Minute, "15:04", "15:04", "2006-01-02 15:04"},
	{10 * time.Minute, time.Hour, 5 * time.Minute, time.Minute, "15:04", "15:04", "2006-01-02 15:04"},
	{15 * time.Minute, time.Hour, 5 * time.Minute, 5 * time.Minute, "15:04", "15:04", "2006-01-02 15:04"},
	{30 * time.Minute, 3 * time.Hour, 10 * time.Minute, 5 * time.Minute, "15:04", "15:04", "2006-01-02 15:04"},
	{time.Hour, 6 * time.Hour, 30 * time.Minute, 10 * time.Minute, "15:04", "Jan 2", "2006-01-02 15:04"},
	{2 * time.Hour, 12 * time.Hour, time.Hour, 30 * time.Minute, "15:04", "Jan 2", "2006-01-02 15:04"},
	{3 * time.Hour, day, time.Hour, time.Hour, "15:04", "Jan 2", "2006-01-02 15:04"},
	{6 * time.Hour, day, 3 * time.Hour, time.Hour, "15:04", "Jan 2", "2006-01-02 15:04"},
	{12 * time.Hour, day, 6 * time.Hour, 3 * time.Hour, "15:04", "Jan 2", "2006-01-02 15:04"},
	{day, 7 * day, 12 * time.Hour, 6 * time.Hour, "Jan 2", "Jan 2 2006", "2006-01-02"},
	{2 * day, 7 * day, day, 12 * time.Hour, "Jan 2", "Jan 2 2006", "2006-01-02"},
	{7 * day, 28 * day, day, day, "Jan 2", "Jan 2 2006", "2006-01-02"},
}

// TimeCatalog returns arrangements from one millisecond to one week.
func TimeCatalog() (*axis.Catalog[time.Duration], error) {
	arrs := make([]axis.Arrangement[time.Duration], 0, len(timeSteps))
	for _, s := range timeSteps {
		var arr axis.Arrangement[time.Duration]
		arr.Name = s.label.String()
		arr.Levels[axis.LevelOuter].Format = s.outer
		arr.Levels[axis.LevelBigLabel] = axis.TickLevel[time.Duration]{Interval: s.big, Format: s.bigLayout}
		arr.Levels[axis.LevelLabel] = axis.TickLevel[time.Duration]{Interval: s.label, Format: s.layout}
		arr.Levels[axis.LevelBigTick].Interval = s.bigTick
		arr.Levels[axis.LevelTick].Interval = s.tick
		arrs = append(arrs, arr)
	}
	return axis.NewCatalog(Time{}.Units, arrs...)
}
