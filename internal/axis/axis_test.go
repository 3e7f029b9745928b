package axis

import (
	"cmp"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type numDomain struct {
	initial Range[float64]
}

func (numDomain) Units(s float64) (float64, bool) {
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return 0, false
	}
	return s, true
}

func (numDomain) Size(u float64) float64   { return u }
func (numDomain) Add(t, s float64) float64 { return t + s }
func (numDomain) Sub(a, b float64) float64 { return a - b }
func (numDomain) Compare(a, b float64) int { return cmp.Compare(a, b) }
func (numDomain) Value(b, e float64) Range[float64] {
	return Span(b, e)
}

func (d numDomain) InitialValue() Range[float64] { return d.initial }

func (numDomain) Round(t, interval float64, mode RoundMode) float64 {
	if mode == RoundCeiling {
		return math.Ceil(t/interval) * interval
	}
	return math.Round(t/interval) * interval
}

func (numDomain) Format(t float64, _ Level, hint string) string {
	if hint == "const" {
		return "X"
	}
	return strconv.FormatFloat(t, 'f', -1, 64)
}

func arrangement(label, bigLabel, bigTick, tick float64) Arrangement[float64] {
	var a Arrangement[float64]
	a.Name = strconv.FormatFloat(label, 'f', -1, 64)
	a.Levels[LevelBigLabel].Interval = bigLabel
	a.Levels[LevelLabel].Interval = label
	a.Levels[LevelBigTick].Interval = bigTick
	a.Levels[LevelTick].Interval = tick
	return a
}

func testCatalog(t *testing.T) *Catalog[float64] {
	t.Helper()
	cat, err := NewCatalog(numDomain{}.Units,
		arrangement(100, 500, 50, 10),
		arrangement(1, 5, 0.5, 0.1),
		arrangement(20, 100, 10, 5),
		arrangement(2, 10, 1, 0.5),
		arrangement(50, 100, 10, 5),
		arrangement(5, 10, 1, 1),
		arrangement(10, 50, 5, 1),
	)
	require.NoError(t, err)
	return cat
}

func newTestAxis(t *testing.T, extent int, opts ...Option) *Axis[float64, float64] {
	t.Helper()
	a, err := New[float64, float64](numDomain{initial: Span(0.0, 100.0)}, testCatalog(t), opts...)
	require.NoError(t, err)
	a.SetExtent(extent, All(SourceResize))
	return a
}

func TestNewRequiresArrangements(t *testing.T) {
	cat, err := NewCatalog(numDomain{}.Units)
	require.NoError(t, err)
	_, err = New[float64, float64](numDomain{}, cat)
	assert.ErrorIs(t, err, ErrEmptyCatalog)
	_, err = New[float64, float64](numDomain{}, nil)
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestStateMachine(t *testing.T) {
	a, err := New[float64, float64](numDomain{initial: Span(0.0, 100.0)}, testCatalog(t))
	require.NoError(t, err)
	assert.Equal(t, StateUninitialized, a.State())
	_, ok := a.TickToPixelDistance(50)
	assert.False(t, ok)

	a.SetExtent(10, All(SourceResize))
	assert.Equal(t, StateInvalid, a.State())
	assert.Empty(t, a.Ticks())
	_, ok = a.PixelToTick(5)
	assert.False(t, ok)

	a.SetExtent(100, All(SourceResize))
	assert.Equal(t, StateValid, a.State())
	assert.NotEmpty(t, a.Ticks())

	a.SetValue(Span(10.0, 10.0), All(SourceAPI))
	assert.Equal(t, StateInvalid, a.State())
}

func TestInitialExtentDerivesScale(t *testing.T) {
	a := newTestAxis(t, 200)
	assert.InDelta(t, 0.5, a.Scale(), 1e-12)
	assert.Equal(t, Span(0.0, 100.0), a.Value())
}

func TestResizeExtendKeepsScale(t *testing.T) {
	a := newTestAxis(t, 100)
	ch := a.SetExtent(200, All(SourceResize))
	assert.True(t, ch.Changed)
	assert.Equal(t, 1.0, a.Scale())
	assert.Equal(t, Span(0.0, 200.0), a.Value())
}

func TestResizeRescaleKeepsValue(t *testing.T) {
	a := newTestAxis(t, 100, WithResizePolicy(ResizeRescale))
	a.SetExtent(200, All(SourceResize))
	assert.InDelta(t, 0.5, a.Scale(), 1e-12)
	assert.Equal(t, Span(0.0, 100.0), a.Value())
}

func TestRoundTripPixelConversion(t *testing.T) {
	for _, extent := range []int{37, 100, 640, 1920} {
		a := newTestAxis(t, extent)
		units := a.Scale() * float64(extent)
		assert.InDelta(t, 100.0, units, 1e-9)
		for _, tick := range []float64{0, 0.5, 13, 50, 99.9, 100} {
			d, ok := a.TickToPixelDistance(tick)
			require.True(t, ok)
			back, ok := a.PixelToTick(d)
			require.True(t, ok)
			assert.InDelta(t, tick, back, a.Scale())
		}
	}
}

func TestPixelToTickRounded(t *testing.T) {
	a := newTestAxis(t, 100)
	v, ok := a.PixelToTickRounded(47, LevelLabel)
	require.True(t, ok)
	assert.Equal(t, 0.0, math.Mod(v, a.Arrangement().Level(LevelLabel).Interval))
}

func TestSetValueIdempotent(t *testing.T) {
	a := newTestAxis(t, 100)
	calls := 0
	a.Subscribe(func(Change[float64]) { calls++ })

	first := a.SetValue(Span(10.0, 60.0), All(SourceAPI))
	second := a.SetValue(Span(10.0, 60.0), All(SourceAPI))
	assert.True(t, first.Changed)
	assert.False(t, second.Changed)
	assert.Equal(t, 1, calls)
}

func TestUnsubscribe(t *testing.T) {
	a := newTestAxis(t, 100)
	calls := 0
	stop := a.Subscribe(func(Change[float64]) { calls++ })
	a.ShiftByRatio(0.1, All(SourceAPI))
	stop()
	a.ShiftByRatio(0.1, All(SourceAPI))
	assert.Equal(t, 1, calls)
}

func TestNotifyDirective(t *testing.T) {
	a := newTestAxis(t, 100)
	calls := 0
	a.Subscribe(func(Change[float64]) { calls++ })
	ch := a.SetValue(Span(5.0, 50.0), All(SourceAPI).Quiet())
	assert.True(t, ch.Changed)
	assert.False(t, ch.SyncPeers)
	assert.Zero(t, calls)
}

func TestRebuildDirectiveSkipsTicks(t *testing.T) {
	a := newTestAxis(t, 100)
	before := a.Ticks()
	d := All(SourceAPI)
	d.RebuildTicks = false
	a.SetValue(Span(3.0, 103.0), d)
	assert.Equal(t, before, a.Ticks())
	a.Rebuild()
	assert.NotEqual(t, before, a.Ticks())
}

func TestValueLimitClamp(t *testing.T) {
	a := newTestAxis(t, 100)
	a.SetValueLimit(Span(0.0, 80.0), All(SourceLimit))
	assert.Equal(t, Span(0.0, 80.0), a.Value())

	a.SetValue(Span(20.0, 150.0), All(SourceAPI))
	assert.Equal(t, Span(0.0, 80.0), a.Value())

	a.SetValue(Span(60.0, 100.0), All(SourceAPI))
	assert.Equal(t, Span(40.0, 80.0), a.Value())

	a.SetValue(Span(-30.0, 10.0), All(SourceAPI))
	assert.Equal(t, Span(0.0, 40.0), a.Value())
}

func TestValueLimitStoredWhenValueFits(t *testing.T) {
	a := newTestAxis(t, 100)
	ch := a.SetValueLimit(Span(-10.0, 200.0), All(SourceLimit))
	assert.False(t, ch.Changed)
	assert.Equal(t, Span(-10.0, 200.0), a.ValueLimit())
	a.SetValue(Span(150.0, 250.0), All(SourceAPI))
	assert.Equal(t, Span(100.0, 200.0), a.Value())
}

func TestValueLimitOneSided(t *testing.T) {
	a := newTestAxis(t, 100)
	a.SetValueLimit(From(10.0), All(SourceLimit))
	assert.Equal(t, Span(10.0, 110.0), a.Value())
}

func TestScaleLimitRecentersValue(t *testing.T) {
	a := newTestAxis(t, 100)
	ch := a.SetScaleLimit(ScaleLimit{Min: 2}, All(SourceLimit))
	assert.True(t, ch.Changed)
	assert.Equal(t, 2.0, a.Scale())
	assert.Equal(t, Span(-50.0, 150.0), a.Value())

	a.SetValue(Span(0.0, 10.0), All(SourceAPI))
	assert.Equal(t, 2.0, a.Scale())
	assert.Equal(t, Span(-95.0, 105.0), a.Value())
}

func TestSetScaleAroundPivot(t *testing.T) {
	a := newTestAxis(t, 100)
	pivot := 25.0
	ch := a.SetScale(0.5, &pivot, All(SourceAPI))
	assert.True(t, ch.Changed)
	assert.Equal(t, 1.0, ch.OldScale)
	assert.Equal(t, 0.5, ch.NewScale)
	assert.Equal(t, Span(12.5, 62.5), a.Value())

	assert.False(t, a.SetScale(0.5, nil, All(SourceAPI)).Changed)
	assert.False(t, a.SetScale(0, nil, All(SourceAPI)).Changed)
}

func TestPartialValueKeepsScale(t *testing.T) {
	a := newTestAxis(t, 100)
	a.SetValue(From(40.0), All(SourceAPI))
	assert.Equal(t, Span(40.0, 140.0), a.Value())
}

func TestCacheInvalidatedOnScaleChange(t *testing.T) {
	a := newTestAxis(t, 100)
	v0, ok := a.CacheVersion()
	require.True(t, ok)
	assert.Equal(t, a.ScaleVersion(), v0)

	a.ShiftByRatio(0.01, All(SourceGesture))
	v1, _ := a.CacheVersion()
	assert.Equal(t, v0, v1)

	a.ZoomByRatio(0.5, 50, All(SourceGesture))
	v2, _ := a.CacheVersion()
	assert.NotEqual(t, v1, v2)

	a.InvalidatePositions()
	_, ok = a.CacheVersion()
	assert.False(t, ok)
}
