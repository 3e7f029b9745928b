package axis

import (
	"math"
	"slices"
)

// DefaultMinExtent is the smallest pixel extent on which an axis is valid.
const DefaultMinExtent = 20

// State is the readiness of an axis.
type State int

const (
	// StateUninitialized means no pixel extent was assigned yet.
	StateUninitialized State = iota
	// StateInvalid means the extent is too small or Value/Scale are not
	// representable.
	StateInvalid
	// StateValid means conversions and tick queries return results.
	StateValid
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInvalid:
		return "invalid"
	case StateValid:
		return "valid"
	default:
		return "unknown"
	}
}

// ResizePolicy selects what an extent change preserves.
type ResizePolicy int

const (
	// ResizeExtend keeps Scale and moves End.
	ResizeExtend ResizePolicy = iota
	// ResizeRescale keeps Value and recomputes Scale.
	ResizeRescale
)

// ScaleLimit bounds the scale. A zero side is unbounded.
type ScaleLimit struct {
	Min float64
	Max float64
}

// IsZero reports whether the limit is unbounded on both sides.
func (l ScaleLimit) IsZero() bool {
	return l.Min <= 0 && l.Max <= 0
}

// Clamp returns s limited to l.
func (l ScaleLimit) Clamp(s float64) float64 {
	if l.Min > 0 && s < l.Min {
		return l.Min
	}
	if l.Max > 0 && s > l.Max {
		return l.Max
	}
	return s
}

type options struct {
	minExtent  int
	policy     ResizePolicy
	target     float64
	roundShift bool
}

// Option configures an Axis.
type Option func(*options)

// WithMinExtent sets the minimum valid pixel extent.
func WithMinExtent(px int) Option {
	return func(o *options) {
		if px > 0 {
			o.minExtent = px
		}
	}
}

// WithResizePolicy sets the extent change policy.
func WithResizePolicy(p ResizePolicy) Option {
	return func(o *options) { o.policy = p }
}

// WithTargetSpacing sets the nominal pixel distance between labels. It is
// clamped to [MinTargetSpacing, MaxTargetSpacing].
func WithTargetSpacing(px float64) Option {
	return func(o *options) { o.target = clampTarget(px) }
}

// WithRoundShift makes shifts align Begin to one pixel's worth of units.
func WithRoundShift(on bool) Option {
	return func(o *options) { o.roundShift = on }
}

type listenerEntry[T any] struct {
	id int
	fn Listener[T]
}

// Axis holds the coordinate model of one axis: visible Value, Scale, their
// limits, the pixel extent, the selected arrangement and the tick list.
type Axis[T, S any] struct {
	dom     Domain[T, S]
	catalog *Catalog[S]
	opts    options

	value      Range[T]
	valueLimit Range[T]
	scale      float64
	scaleLimit ScaleLimit
	extent     int
	hasExtent  bool

	arrIndex     int
	ticks        []Tick[T]
	cache        positionCache[T]
	scaleVersion uint64

	listeners []listenerEntry[T]
	nextID    int
}

// New returns an axis over dom with arrangements from catalog. The visible
// value starts at dom.InitialValue.
func New[T, S any](dom Domain[T, S], catalog *Catalog[S], opts ...Option) (*Axis[T, S], error) {
	if catalog == nil || catalog.Len() == 0 {
		return nil, ErrEmptyCatalog
	}
	o := options{
		minExtent: DefaultMinExtent,
		policy:    ResizeExtend,
		target:    DefaultTargetSpacing,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Axis[T, S]{
		dom:      dom,
		catalog:  catalog,
		opts:     o,
		value:    dom.InitialValue(),
		arrIndex: -1,
	}, nil
}

// Domain returns the axis domain.
func (a *Axis[T, S]) Domain() Domain[T, S] {
	return a.dom
}

// Value returns the visible range.
func (a *Axis[T, S]) Value() Range[T] {
	return a.value
}

// ValueLimit returns the configured value bounds.
func (a *Axis[T, S]) ValueLimit() Range[T] {
	return a.valueLimit
}

// Scale returns the domain units per pixel.
func (a *Axis[T, S]) Scale() float64 {
	return a.scale
}

// ScaleLimit returns the configured scale bounds.
func (a *Axis[T, S]) ScaleLimit() ScaleLimit {
	return a.scaleLimit
}

// Extent returns the pixel extent.
func (a *Axis[T, S]) Extent() int {
	return a.extent
}

// State returns the readiness of the axis.
func (a *Axis[T, S]) State() State {
	if !a.hasExtent {
		return StateUninitialized
	}
	if a.extent < a.opts.minExtent || a.scale <= 0 {
		return StateInvalid
	}
	u, ok := rangeUnits(a.dom, a.value)
	if !ok || u <= 0 || math.IsNaN(u) || math.IsInf(u, 0) {
		return StateInvalid
	}
	return StateValid
}

// IsValid reports whether the axis is in StateValid.
func (a *Axis[T, S]) IsValid() bool {
	return a.State() == StateValid
}

// Arrangement returns the selected arrangement or nil if none was selected.
func (a *Axis[T, S]) Arrangement() *Arrangement[S] {
	if a.arrIndex < 0 || a.arrIndex >= a.catalog.Len() {
		return nil
	}
	return a.catalog.At(a.arrIndex)
}

// ArrangementIndex returns the catalog index of the selected arrangement or
// -1.
func (a *Axis[T, S]) ArrangementIndex() int {
	return a.arrIndex
}

// Ticks returns the last built tick list in ascending order.
func (a *Axis[T, S]) Ticks() []Tick[T] {
	return slices.Clone(a.ticks)
}

// Subscribe registers fn for changes made with the Notify directive. The
// returned func removes it.
func (a *Axis[T, S]) Subscribe(fn Listener[T]) func() {
	a.nextID++
	id := a.nextID
	a.listeners = append(a.listeners, listenerEntry[T]{id: id, fn: fn})
	return func() {
		a.listeners = slices.DeleteFunc(a.listeners, func(e listenerEntry[T]) bool {
			return e.id == id
		})
	}
}

// TickToPixelDistance returns the unrounded pixel distance of t from Begin.
func (a *Axis[T, S]) TickToPixelDistance(t T) (float64, bool) {
	if !a.IsValid() {
		return 0, false
	}
	u, ok := a.dom.Units(a.dom.Sub(t, a.value.Begin))
	if !ok {
		return 0, false
	}
	return u / a.scale, true
}

// PixelOf returns the rounded pixel position of t.
func (a *Axis[T, S]) PixelOf(t T) (int, bool) {
	d, ok := a.TickToPixelDistance(t)
	if !ok {
		return 0, false
	}
	return int(math.Round(d)), true
}

// PixelToTick converts a pixel distance from Begin into a tick.
func (a *Axis[T, S]) PixelToTick(px float64) (T, bool) {
	if !a.IsValid() {
		var zero T
		return zero, false
	}
	return offset(a.dom, a.value.Begin, px*a.scale), true
}

// PixelToTickRounded converts a pixel distance into a tick aligned to the
// interval of level in the selected arrangement. Absent levels leave the
// tick unrounded.
func (a *Axis[T, S]) PixelToTickRounded(px float64, level Level) (T, bool) {
	t, ok := a.PixelToTick(px)
	if !ok {
		return t, false
	}
	arr := a.Arrangement()
	if arr == nil || level < 0 || level >= levelCount {
		return t, true
	}
	interval := arr.Levels[level].Interval
	if u, ok := a.dom.Units(interval); ok && u > 0 {
		t = a.dom.Round(t, interval, RoundNearest)
	}
	return t, true
}

// SetExtent assigns the pixel extent and applies the resize policy.
func (a *Axis[T, S]) SetExtent(px int, d Directives) Change[T] {
	if px < 0 {
		px = 0
	}
	if a.hasExtent && px == a.extent {
		return a.noChange(d)
	}
	old := a.snapshot()
	a.extent = px
	a.hasExtent = true

	if a.opts.policy == ResizeExtend && a.scale > 0 && a.value.HasBegin && px > 0 {
		want := a.scale * float64(px)
		a.value = a.clampValue(a.dom.Value(a.value.Begin, offset(a.dom, a.value.Begin, want)))
		if u, ok := rangeUnits(a.dom, a.value); ok && d.RecomputeScale && !sameScale(u, want) {
			a.setScale(a.scaleLimit.Clamp(u / float64(px)))
		}
	} else if d.RecomputeScale {
		a.rescale()
	}
	return a.finish(old, d, true)
}

// SetValue sets the visible range, clamped to the value limit. A value with
// only Begin keeps the current scale and extent.
func (a *Axis[T, S]) SetValue(v Range[T], d Directives) Change[T] {
	if v.HasBegin && !v.HasEnd && a.scale > 0 && a.extent > 0 {
		v = a.dom.Value(v.Begin, offset(a.dom, v.Begin, a.scale*float64(a.extent)))
	}
	return a.applyValue(v, d)
}

// SetScale sets the scale, keeping pivot (or the midpoint when nil) at the
// same relative position.
func (a *Axis[T, S]) SetScale(scale float64, pivot *T, d Directives) Change[T] {
	scale = a.scaleLimit.Clamp(scale)
	if scale <= 0 || scale == a.scale {
		return a.noChange(d)
	}
	old := a.snapshot()
	a.applyScale(scale, pivot, d)
	return a.finish(old, d, false)
}

// SetValueLimit sets the value bounds and re-clamps the current value. The
// limit is stored even when the returned Change reports no change because
// the current value already fits.
func (a *Axis[T, S]) SetValueLimit(limit Range[T], d Directives) Change[T] {
	if equalRange(a.dom, limit, a.valueLimit) {
		return a.noChange(d)
	}
	old := a.snapshot()
	a.valueLimit = limit
	v := a.clampValue(a.value)
	if equalRange(a.dom, v, a.value) {
		return a.noChange(d)
	}
	a.value = v
	if d.RecomputeScale {
		a.rescale()
	}
	return a.finish(old, d, false)
}

// SetScaleLimit sets the scale bounds and re-clamps the current scale
// around the midpoint. The limit is stored even when the returned Change
// reports no change because the current scale already fits.
func (a *Axis[T, S]) SetScaleLimit(limit ScaleLimit, d Directives) Change[T] {
	if limit.Min > 0 && limit.Max > 0 && limit.Min > limit.Max {
		limit.Min, limit.Max = limit.Max, limit.Min
	}
	if limit == a.scaleLimit {
		return a.noChange(d)
	}
	a.scaleLimit = limit
	if a.scale <= 0 {
		return a.noChange(d)
	}
	s := limit.Clamp(a.scale)
	if s == a.scale {
		return a.noChange(d)
	}
	old := a.snapshot()
	a.applyScale(s, nil, d)
	return a.finish(old, d, false)
}

// Rebuild reselects the arrangement and rebuilds the tick list without
// changing Value or Scale.
func (a *Axis[T, S]) Rebuild() {
	a.selectArrangement()
	a.rebuildTicks()
}

// InvalidatePositions drops the pixel reuse cache so that the next rebuild
// rounds every tick independently.
func (a *Axis[T, S]) InvalidatePositions() {
	a.cache.reset()
}

func (a *Axis[T, S]) applyValue(v Range[T], d Directives) Change[T] {
	v = a.clampValue(v)
	if equalRange(a.dom, v, a.value) {
		return a.noChange(d)
	}
	old := a.snapshot()
	a.value = v
	if d.RecomputeScale {
		a.rescale()
	}
	return a.finish(old, d, false)
}

// applyScale places a range of scale*extent around pivot and clamps it once.
func (a *Axis[T, S]) applyScale(scale float64, pivot *T, d Directives) {
	u, ok := rangeUnits(a.dom, a.value)
	if !ok || a.extent <= 0 {
		a.setScale(scale)
		return
	}
	p := offset(a.dom, a.value.Begin, u/2)
	if pivot != nil {
		p = *pivot
	}
	want := scale * float64(a.extent)
	a.value = a.clampValue(a.place(p, u, want))
	if got, ok := rangeUnits(a.dom, a.value); ok && d.RecomputeScale && !sameScale(got, want) {
		scale = a.scaleLimit.Clamp(got / float64(a.extent))
	}
	a.setScale(scale)
}

// place returns a range of size units that keeps p at the relative position
// it had in a range of size from Begin.
func (a *Axis[T, S]) place(p T, from, size float64) Range[T] {
	f := 0.5
	if from > 0 {
		if pu, ok := a.dom.Units(a.dom.Sub(p, a.value.Begin)); ok {
			f = pu / from
		}
	}
	begin := offset(a.dom, p, -f*size)
	return a.dom.Value(begin, offset(a.dom, begin, size))
}

// rescale derives Scale from Value and Extent. If the scale limit changes
// the result, Value is recomputed around its midpoint and clamped once.
func (a *Axis[T, S]) rescale() {
	u, ok := rangeUnits(a.dom, a.value)
	if !ok || u <= 0 || a.extent <= 0 {
		return
	}
	s := u / float64(a.extent)
	cs := a.scaleLimit.Clamp(s)
	if cs != s {
		mid := offset(a.dom, a.value.Begin, u/2)
		want := cs * float64(a.extent)
		begin := offset(a.dom, mid, -want/2)
		a.value = a.clampValue(a.dom.Value(begin, offset(a.dom, begin, want)))
	}
	a.setScale(cs)
}

func (a *Axis[T, S]) setScale(s float64) {
	if sameScale(s, a.scale) {
		return
	}
	a.scale = s
	a.scaleVersion++
}

// clampValue fits v into the value limit, shifting it when it fits and
// shrinking it to the limit when it does not.
func (a *Axis[T, S]) clampValue(v Range[T]) Range[T] {
	lim := a.valueLimit
	if !v.IsFilled() || lim.IsEmpty() {
		return v
	}
	u, ok := rangeUnits(a.dom, v)
	if !ok {
		return v
	}
	if lim.IsFilled() {
		if lu, ok := rangeUnits(a.dom, lim); ok && u > lu {
			return a.dom.Value(lim.Begin, lim.End)
		}
	}
	if lim.HasBegin && a.dom.Compare(v.Begin, lim.Begin) < 0 {
		v = a.dom.Value(lim.Begin, offset(a.dom, lim.Begin, u))
	}
	if lim.HasEnd && a.dom.Compare(v.End, lim.End) > 0 {
		v = a.dom.Value(offset(a.dom, lim.End, -u), lim.End)
	}
	return v
}

func (a *Axis[T, S]) selectArrangement() {
	if a.scale <= 0 {
		return
	}
	idx, err := a.catalog.Select(a.scale, a.opts.target)
	if err != nil {
		return
	}
	a.arrIndex = idx
}

type axisSnapshot[T any] struct {
	value Range[T]
	scale float64
}

func (a *Axis[T, S]) snapshot() axisSnapshot[T] {
	return axisSnapshot[T]{value: a.value, scale: a.scale}
}

// finish runs the downstream steps of a mutation. force reports a change
// that is not visible in Value or Scale, such as a new extent.
func (a *Axis[T, S]) finish(old axisSnapshot[T], d Directives, force bool) Change[T] {
	changed := force || a.scale != old.scale || !equalRange(a.dom, a.value, old.value)
	if !changed {
		return a.noChange(d)
	}
	if d.RecomputeArrangement {
		a.selectArrangement()
	}
	if d.RebuildTicks {
		a.rebuildTicks()
	}
	ch := Change[T]{
		OldValue:  old.value,
		NewValue:  a.value,
		OldScale:  old.scale,
		NewScale:  a.scale,
		Source:    d.Source,
		Changed:   true,
		Redraw:    d.Redraw,
		SyncPeers: d.SyncPeers,
	}
	if d.Notify {
		for _, l := range slices.Clone(a.listeners) {
			l.fn(ch)
		}
	}
	return ch
}

func (a *Axis[T, S]) noChange(d Directives) Change[T] {
	return Change[T]{
		OldValue: a.value,
		NewValue: a.value,
		OldScale: a.scale,
		NewScale: a.scale,
		Source:   d.Source,
	}
}

// sameScale treats scales within float rounding noise as equal.
func sameScale(a, b float64) bool {
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	return diff <= 1e-12*math.Max(math.Abs(a), math.Abs(b))
}
