package axis

import "math"

// ShiftByRatio moves Value by r times its size. Size is unchanged unless the
// value limit forces it.
func (a *Axis[T, S]) ShiftByRatio(r float64, d Directives) Change[T] {
	u, ok := rangeUnits(a.dom, a.value)
	if !ok {
		return a.noChange(d)
	}
	return a.shift(u*r, d)
}

// ShiftBy moves Value by amount.
func (a *Axis[T, S]) ShiftBy(amount S, d Directives) Change[T] {
	u, ok := a.dom.Units(amount)
	if !ok {
		return a.noChange(d)
	}
	return a.shift(u, d)
}

func (a *Axis[T, S]) shift(delta float64, d Directives) Change[T] {
	u, ok := rangeUnits(a.dom, a.value)
	if !ok || delta == 0 {
		return a.noChange(d)
	}
	begin := offset(a.dom, a.value.Begin, delta)
	if a.opts.roundShift && a.scale > 0 {
		begin = a.dom.Round(begin, a.dom.Size(a.scale), RoundNearest)
	}
	return a.applyValue(a.dom.Value(begin, offset(a.dom, begin, u)), d)
}

// ZoomByRatio scales the visible span by z around pivot. z > 1 zooms out,
// z < 1 zooms in. The pivot keeps its relative position. A zoom whose span
// the domain cannot represent is ignored.
func (a *Axis[T, S]) ZoomByRatio(z float64, pivot T, d Directives) Change[T] {
	u, ok := rangeUnits(a.dom, a.value)
	if !ok || u <= 0 || z <= 0 {
		return a.noChange(d)
	}
	nu := u * z
	if math.IsInf(nu, 0) || math.IsNaN(nu) {
		return a.noChange(d)
	}
	v := a.clampValue(a.place(pivot, u, nu))
	vu, ok := rangeUnits(a.dom, v)
	if !ok || vu <= 0 {
		return a.noChange(d)
	}
	if a.extent > 0 {
		s := vu / float64(a.extent)
		if cs := a.scaleLimit.Clamp(s); !sameScale(cs, s) {
			v = a.place(pivot, u, cs*float64(a.extent))
			if vu, ok := rangeUnits(a.dom, v); !ok || vu <= 0 {
				return a.noChange(d)
			}
		}
	}
	return a.applyValue(v, d)
}

// ZoomTo sets an absolute scale around pivot, or the midpoint when nil.
func (a *Axis[T, S]) ZoomTo(scale float64, pivot *T, d Directives) Change[T] {
	return a.SetScale(scale, pivot, d)
}

// Gesture remembers the value an interactive pan or zoom started from.
type Gesture[T, S any] struct {
	axis   *Axis[T, S]
	start  Range[T]
	active bool
}

// BeginGesture snapshots the current value.
func (a *Axis[T, S]) BeginGesture() *Gesture[T, S] {
	return &Gesture[T, S]{axis: a, start: a.value, active: true}
}

// Start returns the value the gesture started from.
func (g *Gesture[T, S]) Start() Range[T] {
	return g.start
}

// Active reports whether the gesture was neither cancelled nor committed.
func (g *Gesture[T, S]) Active() bool {
	return g.active
}

// Cancel restores the starting value with a single SetValue.
func (g *Gesture[T, S]) Cancel(d Directives) Change[T] {
	if !g.active {
		return g.axis.noChange(d)
	}
	g.active = false
	return g.axis.SetValue(g.start, d)
}

// Commit ends the gesture keeping the current value.
func (g *Gesture[T, S]) Commit() {
	g.active = false
}
