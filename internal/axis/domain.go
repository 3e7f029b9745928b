// Package axis maps a one-dimensional logical domain onto a pixel line and
// builds the tick marks, pan and zoom results for it.
//
// The package is domain-agnostic: a concrete axis type supplies a Domain
// implementation for its tick (point) and size (difference) types. All
// operations are synchronous and the package performs no locking; an Axis is
// owned by a single goroutine.
package axis

// RoundMode selects how a tick is aligned to an interval.
type RoundMode int

const (
	// RoundCeiling aligns to the smallest multiple not before the tick.
	RoundCeiling RoundMode = iota
	// RoundNearest aligns to the closest multiple.
	RoundNearest
)

// Domain supplies the numeric operations of a concrete axis type. T is a
// point in the logical domain, S is the difference between two points.
type Domain[T, S any] interface {
	// Units converts a size into a dimensionless count. ok is false when the
	// size cannot be represented.
	Units(size S) (units float64, ok bool)
	// Size is the inverse of Units. Negative units give a negative size.
	Size(units float64) S
	Add(t T, size S) T
	// Sub returns a - b.
	Sub(a, b T) S
	Compare(a, b T) int
	Round(t T, interval S, mode RoundMode) T
	Value(begin, end T) Range[T]
	InitialValue() Range[T]
	// Format converts a tick into label text. hint comes from the
	// arrangement's tick level and may be empty.
	Format(t T, level Level, hint string) string
}

// Range is a span of the logical domain. A zero Range is empty; a Range with
// only HasBegin set is partially filled.
type Range[T any] struct {
	Begin    T
	End      T
	HasBegin bool
	HasEnd   bool
}

// Span returns a filled range.
func Span[T any](begin, end T) Range[T] {
	return Range[T]{Begin: begin, End: end, HasBegin: true, HasEnd: true}
}

// From returns a range with only the begin set.
func From[T any](begin T) Range[T] {
	return Range[T]{Begin: begin, HasBegin: true}
}

// IsEmpty reports whether neither bound is set.
func (r Range[T]) IsEmpty() bool {
	return !r.HasBegin && !r.HasEnd
}

// IsFilled reports whether both bounds are set.
func (r Range[T]) IsFilled() bool {
	return r.HasBegin && r.HasEnd
}

func equalRange[T, S any](dom Domain[T, S], a, b Range[T]) bool {
	if a.HasBegin != b.HasBegin || a.HasEnd != b.HasEnd {
		return false
	}
	if a.HasBegin && dom.Compare(a.Begin, b.Begin) != 0 {
		return false
	}
	if a.HasEnd && dom.Compare(a.End, b.End) != 0 {
		return false
	}
	return true
}

func rangeUnits[T, S any](dom Domain[T, S], r Range[T]) (float64, bool) {
	if !r.IsFilled() {
		return 0, false
	}
	return dom.Units(dom.Sub(r.End, r.Begin))
}

func inside[T, S any](dom Domain[T, S], r Range[T], t T) bool {
	return dom.Compare(t, r.Begin) >= 0 && dom.Compare(t, r.End) <= 0
}

// offset moves t by a signed unit count.
func offset[T, S any](dom Domain[T, S], t T, units float64) T {
	return dom.Add(t, dom.Size(units))
}
