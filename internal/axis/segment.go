package axis

import "math"

// Band is a sub-range of the cross-axis height, as fractions in [0, 1].
type Band struct {
	From float64
	To   float64
}

// Segment is an auxiliary value range drawn along the axis.
type Segment[T any] struct {
	Range   Range[T]
	Color   string
	Tooltip string
	Height  *Band
}

// MappedSegment is a segment clipped to the visible pixels [X0, X1).
type MappedSegment[T any] struct {
	Segment[T]
	X0 int
	X1 int
}

// MapSegments maps segments onto the current pixel line. Segments outside
// the visible range or without both bounds are dropped.
func (a *Axis[T, S]) MapSegments(segs []Segment[T]) []MappedSegment[T] {
	if !a.IsValid() {
		return nil
	}
	out := make([]MappedSegment[T], 0, len(segs))
	limit := float64(a.extent)
	for _, s := range segs {
		if !s.Range.IsFilled() {
			continue
		}
		b, e := s.Range.Begin, s.Range.End
		if a.dom.Compare(b, e) > 0 {
			b, e = e, b
		}
		x0, ok0 := a.TickToPixelDistance(b)
		x1, ok1 := a.TickToPixelDistance(e)
		if !ok0 || !ok1 || x1 < 0 || x0 > limit {
			continue
		}
		x0 = math.Max(x0, 0)
		x1 = math.Min(x1, limit)
		m := MappedSegment[T]{Segment: s, X0: int(math.Floor(x0)), X1: int(math.Ceil(x1))}
		if m.X1 <= m.X0 {
			m.X1 = m.X0 + 1
		}
		if m.Height != nil {
			band := clampBand(*m.Height)
			m.Height = &band
		}
		out = append(out, m)
	}
	return out
}

// SegmentsAt returns the mapped segments covering pixel px.
func SegmentsAt[T any](mapped []MappedSegment[T], px int) []MappedSegment[T] {
	var out []MappedSegment[T]
	for _, m := range mapped {
		if px >= m.X0 && px < m.X1 {
			out = append(out, m)
		}
	}
	return out
}

func clampBand(b Band) Band {
	b.From = math.Min(math.Max(b.From, 0), 1)
	b.To = math.Min(math.Max(b.To, 0), 1)
	if b.From > b.To {
		b.From, b.To = b.To, b.From
	}
	return b
}
