package axis

import (
	"math"
	"sort"
)

// MaxTicks caps the number of ticks generated by one rebuild.
const MaxTicks = 1000

type cachedPixel[T any] struct {
	value T
	pixel int
}

// positionCache remembers the pixels of the previous build. It is valid only
// for the scale version it was built with.
type positionCache[T any] struct {
	valid    bool
	version  uint64
	arrIndex int
	scale    float64
	value    Range[T]
	entries  []cachedPixel[T]
}

func (c *positionCache[T]) reset() {
	*c = positionCache[T]{}
}

func (c *positionCache[T]) lookup(cmp func(a, b T) int, v T) (int, bool) {
	i := sort.Search(len(c.entries), func(i int) bool {
		return cmp(c.entries[i].value, v) >= 0
	})
	if i < len(c.entries) && cmp(c.entries[i].value, v) == 0 {
		return c.entries[i].pixel, true
	}
	return 0, false
}

// CacheVersion returns the scale version of the pixel reuse cache and
// whether the cache currently holds a build.
func (a *Axis[T, S]) CacheVersion() (uint64, bool) {
	return a.cache.version, a.cache.valid
}

// ScaleVersion returns a counter bumped on every scale change.
func (a *Axis[T, S]) ScaleVersion() uint64 {
	return a.scaleVersion
}

func (a *Axis[T, S]) rebuildTicks() {
	if !a.IsValid() || a.arrIndex < 0 {
		a.ticks = nil
		a.cache.reset()
		return
	}
	arr := a.catalog.At(a.arrIndex)
	ticks := a.collectTicks(arr)
	a.placeTicks(ticks)

	entries := make([]cachedPixel[T], 0, len(ticks))
	for _, t := range ticks {
		if t.Level == LevelOuter {
			continue
		}
		entries = append(entries, cachedPixel[T]{value: t.Value, pixel: t.Pixel})
	}
	a.cache = positionCache[T]{
		valid:    true,
		version:  a.scaleVersion,
		arrIndex: a.arrIndex,
		scale:    a.scale,
		value:    a.value,
		entries:  entries,
	}
	a.ticks = ticks
}

// collectTicks generates the logical ticks of arr inside Value, coarse levels
// first, and returns them sorted with duplicates resolved toward the
// coarser level.
func (a *Axis[T, S]) collectTicks(arr *Arrangement[S]) []Tick[T] {
	dom := a.dom
	v := a.value
	outerHint := arr.Levels[LevelOuter].Format
	ticks := []Tick[T]{
		a.newTick(LevelOuter, v.Begin, outerHint, AlignBegin),
		a.newTick(LevelOuter, v.End, outerHint, AlignEnd),
	}

	for lvl := LevelBigLabel; lvl < levelCount && len(ticks) < MaxTicks; lvl++ {
		tl := arr.Levels[lvl]
		if u, ok := dom.Units(tl.Interval); !ok || u <= 0 {
			continue
		}
		cur := dom.Round(v.Begin, tl.Interval, RoundCeiling)
		var prev T
		hasPrev := false
		for len(ticks) < MaxTicks && inside(dom, v, cur) {
			if hasPrev && dom.Compare(cur, prev) <= 0 {
				break
			}
			ticks = append(ticks, a.newTick(lvl, cur, tl.Format, AlignCenter))
			prev, hasPrev = cur, true
			cur = dom.Round(dom.Add(cur, tl.Interval), tl.Interval, RoundNearest)
		}
	}

	sort.SliceStable(ticks, func(i, j int) bool {
		c := dom.Compare(ticks[i].Value, ticks[j].Value)
		if c != 0 {
			return c < 0
		}
		return ticks[i].Level < ticks[j].Level
	})
	out := ticks[:0]
	for _, t := range ticks {
		if len(out) > 0 && dom.Compare(out[len(out)-1].Value, t.Value) == 0 {
			continue
		}
		out = append(out, t)
	}
	suppressOuterText(out)
	return out
}

func (a *Axis[T, S]) newTick(lvl Level, v T, hint string, align Align) Tick[T] {
	t := Tick[T]{
		Level:  lvl,
		Value:  v,
		Length: lvl.LengthRatio(),
		Align:  align,
	}
	if lvl.HasText() {
		t.Text = a.dom.Format(v, lvl, hint)
	}
	return t
}

// suppressOuterText blanks an outer label that repeats the text of the
// closest big label.
func suppressOuterText[T any](ticks []Tick[T]) {
	first, last := -1, -1
	for i, t := range ticks {
		if t.Level == LevelBigLabel {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return
	}
	for i := range ticks {
		t := &ticks[i]
		if t.Level != LevelOuter {
			continue
		}
		near := first
		if t.Align == AlignEnd {
			near = last
		}
		if t.Text == ticks[near].Text {
			t.Text = ""
		}
	}
}

// placeTicks assigns pixels. Ticks known to the cache of the same scale
// version move by one shared integer offset, taken from the first of them;
// the rest are rounded independently. Outer ticks stay on the edges.
func (a *Axis[T, S]) placeTicks(ticks []Tick[T]) {
	useCache := a.cache.valid && a.cache.version == a.scaleVersion
	shift, hasShift := 0, false
	for i := range ticks {
		t := &ticks[i]
		fresh := a.freshPixel(t.Value)
		if t.Level == LevelOuter || !useCache {
			t.Pixel = fresh
			continue
		}
		cached, ok := a.cache.lookup(a.dom.Compare, t.Value)
		if !ok {
			t.Pixel = fresh
			continue
		}
		if !hasShift {
			shift, hasShift = fresh-cached, true
		}
		t.Pixel = cached + shift
	}
}

func (a *Axis[T, S]) freshPixel(v T) int {
	d, ok := a.TickToPixelDistance(v)
	if !ok {
		return 0
	}
	return int(math.Round(d))
}
