package axis

import (
	"fmt"
	"sort"
)

const (
	// DefaultTargetSpacing is the nominal pixel distance between labels.
	DefaultTargetSpacing = 65.0
	MinTargetSpacing     = 25.0
	MaxTargetSpacing     = 250.0
)

type catalogEntry[S any] struct {
	arr   *Arrangement[S]
	units float64
}

// Catalog holds arrangements ordered from finest to coarsest label interval.
type Catalog[S any] struct {
	units   func(S) (float64, bool)
	entries []catalogEntry[S]
}

// NewCatalog returns an empty catalog measuring intervals with units.
func NewCatalog[S any](units func(S) (float64, bool), arrs ...Arrangement[S]) (*Catalog[S], error) {
	c := &Catalog[S]{units: units}
	if err := c.Register(arrs...); err != nil {
		return nil, err
	}
	return c, nil
}

// Register adds arrangements and keeps the catalog sorted by label interval.
func (c *Catalog[S]) Register(arrs ...Arrangement[S]) error {
	for i := range arrs {
		arr := arrs[i]
		u, ok := c.units(arr.Levels[LevelLabel].Interval)
		if !ok || u <= 0 {
			return fmt.Errorf("%w: %q", ErrBadArrangement, arr.Name)
		}
		c.entries = append(c.entries, catalogEntry[S]{arr: &arr, units: u})
	}
	sort.SliceStable(c.entries, func(i, j int) bool {
		return c.entries[i].units < c.entries[j].units
	})
	return nil
}

// Len returns the number of registered arrangements.
func (c *Catalog[S]) Len() int {
	return len(c.entries)
}

// At returns the arrangement at index i in ascending order.
func (c *Catalog[S]) At(i int) *Arrangement[S] {
	return c.entries[i].arr
}

// Select returns the index of the finest arrangement whose label spacing at
// scale meets its selectivity-adjusted target. The coarsest arrangement is
// the fallback.
func (c *Catalog[S]) Select(scale, target float64) (int, error) {
	if len(c.entries) == 0 {
		return -1, ErrEmptyCatalog
	}
	if scale <= 0 {
		return len(c.entries) - 1, nil
	}
	target = clampTarget(target)
	for i, e := range c.entries {
		ratio := e.arr.Selectivity
		if ratio <= 0 {
			ratio = 1
		}
		if e.units/scale >= target*ratio {
			return i, nil
		}
	}
	return len(c.entries) - 1, nil
}

func clampTarget(target float64) float64 {
	if target <= 0 {
		return DefaultTargetSpacing
	}
	if target < MinTargetSpacing {
		return MinTargetSpacing
	}
	if target > MaxTargetSpacing {
		return MaxTargetSpacing
	}
	return target
}
