// Package model defines shared data structures.
package model

import "time"

// Config defines axis settings resolved from flags and the config file.
type Config struct {
	Domain        string
	Begin         string
	End           string
	MinExtent     int
	TargetSpacing float64
	ResizePolicy  string
	RoundShift    bool
	CellWidth     int
	LimitBegin    string
	LimitEnd      string
	MinScale      float64
	MaxScale      float64
}

// SegmentRecord is a stored segment. Begin and End are kept in the text
// form of their domain.
type SegmentRecord struct {
	ID        int64
	Domain    string
	Begin     string
	End       string
	Color     string
	Tooltip   string
	BandFrom  *float64
	BandTo    *float64
	CreatedAt time.Time
}

// SavedView is a named visible range of one domain.
type SavedView struct {
	Name      string
	Domain    string
	Begin     string
	End       string
	UpdatedAt time.Time
}
