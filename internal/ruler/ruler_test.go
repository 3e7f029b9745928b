package ruler

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/axisview/internal/axis"
)

func sampleTicks() []axis.Tick[float64] {
	return []axis.Tick[float64]{
		{Level: axis.LevelOuter, Value: 0, Pixel: 0, Text: "0", Align: axis.AlignBegin},
		{Level: axis.LevelTick, Value: 2, Pixel: 16},
		{Level: axis.LevelLabel, Value: 5, Pixel: 40, Text: "5"},
		{Level: axis.LevelOuter, Value: 10, Pixel: 80, Text: "10", Align: axis.AlignEnd},
	}
}

func TestCellOf(t *testing.T) {
	cases := []struct {
		px, cw, want int
	}{
		{0, 8, 0},
		{15, 8, 1},
		{16, 8, 2},
		{-1, 8, -1},
		{-9, 8, -2},
		{17, 0, 2},
	}
	for _, tc := range cases {
		if got := CellOf(tc.px, tc.cw); got != tc.want {
			t.Fatalf("CellOf(%d, %d) = %d, want %d", tc.px, tc.cw, got, tc.want)
		}
	}
}

func TestRenderRows(t *testing.T) {
	rows := Render(sampleTicks(), nil, Options{Width: 10, CellWidth: 8})
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0] != strings.Repeat(" ", 10) {
		t.Fatalf("unexpected band row: %q", rows[0])
	}
	if rows[1] != "┃ ·  │   ┃" {
		t.Fatalf("unexpected marks row: %q", rows[1])
	}
	if rows[2] != "0    5  10" {
		t.Fatalf("unexpected label row: %q", rows[2])
	}
	for i, row := range rows {
		if w := runewidth.StringWidth(row); w != 10 {
			t.Fatalf("row %d has width %d", i, w)
		}
	}
}

func TestRenderSkipsCollidingLabels(t *testing.T) {
	ticks := []axis.Tick[float64]{
		{Level: axis.LevelLabel, Pixel: 24, Text: "30"},
		{Level: axis.LevelLabel, Pixel: 40, Text: "50"},
		{Level: axis.LevelBigLabel, Pixel: 48, Text: "60"},
	}
	rows := Render(ticks, nil, Options{Width: 12, CellWidth: 8})
	if !strings.Contains(rows[2], "60") {
		t.Fatalf("expected big label to win: %q", rows[2])
	}
	if strings.Contains(rows[2], "50") {
		t.Fatalf("expected touching label to be skipped: %q", rows[2])
	}
	if !strings.Contains(rows[2], "30") {
		t.Fatalf("expected free label to be kept: %q", rows[2])
	}
}

func TestRenderBand(t *testing.T) {
	segs := []axis.MappedSegment[float64]{
		{X0: 8, X1: 24},
		{Segment: axis.Segment[float64]{Height: &axis.Band{From: 0, To: 0.5}}, X0: 64, X1: 65},
	}
	rows := Render(nil, segs, Options{Width: 10, CellWidth: 8})
	if rows[0] != " ██     ▄ " {
		t.Fatalf("unexpected band row: %q", rows[0])
	}
}

func TestRenderCursor(t *testing.T) {
	rows := Render(sampleTicks(), nil, Options{Width: 10, CellWidth: 8, Cursor: 3, ShowCursor: true})
	if rows[1] != "┃ ·▾ │   ┃" {
		t.Fatalf("unexpected marks row: %q", rows[1])
	}
}

func TestShouldUseColorNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if ShouldUseColor(&strings.Builder{}, true) {
		t.Fatalf("expected NO_COLOR to disable color")
	}
}

func TestShouldUseColorForce(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	if !ShouldUseColor(&strings.Builder{}, true) {
		t.Fatalf("expected force to enable color")
	}
	if ShouldUseColor(&strings.Builder{}, false) {
		t.Fatalf("expected non-file writer to disable color")
	}
}
