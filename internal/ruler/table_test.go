package ruler

import (
	"strconv"
	"testing"
)

func TestTickTableAlignsColumns(t *testing.T) {
	lines := TickTable(sampleTicks(), func(v float64) string {
		return strconv.FormatFloat(v, 'f', -1, 64)
	})
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}
	if lines[0] != "Level Value Pixel Text" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "outer 0         0 0" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "tick  2        16" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
	if lines[4] != "outer 10       80 10" {
		t.Fatalf("unexpected row line: %q", lines[4])
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if lines := FormatTable(nil, nil, nil); lines != nil {
		t.Fatalf("expected nil, got %v", lines)
	}
}
