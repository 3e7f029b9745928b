// Package ruler renders axis ticks and segments as terminal rows.
package ruler

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/axisview/internal/axis"
)

const (
	// DefaultCellWidth is the number of axis pixels drawn in one terminal
	// cell.
	DefaultCellWidth = 8
	minRulerWidth    = 10
)

// Options controls ruler rendering.
type Options struct {
	// Width in cells. Zero means the terminal width.
	Width int
	// CellWidth in pixels. Zero means DefaultCellWidth.
	CellWidth int
	Color     bool
	// Cursor is the highlighted cell when ShowCursor is set.
	Cursor     int
	ShowCursor bool
}

var (
	bigLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	tickStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
)

var levelGlyphs = [...]rune{
	axis.LevelOuter:    '┃',
	axis.LevelBigLabel: '┃',
	axis.LevelLabel:    '│',
	axis.LevelBigTick:  '╎',
	axis.LevelTick:     '·',
}

// Eighth blocks from low to full height.
var bandGlyphs = []rune("▁▂▃▄▅▆▇█")

// CellOf converts an axis pixel into a cell index.
func CellOf(px, cellWidth int) int {
	if cellWidth <= 0 {
		cellWidth = DefaultCellWidth
	}
	if px < 0 {
		return -((-px + cellWidth - 1) / cellWidth)
	}
	return px / cellWidth
}

// PixelsFor returns the pixel extent of width cells.
func PixelsFor(width, cellWidth int) int {
	if cellWidth <= 0 {
		cellWidth = DefaultCellWidth
	}
	return width * cellWidth
}

// Render returns the segment band, the tick marks and the label row.
func Render[T any](ticks []axis.Tick[T], segs []axis.MappedSegment[T], opts Options) []string {
	width := opts.Width
	if width <= 0 {
		width = TerminalWidth()
	}
	if width < minRulerWidth {
		width = minRulerWidth
	}
	cw := opts.CellWidth
	if cw <= 0 {
		cw = DefaultCellWidth
	}
	return []string{
		renderBand(segs, width, cw, opts.Color),
		renderMarks(ticks, width, cw, opts),
		renderLabels(ticks, width, cw, opts.Color),
	}
}

func renderBand[T any](segs []axis.MappedSegment[T], width, cw int, color bool) string {
	cells := make([]string, width)
	for i := range cells {
		cells[i] = " "
	}
	for _, s := range segs {
		from := clampCell(CellOf(s.X0, cw), width)
		to := clampCell(CellOf(s.X1-1, cw), width)
		glyph := string(bandGlyph(s.Height))
		if color && s.Color != "" {
			glyph = lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color)).Render(glyph)
		}
		for c := from; c <= to; c++ {
			cells[c] = glyph
		}
	}
	return strings.Join(cells, "")
}

func bandGlyph(b *axis.Band) rune {
	if b == nil {
		return bandGlyphs[len(bandGlyphs)-1]
	}
	h := b.To - b.From
	idx := int(math.Ceil(h*float64(len(bandGlyphs)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(bandGlyphs) {
		idx = len(bandGlyphs) - 1
	}
	return bandGlyphs[idx]
}

func renderMarks[T any](ticks []axis.Tick[T], width, cw int, opts Options) string {
	levels := make([]axis.Level, width)
	for i := range levels {
		levels[i] = -1
	}
	for _, tick := range ticks {
		c := tickCell(tick, width, cw)
		if c < 0 || c >= width {
			continue
		}
		if levels[c] < 0 || tick.Level < levels[c] {
			levels[c] = tick.Level
		}
	}
	var b strings.Builder
	for c, l := range levels {
		glyph := " "
		if l >= 0 {
			glyph = string(levelGlyphs[l])
		}
		switch {
		case opts.ShowCursor && c == opts.Cursor:
			if glyph == " " {
				glyph = "▾"
			}
			if opts.Color {
				glyph = cursorStyle.Render(glyph)
			}
		case opts.Color && l >= 0 && l > axis.LevelLabel:
			glyph = tickStyle.Render(glyph)
		}
		b.WriteString(glyph)
	}
	return b.String()
}

type placedLabel struct {
	start int
	text  string
	level axis.Level
}

func renderLabels[T any](ticks []axis.Tick[T], width, cw int, color bool) string {
	taken := make([]bool, width)
	var placed []placedLabel
	for level := axis.LevelOuter; level <= axis.LevelLabel; level++ {
		for _, tick := range ticks {
			if tick.Level != level || tick.Text == "" {
				continue
			}
			text := tick.Text
			w := runewidth.StringWidth(text)
			if w == 0 || w > width {
				continue
			}
			start := labelStart(tickCell(tick, width, cw), w, tick.Align)
			if start < 0 || start+w > width || overlaps(taken, start, w) {
				continue
			}
			for i := start; i < start+w; i++ {
				taken[i] = true
			}
			placed = append(placed, placedLabel{start: start, text: text, level: level})
		}
	}

	row := make([]string, width)
	for i := range row {
		row[i] = " "
	}
	for _, p := range placed {
		text := p.text
		if color {
			if p.level == axis.LevelLabel {
				text = labelStyle.Render(text)
			} else {
				text = bigLabelStyle.Render(text)
			}
		}
		row[p.start] = text
		for i := p.start + 1; i < p.start+runewidth.StringWidth(p.text); i++ {
			row[i] = ""
		}
	}
	return strings.Join(row, "")
}

// tickCell pins the end outer tick, which sits on pixel extent, to the last
// cell.
func tickCell[T any](tick axis.Tick[T], width, cw int) int {
	c := CellOf(tick.Pixel, cw)
	if c == width && tick.Level == axis.LevelOuter {
		return width - 1
	}
	return c
}

func labelStart(cell, w int, align axis.Align) int {
	switch align {
	case axis.AlignBegin:
		return cell
	case axis.AlignEnd:
		return cell - w + 1
	default:
		return cell - w/2
	}
}

// overlaps also rejects labels touching an already placed one.
func overlaps(taken []bool, start, w int) bool {
	for i := start - 1; i <= start+w; i++ {
		if i >= 0 && i < len(taken) && taken[i] {
			return true
		}
	}
	return false
}

func clampCell(c, width int) int {
	if c < 0 {
		return 0
	}
	if c >= width {
		return width - 1
	}
	return c
}
