// Package axisui provides the Bubble Tea axis viewer.
package axisui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/axisview/internal/axis"
	"github.com/verte-zerg/axisview/internal/domains"
	"github.com/verte-zerg/axisview/internal/ruler"
)

const (
	zoomStep   = 1.25
	pageRatio  = 0.1
	idleCommit = 800 * time.Millisecond
)

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	tooltipStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8")).Italic(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// Options configures the viewer.
type Options struct {
	CellWidth int
	Color     bool
	Logger    logrus.FieldLogger
}

type idleMsg struct {
	seq int
}

// Model implements the Bubble Tea axis viewer.
type Model[T, S any] struct {
	kind    domains.Kind[T, S]
	axis    *axis.Axis[T, S]
	initial axis.Range[T]
	segs    []axis.Segment[T]
	mapped  []axis.MappedSegment[T]
	opts    Options
	log     logrus.FieldLogger

	width  int
	height int
	cursor int

	gesture *axis.Gesture[T, S]
	seq     int

	help help.Model
}

// NewModel constructs a viewer over a. The value of a at this point is the
// one restored by reset.
func NewModel[T, S any](k domains.Kind[T, S], a *axis.Axis[T, S], segs []axis.Segment[T], opts Options) *Model[T, S] {
	if opts.CellWidth <= 0 {
		opts.CellWidth = ruler.DefaultCellWidth
	}
	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		log = l
	}
	m := &Model[T, S]{
		kind:    k,
		axis:    a,
		initial: a.Value(),
		segs:    segs,
		opts:    opts,
		log:     log,
		help:    help.New(),
	}
	a.Subscribe(m.onChange)
	return m
}

// Init implements tea.Model.
func (m *Model[T, S]) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model[T, S]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if m.width == 0 {
			m.cursor = msg.Width / 2
		}
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.axis.SetExtent(ruler.PixelsFor(msg.Width, m.opts.CellWidth), axis.All(axis.SourceResize))
		m.clampCursor()
		m.remap()
		return m, nil
	case idleMsg:
		if msg.seq == m.seq {
			m.commitGesture()
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model[T, S]) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.commitGesture()
		return m, tea.Quit
	case key.Matches(msg, keys.Left):
		return m, m.gestureStep(func(d axis.Directives) { m.axis.ShiftByRatio(-m.cellRatio(), d) })
	case key.Matches(msg, keys.Right):
		return m, m.gestureStep(func(d axis.Directives) { m.axis.ShiftByRatio(m.cellRatio(), d) })
	case key.Matches(msg, keys.PageLeft):
		return m, m.gestureStep(func(d axis.Directives) { m.axis.ShiftByRatio(-pageRatio, d) })
	case key.Matches(msg, keys.PageRight):
		return m, m.gestureStep(func(d axis.Directives) { m.axis.ShiftByRatio(pageRatio, d) })
	case key.Matches(msg, keys.ZoomIn):
		return m, m.zoom(1 / zoomStep)
	case key.Matches(msg, keys.ZoomOut):
		return m, m.zoom(zoomStep)
	case key.Matches(msg, keys.CursorLeft):
		m.commitGesture()
		m.cursor--
		m.clampCursor()
	case key.Matches(msg, keys.CursorRight):
		m.commitGesture()
		m.cursor++
		m.clampCursor()
	case key.Matches(msg, keys.Cancel):
		if m.gesture != nil && m.gesture.Active() {
			m.gesture.Cancel(axis.All(axis.SourceGesture))
		}
		m.gesture = nil
	case key.Matches(msg, keys.Reset):
		m.commitGesture()
		m.axis.SetValue(m.initial, axis.All(axis.SourceAPI))
	case key.Matches(msg, keys.Help):
		m.commitGesture()
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// gestureStep runs one step of an interactive gesture, starting one when
// none is active, and schedules the idle commit.
func (m *Model[T, S]) gestureStep(step func(axis.Directives)) tea.Cmd {
	if !m.axis.IsValid() {
		return nil
	}
	if m.gesture == nil || !m.gesture.Active() {
		m.gesture = m.axis.BeginGesture()
	}
	step(axis.All(axis.SourceGesture))
	m.seq++
	seq := m.seq
	return tea.Tick(idleCommit, func(time.Time) tea.Msg {
		return idleMsg{seq: seq}
	})
}

func (m *Model[T, S]) zoom(z float64) tea.Cmd {
	pivot, ok := m.cursorValue()
	if !ok {
		return nil
	}
	return m.gestureStep(func(d axis.Directives) { m.axis.ZoomByRatio(z, pivot, d) })
}

func (m *Model[T, S]) commitGesture() {
	if m.gesture != nil {
		m.gesture.Commit()
		m.gesture = nil
	}
}

func (m *Model[T, S]) onChange(ch axis.Change[T]) {
	m.remap()
	m.log.WithFields(logrus.Fields{
		"source":    ch.Source.String(),
		"begin":     m.kind.Format(ch.NewValue.Begin),
		"end":       m.kind.Format(ch.NewValue.End),
		"scale":     ch.NewScale,
		"old_scale": ch.OldScale,
	}).Debug("axis changed")
}

func (m *Model[T, S]) remap() {
	m.mapped = m.axis.MapSegments(m.segs)
}

func (m *Model[T, S]) cellRatio() float64 {
	extent := m.axis.Extent()
	if extent <= 0 {
		return 0
	}
	return float64(m.opts.CellWidth) / float64(extent)
}

func (m *Model[T, S]) clampCursor() {
	if m.cursor >= m.width {
		m.cursor = m.width - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// cursorPixel is the pixel at the center of the cursor cell.
func (m *Model[T, S]) cursorPixel() int {
	return m.cursor*m.opts.CellWidth + m.opts.CellWidth/2
}

func (m *Model[T, S]) cursorValue() (T, bool) {
	return m.axis.PixelToTick(float64(m.cursorPixel()))
}

// View implements tea.Model.
func (m *Model[T, S]) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	var lines []string
	lines = append(lines, headerStyle.Render(truncateLine("axisview · "+m.kind.Name, m.width)), "")
	if !m.axis.IsValid() {
		lines = append(lines, errorStyle.Render(truncateLine("window too small for the axis", m.width)))
		return fitLines(strings.Join(lines, "\n"), m.width, m.height)
	}
	lines = append(lines, ruler.Render(m.axis.Ticks(), m.mapped, ruler.Options{
		Width:      m.width,
		CellWidth:  m.opts.CellWidth,
		Color:      m.opts.Color,
		Cursor:     m.cursor,
		ShowCursor: true,
	})...)
	lines = append(lines, "")
	lines = append(lines, m.renderFooter()...)
	lines = append(lines, m.help.View(keys))
	return fitLines(strings.Join(lines, "\n"), m.width, m.height)
}

func (m *Model[T, S]) renderFooter() []string {
	v := m.axis.Value()
	arr := "-"
	if a := m.axis.Arrangement(); a != nil {
		arr = a.Name
	}
	size := m.kind.Domain.Size(m.axis.Scale() * float64(m.opts.CellWidth))
	status := fmt.Sprintf("%s .. %s  %v/cell  grid %s",
		m.kind.Format(v.Begin), m.kind.Format(v.End), size, arr)

	cursor := "cursor -"
	if t, ok := m.cursorValue(); ok {
		cursor = "cursor " + m.kind.Format(t)
	}
	var tips []string
	for _, s := range axis.SegmentsAt(m.mapped, m.cursorPixel()) {
		if s.Tooltip != "" {
			tips = append(tips, s.Tooltip)
		}
	}
	second := footerStyle.Render(truncateLine(cursor, m.width))
	if len(tips) > 0 {
		second += "  " + tooltipStyle.Render(truncateLine(strings.Join(tips, ", "), m.width))
	}
	return []string{valueStyle.Render(truncateLine(status, m.width)), second}
}
