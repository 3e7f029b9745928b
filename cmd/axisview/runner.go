package main

import (
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/verte-zerg/axisview/internal/axis"
	"github.com/verte-zerg/axisview/internal/axisui"
	"github.com/verte-zerg/axisview/internal/domains"
	"github.com/verte-zerg/axisview/internal/model"
	"github.com/verte-zerg/axisview/internal/ruler"
)

const lastViewName = "last"

// runner runs commands for one domain without the caller knowing its value
// types.
type runner interface {
	name() string
	printTicks(w io.Writer, cfg model.Config, width int, color bool, recs []model.SegmentRecord) error
	runView(cfg model.Config, recs []model.SegmentRecord, logger log.FieldLogger) (model.SavedView, error)
	checkRange(begin, end string) error
}

type kindRunner[T, S any] struct {
	kind domains.Kind[T, S]
}

func newRunner(domain string) (runner, error) {
	switch domain {
	case domains.NameLinear:
		k, err := domains.LinearKind()
		if err != nil {
			return nil, fmt.Errorf("failed to build linear catalog: %w", err)
		}
		return kindRunner[float64, float64]{kind: k}, nil
	case domains.NameDecimal:
		k, err := domains.DecimalKind()
		if err != nil {
			return nil, fmt.Errorf("failed to build decimal catalog: %w", err)
		}
		return kindRunner[decimal.Decimal, decimal.Decimal]{kind: k}, nil
	case domains.NameTime:
		k, err := domains.TimeKind(time.Local)
		if err != nil {
			return nil, fmt.Errorf("failed to build time catalog: %w", err)
		}
		return kindRunner[time.Time, time.Duration]{kind: k}, nil
	default:
		return nil, fmt.Errorf("unknown domain %q", domain)
	}
}

func (r kindRunner[T, S]) name() string {
	return r.kind.Name
}

func (r kindRunner[T, S]) segments(recs []model.SegmentRecord) []axis.Segment[T] {
	segs, skipped := domains.Segments(r.kind, recs)
	for _, id := range skipped {
		logErrf("skipping segment %d: bounds are not %s values\n", id, r.kind.Name)
	}
	return segs
}

func (r kindRunner[T, S]) printTicks(w io.Writer, cfg model.Config, width int, color bool, recs []model.SegmentRecord) error {
	a, err := domains.NewAxis(r.kind, cfg)
	if err != nil {
		return err
	}
	a.SetExtent(ruler.PixelsFor(width, cfg.CellWidth), axis.All(axis.SourceResize))
	if !a.IsValid() {
		return fmt.Errorf("--width %d is too small for the axis", width)
	}
	ticks := a.Ticks()
	mapped := a.MapSegments(r.segments(recs))
	log.WithFields(log.Fields{
		"domain":   r.kind.Name,
		"extent":   a.Extent(),
		"ticks":    len(ticks),
		"segments": len(mapped),
	}).Debug("built ruler")

	lines := ruler.Render(ticks, mapped, ruler.Options{Width: width, CellWidth: cfg.CellWidth, Color: color})
	lines = append(lines, "", r.summary(a, cfg.CellWidth), "")
	lines = append(lines, ruler.TickTable(ticks, r.kind.Format)...)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func (r kindRunner[T, S]) summary(a *axis.Axis[T, S], cellWidth int) string {
	v := a.Value()
	grid := "-"
	if arr := a.Arrangement(); arr != nil {
		grid = arr.Name
	}
	return fmt.Sprintf("value %s .. %s  %v/cell  grid %s",
		r.kind.Format(v.Begin), r.kind.Format(v.End), r.kind.Domain.Size(a.Scale()*float64(cellWidth)), grid)
}

func (r kindRunner[T, S]) runView(cfg model.Config, recs []model.SegmentRecord, logger log.FieldLogger) (model.SavedView, error) {
	a, err := domains.NewAxis(r.kind, cfg)
	if err != nil {
		return model.SavedView{}, err
	}
	m := axisui.NewModel(r.kind, a, r.segments(recs), axisui.Options{
		CellWidth: cfg.CellWidth,
		Color:     ruler.ShouldUseColor(os.Stdout, false),
		Logger:    logger,
	})
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return model.SavedView{}, fmt.Errorf("failed to run viewer: %w", err)
	}
	v := a.Value()
	return model.SavedView{
		Name:   lastViewName,
		Domain: r.kind.Name,
		Begin:  r.kind.Format(v.Begin),
		End:    r.kind.Format(v.End),
	}, nil
}

func (r kindRunner[T, S]) checkRange(begin, end string) error {
	if _, err := r.kind.Parse(begin); err != nil {
		return fmt.Errorf("--begin is not a %s value: %w", r.kind.Name, err)
	}
	if _, err := r.kind.Parse(end); err != nil {
		return fmt.Errorf("--end is not a %s value: %w", r.kind.Name, err)
	}
	return nil
}
