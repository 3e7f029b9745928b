package domains

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/verte-zerg/axisview/internal/axis"
	"github.com/verte-zerg/axisview/internal/model"
)

// Domain names accepted by --domain and the config file.
const (
	NameLinear  = "linear"
	NameDecimal = "decimal"
	NameTime    = "time"
)

// Names lists the supported domain names.
func Names() []string {
	return []string{NameLinear, NameDecimal, NameTime}
}

// Kind bundles a domain with its catalog and the text form of its values
// used by flags and the segment store.
type Kind[T, S any] struct {
	Name    string
	Domain  axis.Domain[T, S]
	Catalog *axis.Catalog[S]
	Parse   func(string) (T, error)
	Format  func(T) string
}

// LinearKind covers values from 10^-6 to 10^12.
func LinearKind() (Kind[float64, float64], error) {
	cat, err := LinearCatalog(-6, 12)
	if err != nil {
		return Kind[float64, float64]{}, err
	}
	return Kind[float64, float64]{
		Name:    NameLinear,
		Domain:  Linear{},
		Catalog: cat,
		Parse: func(s string) (float64, error) {
			return strconv.ParseFloat(strings.TrimSpace(s), 64)
		},
		Format: func(v float64) string {
			return strconv.FormatFloat(v, 'g', -1, 64)
		},
	}, nil
}

// DecimalKind covers values from 10^-8 to 10^12.
func DecimalKind() (Kind[decimal.Decimal, decimal.Decimal], error) {
	cat, err := DecimalCatalog(-8, 12)
	if err != nil {
		return Kind[decimal.Decimal, decimal.Decimal]{}, err
	}
	return Kind[decimal.Decimal, decimal.Decimal]{
		Name:    NameDecimal,
		Domain:  Decimal{},
		Catalog: cat,
		Parse: func(s string) (decimal.Decimal, error) {
			return decimal.NewFromString(strings.TrimSpace(s))
		},
		Format: decimal.Decimal.String,
	}, nil
}

// TimeKind labels ticks in loc. Values parse as RFC 3339, "2006-01-02
// 15:04:05" in loc, or "now".
func TimeKind(loc *time.Location) (Kind[time.Time, time.Duration], error) {
	cat, err := TimeCatalog()
	if err != nil {
		return Kind[time.Time, time.Duration]{}, err
	}
	if loc == nil {
		loc = time.Local
	}
	return Kind[time.Time, time.Duration]{
		Name:    NameTime,
		Domain:  Time{Location: loc},
		Catalog: cat,
		Parse: func(s string) (time.Time, error) {
			return parseTime(s, loc)
		},
		Format: func(t time.Time) string {
			return t.Format(time.RFC3339Nano)
		},
	}, nil
}

func parseTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "now" {
		return time.Now().In(loc), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(loc), nil
	}
	t, err := time.ParseInLocation(time.DateTime, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: expected RFC 3339 or %q", s, time.DateTime)
	}
	return t, nil
}

// ParseResizePolicy maps "extend" and "rescale" to resize policies.
func ParseResizePolicy(s string) (axis.ResizePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "extend":
		return axis.ResizeExtend, nil
	case "rescale":
		return axis.ResizeRescale, nil
	default:
		return axis.ResizeExtend, fmt.Errorf("unknown resize policy %q", s)
	}
}

// NewAxis builds an axis of kind k from cfg. Begin and End, when both set,
// replace the domain's initial value.
func NewAxis[T, S any](k Kind[T, S], cfg model.Config) (*axis.Axis[T, S], error) {
	policy, err := ParseResizePolicy(cfg.ResizePolicy)
	if err != nil {
		return nil, err
	}
	opts := []axis.Option{
		axis.WithResizePolicy(policy),
		axis.WithRoundShift(cfg.RoundShift),
	}
	if cfg.MinExtent > 0 {
		opts = append(opts, axis.WithMinExtent(cfg.MinExtent))
	}
	if cfg.TargetSpacing > 0 {
		opts = append(opts, axis.WithTargetSpacing(cfg.TargetSpacing))
	}
	a, err := axis.New(k.Domain, k.Catalog, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create axis: %w", err)
	}

	quiet := axis.All(axis.SourceAPI).Quiet()
	limit, err := parseRange(k, cfg.LimitBegin, cfg.LimitEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to parse value limit: %w", err)
	}
	a.SetValueLimit(limit, quiet)
	a.SetScaleLimit(axis.ScaleLimit{Min: cfg.MinScale, Max: cfg.MaxScale}, quiet)

	if cfg.Begin != "" || cfg.End != "" {
		v, err := parseRange(k, cfg.Begin, cfg.End)
		if err != nil {
			return nil, fmt.Errorf("failed to parse value: %w", err)
		}
		if !v.IsFilled() {
			return nil, fmt.Errorf("both begin and end are required")
		}
		if k.Domain.Compare(v.Begin, v.End) >= 0 {
			return nil, fmt.Errorf("begin must be before end")
		}
		a.SetValue(v, quiet)
	}
	return a, nil
}

// parseRange parses optional bounds. A range with only End is not
// representable, so an End without Begin is an error.
func parseRange[T, S any](k Kind[T, S], begin, end string) (axis.Range[T], error) {
	var r axis.Range[T]
	if begin != "" {
		b, err := k.Parse(begin)
		if err != nil {
			return r, fmt.Errorf("begin: %w", err)
		}
		r.Begin, r.HasBegin = b, true
	}
	if end != "" {
		if !r.HasBegin {
			return r, fmt.Errorf("end %q given without begin", end)
		}
		e, err := k.Parse(end)
		if err != nil {
			return r, fmt.Errorf("end: %w", err)
		}
		r.End, r.HasEnd = e, true
	}
	return r, nil
}

// Segments converts stored records into axis segments. Records that do not
// parse in k are returned as skipped ids.
func Segments[T, S any](k Kind[T, S], recs []model.SegmentRecord) ([]axis.Segment[T], []int64) {
	segs := make([]axis.Segment[T], 0, len(recs))
	var skipped []int64
	for _, rec := range recs {
		r, err := parseRange(k, rec.Begin, rec.End)
		if err != nil || !r.IsFilled() {
			skipped = append(skipped, rec.ID)
			continue
		}
		seg := axis.Segment[T]{Range: r, Color: rec.Color, Tooltip: rec.Tooltip}
		if rec.BandFrom != nil && rec.BandTo != nil {
			seg.Height = &axis.Band{From: *rec.BandFrom, To: *rec.BandTo}
		}
		segs = append(segs, seg)
	}
	return segs, skipped
}
