package axis

// Level is one granularity of an arrangement, from outer (coarsest) to
// standard tick (finest).
type Level int

const (
	LevelOuter Level = iota
	LevelBigLabel
	LevelLabel
	LevelBigTick
	LevelTick
	levelCount
)

var levelNames = [levelCount]string{"outer", "big-label", "label", "big-tick", "tick"}

func (l Level) String() string {
	if l < 0 || l >= levelCount {
		return "unknown"
	}
	return levelNames[l]
}

// HasText reports whether ticks of the level carry a label.
func (l Level) HasText() bool {
	return l == LevelOuter || l == LevelBigLabel || l == LevelLabel
}

// LengthRatio is the display length of a tick mark relative to a big label.
func (l Level) LengthRatio() float64 {
	switch l {
	case LevelOuter:
		return 2.0
	case LevelBigLabel:
		return 1.0
	case LevelLabel:
		return 0.9
	case LevelBigTick:
		return 0.75
	case LevelTick:
		return 0.6
	default:
		return 0
	}
}

// Align is the anchor of a tick label relative to its position.
type Align int

const (
	AlignCenter Align = iota
	AlignBegin
	AlignEnd
)

// TickLevel is the interval and format hint of one level. An interval with
// non-positive units disables the level.
type TickLevel[S any] struct {
	Interval S
	Format   string
}

// Arrangement is a complete set of tick spacing rules valid for a band of
// scales. Levels are indexed by Level.
type Arrangement[S any] struct {
	Name   string
	Levels [levelCount]TickLevel[S]
	// Selectivity scales the target label spacing for this arrangement.
	// Zero means 1.
	Selectivity float64
}

// Level returns the definition of l.
func (a *Arrangement[S]) Level(l Level) TickLevel[S] {
	return a.Levels[l]
}

// Tick is one mark of a built tick list.
type Tick[T any] struct {
	Level  Level
	Value  T
	Pixel  int
	Length float64
	Text   string
	Align  Align
}
