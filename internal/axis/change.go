package axis

// Source tags what caused a mutation.
type Source int

const (
	SourceAPI Source = iota
	SourceResize
	SourceGesture
	SourcePeer
	SourceLimit
)

func (s Source) String() string {
	switch s {
	case SourceAPI:
		return "api"
	case SourceResize:
		return "resize"
	case SourceGesture:
		return "gesture"
	case SourcePeer:
		return "peer"
	case SourceLimit:
		return "limit"
	default:
		return "unknown"
	}
}

// Directives select which downstream steps a mutation runs.
type Directives struct {
	Source               Source
	RecomputeScale       bool
	RecomputeArrangement bool
	RebuildTicks         bool
	Notify               bool
	Redraw               bool
	SyncPeers            bool
}

// All returns directives that run every step.
func All(src Source) Directives {
	return Directives{
		Source:               src,
		RecomputeScale:       true,
		RecomputeArrangement: true,
		RebuildTicks:         true,
		Notify:               true,
		Redraw:               true,
		SyncPeers:            true,
	}
}

// Quiet returns d without listener notification or peer sync.
func (d Directives) Quiet() Directives {
	d.Notify = false
	d.SyncPeers = false
	return d
}

// Change describes the effect of one mutation. Changed is false for no-ops;
// Redraw and SyncPeers echo the directives of a real change.
type Change[T any] struct {
	OldValue  Range[T]
	NewValue  Range[T]
	OldScale  float64
	NewScale  float64
	Source    Source
	Changed   bool
	Redraw    bool
	SyncPeers bool
}

// Listener receives changes from an axis.
type Listener[T any] func(Change[T])
