package axis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapSegments(t *testing.T) {
	a := newTestAxis(t, 100)
	segs := []Segment[float64]{
		{Range: Span(10.4, 20.6), Color: "red", Tooltip: "first"},
		{Range: Span(30.0, 25.0), Tooltip: "reversed"},
		{Range: Span(-50.0, 5.0), Tooltip: "left"},
		{Range: Span(90.0, 200.0), Tooltip: "right"},
		{Range: Span(150.0, 160.0), Tooltip: "outside"},
		{Range: From(5.0), Tooltip: "open"},
		{Range: Span(40.0, 40.0), Tooltip: "point"},
	}
	mapped := a.MapSegments(segs)
	require.Len(t, mapped, 5)

	bounds := make(map[string][2]int, len(mapped))
	for _, m := range mapped {
		bounds[m.Tooltip] = [2]int{m.X0, m.X1}
	}
	assert.Equal(t, [2]int{10, 21}, bounds["first"])
	assert.Equal(t, [2]int{25, 30}, bounds["reversed"])
	assert.Equal(t, [2]int{0, 5}, bounds["left"])
	assert.Equal(t, [2]int{90, 100}, bounds["right"])
	assert.Equal(t, [2]int{40, 41}, bounds["point"])
	assert.Equal(t, "red", mapped[0].Color)
}

func TestMapSegmentsClampsBand(t *testing.T) {
	a := newTestAxis(t, 100)
	mapped := a.MapSegments([]Segment[float64]{
		{Range: Span(0.0, 10.0), Height: &Band{From: 1.5, To: -0.2}},
	})
	require.Len(t, mapped, 1)
	require.NotNil(t, mapped[0].Height)
	assert.Equal(t, Band{From: 0, To: 1}, *mapped[0].Height)
}

func TestMapSegmentsInvalidAxis(t *testing.T) {
	a, err := New[float64, float64](numDomain{initial: Span(0.0, 100.0)}, testCatalog(t))
	require.NoError(t, err)
	assert.Nil(t, a.MapSegments([]Segment[float64]{{Range: Span(0.0, 10.0)}}))
}

func TestSegmentsAt(t *testing.T) {
	a := newTestAxis(t, 100)
	mapped := a.MapSegments([]Segment[float64]{
		{Range: Span(0.0, 50.0), Tooltip: "a"},
		{Range: Span(40.0, 60.0), Tooltip: "b"},
	})
	assert.Len(t, SegmentsAt(mapped, 45), 2)
	at := SegmentsAt(mapped, 50)
	require.Len(t, at, 1)
	assert.Equal(t, "b", at[0].Tooltip)
	assert.Empty(t, SegmentsAt(mapped, 60))
}
