package domains

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/axisview/internal/axis"
	"github.com/verte-zerg/axisview/internal/model"
)

func TestNewAxisFromConfig(t *testing.T) {
	k, err := LinearKind()
	require.NoError(t, err)
	a, err := NewAxis(k, model.Config{
		Begin:        "10",
		End:          "20",
		ResizePolicy: "rescale",
		LimitBegin:   "0",
		LimitEnd:     "100",
		MaxScale:     0.5,
	})
	require.NoError(t, err)
	assert.Equal(t, axis.Span(10.0, 20.0), a.Value())
	assert.Equal(t, axis.Span(0.0, 100.0), a.ValueLimit())

	a.SetExtent(100, axis.All(axis.SourceResize))
	assert.InDelta(t, 0.1, a.Scale(), 1e-12)
	a.SetExtent(50, axis.All(axis.SourceResize))
	assert.Equal(t, axis.Span(10.0, 20.0), a.Value())
}

func TestNewAxisRejectsBadConfig(t *testing.T) {
	k, err := LinearKind()
	require.NoError(t, err)
	cases := []model.Config{
		{Begin: "x", End: "1"},
		{Begin: "1"},
		{Begin: "5", End: "1"},
		{End: "1"},
		{LimitEnd: "1"},
		{ResizePolicy: "stretch"},
	}
	for _, cfg := range cases {
		_, err := NewAxis(k, cfg)
		assert.Error(t, err, "config %+v", cfg)
	}
}

func TestTimeKindParse(t *testing.T) {
	k, err := TimeKind(time.UTC)
	require.NoError(t, err)
	want := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)

	got, err := k.Parse("2024-03-05T12:00:00+02:00")
	require.NoError(t, err)
	assert.True(t, want.Equal(got))

	got, err = k.Parse("2024-03-05 10:00:00")
	require.NoError(t, err)
	assert.True(t, want.Equal(got))
	assert.Equal(t, "2024-03-05T10:00:00Z", k.Format(got))

	_, err = k.Parse("yesterday")
	assert.Error(t, err)
}

func TestDecimalKindRoundTrip(t *testing.T) {
	k, err := DecimalKind()
	require.NoError(t, err)
	v, err := k.Parse(" 12.340 ")
	require.NoError(t, err)
	assert.Equal(t, "12.34", k.Format(v))
}

func TestSegmentsFromRecords(t *testing.T) {
	k, err := LinearKind()
	require.NoError(t, err)
	from, to := 0.2, 0.8
	segs, skipped := Segments(k, []model.SegmentRecord{
		{ID: 1, Begin: "1", End: "2", Color: "#FF4D4F", Tooltip: "a", BandFrom: &from, BandTo: &to},
		{ID: 2, Begin: "nope", End: "2"},
		{ID: 3, Begin: "3", End: "4"},
	})
	assert.Equal(t, []int64{2}, skipped)
	require.Len(t, segs, 2)
	assert.Equal(t, axis.Span(1.0, 2.0), segs[0].Range)
	require.NotNil(t, segs[0].Height)
	assert.Equal(t, axis.Band{From: 0.2, To: 0.8}, *segs[0].Height)
	assert.Nil(t, segs[1].Height)
}

func TestParseResizePolicy(t *testing.T) {
	p, err := ParseResizePolicy("Rescale")
	require.NoError(t, err)
	assert.Equal(t, axis.ResizeRescale, p)
	p, err = ParseResizePolicy("")
	require.NoError(t, err)
	assert.Equal(t, axis.ResizeExtend, p)
}
