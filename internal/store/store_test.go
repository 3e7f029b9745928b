package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/axisview/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "axisview.db")
	st, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestSegmentsRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	from, to := 0.25, 0.75
	id1, err := st.InsertSegment(ctx, model.SegmentRecord{
		Domain:   "linear",
		Begin:    "10",
		End:      "20",
		Color:    "#FF4D4F",
		Tooltip:  "warmup",
		BandFrom: &from,
		BandTo:   &to,
	})
	if err != nil {
		t.Fatalf("insert segment: %v", err)
	}
	id2, err := st.InsertSegment(ctx, model.SegmentRecord{Domain: "time", Begin: "2024-03-05T10:00:00Z", End: "2024-03-05T11:00:00Z"})
	if err != nil {
		t.Fatalf("insert segment: %v", err)
	}
	if id2 <= id1 {
		t.Fatalf("expected increasing ids, got %d then %d", id1, id2)
	}

	linear, err := st.ListSegments(ctx, "linear")
	if err != nil {
		t.Fatalf("list segments: %v", err)
	}
	if len(linear) != 1 {
		t.Fatalf("expected 1 linear segment, got %d", len(linear))
	}
	seg := linear[0]
	if seg.ID != id1 || seg.Begin != "10" || seg.End != "20" || seg.Tooltip != "warmup" {
		t.Fatalf("unexpected segment: %+v", seg)
	}
	if seg.BandFrom == nil || *seg.BandFrom != from || seg.BandTo == nil || *seg.BandTo != to {
		t.Fatalf("unexpected band: %v %v", seg.BandFrom, seg.BandTo)
	}
	if seg.CreatedAt.IsZero() {
		t.Fatalf("expected created_at to be set")
	}

	all, err := st.ListSegments(ctx, "")
	if err != nil {
		t.Fatalf("list segments: %v", err)
	}
	if len(all) != 2 || all[1].BandFrom != nil {
		t.Fatalf("unexpected segments: %+v", all)
	}
}

func TestDeleteSegment(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	id, err := st.InsertSegment(ctx, model.SegmentRecord{Domain: "linear", Begin: "1", End: "2"})
	if err != nil {
		t.Fatalf("insert segment: %v", err)
	}
	ok, err := st.DeleteSegment(ctx, id)
	if err != nil || !ok {
		t.Fatalf("expected delete to succeed, got %v %v", ok, err)
	}
	ok, err = st.DeleteSegment(ctx, id)
	if err != nil || ok {
		t.Fatalf("expected second delete to report missing, got %v %v", ok, err)
	}
	segs, err := st.ListSegments(ctx, "")
	if err != nil {
		t.Fatalf("list segments: %v", err)
	}
	if len(segs) != 0 {
		t.Fatalf("expected no segments, got %d", len(segs))
	}
}

func TestSaveViewUpserts(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if _, ok, err := st.GetView(ctx, "last", "linear"); err != nil || ok {
		t.Fatalf("expected missing view, got %v %v", ok, err)
	}
	first := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)
	if err := st.SaveView(ctx, model.SavedView{Name: "last", Domain: "linear", Begin: "0", End: "100", UpdatedAt: first}); err != nil {
		t.Fatalf("save view: %v", err)
	}
	if err := st.SaveView(ctx, model.SavedView{Name: "last", Domain: "linear", Begin: "40", End: "60", UpdatedAt: first.Add(time.Minute)}); err != nil {
		t.Fatalf("save view: %v", err)
	}
	v, ok, err := st.GetView(ctx, "last", "linear")
	if err != nil || !ok {
		t.Fatalf("get view: %v %v", ok, err)
	}
	if v.Begin != "40" || v.End != "60" {
		t.Fatalf("unexpected view: %+v", v)
	}
	if !v.UpdatedAt.Equal(first.Add(time.Minute)) {
		t.Fatalf("unexpected updated_at: %v", v.UpdatedAt)
	}
	if _, ok, _ := st.GetView(ctx, "last", "time"); ok {
		t.Fatalf("expected views to be scoped by domain")
	}
}
