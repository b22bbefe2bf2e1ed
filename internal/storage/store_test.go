package storage

import (
	"testing"

	"github.com/san-kum/varsense/internal/sensitivity"
	"github.com/san-kum/varsense/internal/sweep"
)

func TestSaveEstimateRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	result := sensitivity.Result{
		LowerIndex:    1.1,
		TotalIndex:    1.2,
		ModelVariance: 2.0,
		ModelMean:     0.5,
		Samples:       1000,
	}

	id, err := st.SaveEstimate("linear", 42, []int{1, 2}, true, 1.0, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(id)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Kind != "estimate" || meta.Model != "linear" {
		t.Errorf("unexpected metadata: %+v", meta)
	}
	if meta.Results["total_index"] != 1.2 {
		t.Errorf("expected total index 1.2, got %f", meta.Results["total_index"])
	}
	if len(meta.Targets) != 2 {
		t.Errorf("targets not preserved: %v", meta.Targets)
	}
}

func TestSaveSweepRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	points := []sweep.Point{
		{CoV: 0.5, TotalIndex: 1, LowerComplement: 0.1, ModelVariance: 1.5},
		{CoV: 1.0, TotalIndex: 4, LowerComplement: 0.2, ModelVariance: 4.5},
	}

	id, err := st.SaveSweep("calloption", 7, []int{2}, 20000, points)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := st.LoadSweep(id)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 points, got %d", len(loaded))
	}
	if loaded[1] != points[1] {
		t.Errorf("point not preserved: %+v vs %+v", loaded[1], points[1])
	}
}

func TestListRuns(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	if _, err := st.SaveEstimate("linear", 1, []int{1}, false, 1.0, sensitivity.Result{Samples: 10}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestListMissingDir(t *testing.T) {
	st := New(t.TempDir() + "/nope")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list should tolerate missing dir: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}
