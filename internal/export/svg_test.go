package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/varsense/internal/sweep"
)

func testPoints() []sweep.Point {
	return []sweep.Point{
		{CoV: 0.25, TotalIndex: 0.1, LowerComplement: 0.8, ModelVariance: 1.0},
		{CoV: 0.5, TotalIndex: 0.3, LowerComplement: 0.6, ModelVariance: 2.0},
		{CoV: 1.0, TotalIndex: 0.7, LowerComplement: 0.3, ModelVariance: 5.0},
	}
}

func TestSweepToSVG(t *testing.T) {
	svg := SweepToSVG(testPoints(), DefaultSeries(), 640, 480)
	if svg == "" {
		t.Fatal("expected non-empty svg")
	}
	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing xml declaration")
	}
	if !strings.Contains(svg, "</svg>") {
		t.Error("missing closing svg tag")
	}
	if got := strings.Count(svg, "<path"); got != 3 {
		t.Errorf("expected 3 series paths, got %d", got)
	}
	if !strings.Contains(svg, "total index") {
		t.Error("missing legend entry")
	}
}

func TestSweepToSVGTooFewPoints(t *testing.T) {
	svg := SweepToSVG(testPoints()[:1], DefaultSeries(), 640, 480)
	if svg != "" {
		t.Error("expected empty svg for single point")
	}
}

func TestSweepToSVGFlatSeries(t *testing.T) {
	points := []sweep.Point{
		{CoV: 0.5, TotalIndex: 1.0, LowerComplement: 1.0, ModelVariance: 1.0},
		{CoV: 1.0, TotalIndex: 1.0, LowerComplement: 1.0, ModelVariance: 1.0},
	}
	svg := SweepToSVG(points, DefaultSeries(), 640, 480)
	if svg == "" {
		t.Fatal("flat series should still render")
	}
	if strings.Contains(svg, "NaN") || strings.Contains(svg, "Inf") {
		t.Error("flat series produced non-finite coordinates")
	}
}

func TestWriteSweepSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.svg")
	if err := WriteSweepSVG(path, testPoints(), 640, 480); err != nil {
		t.Fatalf("WriteSweepSVG: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(data), "</svg>") {
		t.Error("written file is not valid svg")
	}

	if err := WriteSweepSVG(path, testPoints()[:1], 640, 480); err == nil {
		t.Error("expected error for too few points")
	}
}
