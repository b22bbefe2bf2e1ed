package sweep

import (
	"bufio"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/varsense/internal/sensitivity"
)

func newTestEstimator(t *testing.T) *sensitivity.Estimator {
	t.Helper()
	model := sensitivity.Func(func(params, constants []float64) float64 {
		return params[0]
	})
	marginals := []sensitivity.Marginal{
		{Mean: 2, Variance: 1},
		{Mean: 0, Variance: 1},
	}
	est, err := sensitivity.New(model, nil, []int{1}, marginals, 20000, sensitivity.WithSeed(12))
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}
	return est
}

func TestRunSweepsVariance(t *testing.T) {
	est := newTestEstimator(t)

	points, err := Run(est, []float64{0.5, 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}

	// f = p1, p1 target with mean 2: substituted variance is (2*CoV)^2,
	// which is the full output variance.
	if math.Abs(points[0].ModelVariance-1) > 0.1 {
		t.Errorf("CoV 0.5: expected variance ~1, got %f", points[0].ModelVariance)
	}
	if math.Abs(points[1].ModelVariance-4) > 0.2 {
		t.Errorf("CoV 1.0: expected variance ~4, got %f", points[1].ModelVariance)
	}

	// p1 explains everything, so its total index tracks the variance and
	// the complement's first-order index stays near zero.
	if math.Abs(points[1].TotalIndex-4) > 0.2 {
		t.Errorf("CoV 1.0: expected total index ~4, got %f", points[1].TotalIndex)
	}
	if math.Abs(points[0].LowerComplement) > 0.1 {
		t.Errorf("CoV 0.5: expected complement lower index ~0, got %f", points[0].LowerComplement)
	}
}

func TestRunLeavesConfigurationIntact(t *testing.T) {
	est := newTestEstimator(t)

	if _, err := Run(est, []float64{2.0}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	m := est.Marginals()
	if m[0].Variance != 1 || m[1].Variance != 1 {
		t.Errorf("sweep mutated marginals: %+v", m)
	}
	if got := est.Targets(); len(got) != 1 || got[0] != 1 {
		t.Errorf("sweep mutated target set: %v", got)
	}
}

func TestWriteFileFormat(t *testing.T) {
	points := []Point{
		{CoV: 0.5, TotalIndex: 1.25, LowerComplement: 0.01, ModelVariance: 1.3},
		{CoV: 1.0, TotalIndex: 4.1, LowerComplement: 0.02, ModelVariance: 4.2},
	}

	path := filepath.Join(t.TempDir(), "sweep.dat")
	if err := WriteFile(path, points); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lines := 0
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 4 {
			t.Errorf("line %d: expected 4 fields, got %d", lines, len(fields))
		}
		lines++
	}
	if lines != 2 {
		t.Errorf("expected 2 lines, got %d", lines)
	}
}

func TestWriteFileBadPath(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "sweep.dat"), []Point{{CoV: 1}})
	if err == nil {
		t.Error("expected error for unwritable path")
	}
}
