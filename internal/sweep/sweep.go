// Package sweep recomputes sensitivity indices across a range of
// coefficient-of-variation values and persists them for plotting.
package sweep

import (
	"fmt"
	"io"
	"os"

	"github.com/san-kum/varsense/internal/sensitivity"
)

// Point is one sweep row: the total-effect index of the target set, the
// first-order index of its complement, and the model variance, all at
// the given CoV.
type Point struct {
	CoV             float64
	TotalIndex      float64
	LowerComplement float64
	ModelVariance   float64
}

// Run estimates indices for every CoV value. For each value the
// variance of every target-set parameter is replaced by (mean*CoV)^2,
// the indices are estimated once for the target set and once for its
// complement, and the three scalars of interest are collected. The
// estimator's configuration is untouched afterwards.
func Run(est *sensitivity.Estimator, covValues []float64) ([]Point, error) {
	marginals := est.Marginals()
	targets := make(map[int]struct{})
	for _, j := range est.Targets() {
		targets[j] = struct{}{}
	}
	complement := est.Complement()

	points := make([]Point, 0, len(covValues))
	for _, cov := range covValues {
		uncertainties := make([]float64, est.Dim())
		for j := 0; j < est.Dim(); j++ {
			m := marginals[j]
			if _, ok := targets[j+1]; ok {
				uncertainties[j] = (m.Mean * cov) * (m.Mean * cov)
			} else {
				uncertainties[j] = m.Variance
			}
		}

		total, err := est.Estimate(sensitivity.Opts{Uncertainties: uncertainties})
		if err != nil {
			return points, fmt.Errorf("sweep at CoV %g: %w", cov, err)
		}

		if _, err := est.Estimate(sensitivity.Opts{Uncertainties: uncertainties, Indices: complement}); err != nil {
			return points, fmt.Errorf("sweep complement at CoV %g: %w", cov, err)
		}

		points = append(points, Point{
			CoV:             cov,
			TotalIndex:      total,
			LowerComplement: est.LowerIndex(),
			ModelVariance:   est.ModelVariance(),
		})
	}
	return points, nil
}

// Write emits one whitespace-separated line per point, no header.
func Write(w io.Writer, points []Point) error {
	for _, p := range points {
		if _, err := fmt.Fprintf(w, "%g %g %g %g\n", p.CoV, p.TotalIndex, p.LowerComplement, p.ModelVariance); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile persists the sweep to path. An open failure leaves the
// caller's estimator state intact; only the file is lost.
func WriteFile(path string, points []Point) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sweep: open %s: %w", path, err)
	}
	defer f.Close()
	return Write(f, points)
}
