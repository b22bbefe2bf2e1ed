package sensitivity

import "github.com/san-kum/varsense/internal/distribution"

// Model evaluates a scalar function of a randomly drawn parameter vector
// and a fixed constants vector. Implementations must be deterministic and
// side-effect free; the estimator calls Evaluate four times per iteration.
type Model interface {
	Evaluate(params, constants []float64) float64
}

// Func adapts a plain function to the Model interface.
type Func func(params, constants []float64) float64

func (f Func) Evaluate(params, constants []float64) float64 { return f(params, constants) }

// Sequence is a stateful quasi-random source. Next advances to a fresh
// draw; Coordinate reads coordinate k (0-based) of the current draw,
// strictly inside (0,1).
type Sequence interface {
	Next()
	Coordinate(k int) float64
}

// Marginal describes one parameter's distribution. A nil Family means
// Normal.
type Marginal struct {
	Family   distribution.Family
	Mean     float64
	Variance float64
}

func (m Marginal) family() distribution.Family {
	if m.Family == nil {
		return distribution.Normal{}
	}
	return m.Family
}

// Result holds one reduction of the Monte Carlo sums. ModelVariance can
// come out negative for small sample counts; that is a valid noisy
// estimate, not an error.
type Result struct {
	LowerIndex    float64
	TotalIndex    float64
	ModelVariance float64
	ModelMean     float64
	Samples       int
}
