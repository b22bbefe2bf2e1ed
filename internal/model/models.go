package model

import "math"

// Linear is a weighted sum of its parameters. With independent inputs it
// has no interaction effects, so the first-order index of a subset is
// exactly the sum of w_j^2 * Var(p_j) over the subset, which makes it
// the reference model for verifying the estimator.
type Linear struct {
	Weights []float64
}

func NewLinear(weights []float64) *Linear {
	return &Linear{Weights: weights}
}

func (l *Linear) Evaluate(params, constants []float64) float64 {
	sum := 0.0
	for i, w := range l.Weights {
		sum += w * params[i]
	}
	return sum
}

// GFunction is Sobol's g-function benchmark over uniform (0,1) inputs.
// Small a_j means an influential parameter.
type GFunction struct {
	A []float64
}

func NewGFunction(a []float64) *GFunction {
	return &GFunction{A: a}
}

func (g *GFunction) Evaluate(params, constants []float64) float64 {
	prod := 1.0
	for i, a := range g.A {
		prod *= (math.Abs(4*params[i]-2) + a) / (1 + a)
	}
	return prod
}

// Ishigami is the three-parameter benchmark with strong nonlinearity and
// a pure p1-p3 interaction, over uniform (-pi, pi) inputs.
type Ishigami struct {
	A float64
	B float64
}

func NewIshigami() *Ishigami {
	return &Ishigami{A: 7.0, B: 0.1}
}

func (m *Ishigami) Evaluate(params, constants []float64) float64 {
	p1, p2, p3 := params[0], params[1], params[2]
	return math.Sin(p1) + m.A*math.Sin(p2)*math.Sin(p2) + m.B*math.Pow(p3, 4)*math.Sin(p1)
}

// CallOption prices a European call under Black-Scholes. Parameters are
// spot and volatility; constants are strike, risk-free rate and time to
// maturity.
type CallOption struct{}

func NewCallOption() *CallOption {
	return &CallOption{}
}

func (CallOption) Evaluate(params, constants []float64) float64 {
	spot, vol := params[0], params[1]
	strike, rate, maturity := constants[0], constants[1], constants[2]

	if spot <= 0 || vol <= 0 || maturity <= 0 {
		return math.Max(spot-strike*math.Exp(-rate*maturity), 0)
	}

	sqrtT := math.Sqrt(maturity)
	d1 := (math.Log(spot/strike) + (rate+0.5*vol*vol)*maturity) / (vol * sqrtT)
	d2 := d1 - vol*sqrtT

	return spot*stdNormCDF(d1) - strike*math.Exp(-rate*maturity)*stdNormCDF(d2)
}

func stdNormCDF(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}
