package sensitivity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/varsense/internal/sequence"
)

// Estimator computes Sobol' first-order ("lower") and total-effect
// sensitivity indices for a parameter subset of a scalar model. Each
// Monte Carlo iteration draws two independent parameter replicas from a
// low-discrepancy sequence, assembles two hybrid argument vectors by
// mixing the replicas across the target subset, and evaluates the model
// four times. Not safe for concurrent use.
type Estimator struct {
	model     Model
	constants []float64
	targets   map[int]struct{}
	marginals []Marginal
	dim       int
	samples   int
	cov       float64

	seq Sequence

	// iteration-scoped scratch, meaningless between iterations
	x1, x2, arg1, arg2 []float64

	lowerIndex    float64
	totalIndex    float64
	modelVariance float64
	modelMean     float64
	lastSamples   int
}

// Option adjusts estimator construction.
type Option func(*options)

type options struct {
	seed int64
	cov  float64
	seq  Sequence
}

// WithSeed fixes the sequence generator's randomized start and
// permutation, making estimates reproducible.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

// WithCoV sets the coefficient-of-variation factor used by estimates
// that request CoV substitution. Defaults to 1.
func WithCoV(cov float64) Option {
	return func(o *options) { o.cov = cov }
}

// WithSequence replaces the default Halton generator.
func WithSequence(seq Sequence) Option {
	return func(o *options) { o.seq = seq }
}

// New builds an estimator for the given model and target subset.
// Targets are 1-based parameter positions; duplicates collapse. The
// parameter count is the length of marginals. Validation failures are
// rejected here rather than surfacing as wrong numbers later.
func New(model Model, constants []float64, targets []int, marginals []Marginal, samples int, opts ...Option) (*Estimator, error) {
	if model == nil {
		return nil, ErrNilModel
	}
	dim := len(marginals)
	if dim == 0 {
		return nil, ErrNoMarginals
	}
	if samples < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrSampleCount, samples)
	}

	targetSet := make(map[int]struct{}, len(targets))
	for _, j := range targets {
		if j < 1 || j > dim {
			return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrIndexRange, j, dim)
		}
		targetSet[j] = struct{}{}
	}

	o := options{cov: 1.0}
	for _, opt := range opts {
		opt(&o)
	}

	seq := o.seq
	if seq == nil {
		// 2*dim coordinates per draw: the first dim feed replica one,
		// the second dim feed replica two.
		seq = sequence.NewHalton(2*dim, true, true, o.seed)
	}

	e := &Estimator{
		model:     model,
		constants: append([]float64(nil), constants...),
		targets:   targetSet,
		marginals: append([]Marginal(nil), marginals...),
		dim:       dim,
		samples:   samples,
		cov:       o.cov,
		seq:       seq,
		x1:        make([]float64, dim),
		x2:        make([]float64, dim),
		arg1:      make([]float64, dim),
		arg2:      make([]float64, dim),
	}
	return e, nil
}

// Opts carries per-estimate overrides. The zero value reproduces the
// estimator's configured behavior.
type Opts struct {
	// Uncertainties replaces each parameter's variance for this estimate.
	// Empty means "use the configured marginal variances"; any other
	// length must equal the parameter count.
	Uncertainties []float64

	// Indices replaces the mixing subset for this estimate, 1-based.
	// Empty means "use the configured target set". Used by CoV sweeps to
	// probe the complement set.
	Indices []int

	// Normalize divides the reported indices by the model variance,
	// turning them into the usual dimensionless Sobol' indices.
	Normalize bool

	// SubstituteCoV replaces the variance of every configured-target
	// parameter with (mean*CoV)^2 after uncertainty resolution. Only the
	// original target set is substituted, regardless of Indices.
	SubstituteCoV bool
}

// Estimate runs the configured number of Monte Carlo iterations and
// reduces the four running sums into the sensitivity indices. It returns
// the total-effect index and overwrites the estimator's result fields.
// The sequence generator legitimately advances across calls; everything
// else about the configuration is left untouched.
func (e *Estimator) Estimate(opts Opts) (float64, error) {
	s, err := e.Session(opts)
	if err != nil {
		return 0, err
	}
	s.Advance(e.samples)
	r := s.Reduce()
	e.lowerIndex = r.LowerIndex
	e.totalIndex = r.TotalIndex
	e.modelVariance = r.ModelVariance
	e.modelMean = r.ModelMean
	e.lastSamples = r.Samples
	return r.TotalIndex, nil
}

// resolveSet returns the mixing subset for an estimate call.
func (e *Estimator) resolveSet(indices []int) (map[int]struct{}, error) {
	if len(indices) == 0 {
		return e.targets, nil
	}
	set := make(map[int]struct{}, len(indices))
	for _, j := range indices {
		if j < 1 || j > e.dim {
			return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrIndexRange, j, e.dim)
		}
		set[j] = struct{}{}
	}
	return set, nil
}

// transform maps the current draw into the model domain: coordinate j
// feeds replica one, coordinate j+dim feeds replica two, each inverted
// through the parameter's marginal at the resolved variance.
func (e *Estimator) transform(coord func(int) float64, uncertainties []float64, substituteCoV bool, x1, x2 []float64) {
	for j := 0; j < e.dim; j++ {
		u1 := coord(j)
		u2 := coord(j + e.dim)

		m := e.marginals[j]
		variance := m.Variance
		if len(uncertainties) > 0 {
			variance = uncertainties[j]
		}
		if substituteCoV {
			if _, ok := e.targets[j+1]; ok {
				variance = (m.Mean * e.cov) * (m.Mean * e.cov)
			}
		}

		fam := m.family()
		x1[j] = fam.Quantile(u1, m.Mean, variance)
		x2[j] = fam.Quantile(u2, m.Mean, variance)
	}
}

// mix builds the hybrid argument vectors: arg1 keeps replica one on the
// subset and replica two elsewhere, arg2 is the complementary hybrid.
func (e *Estimator) mix(set map[int]struct{}, x1, x2, arg1, arg2 []float64) {
	for j := 1; j <= e.dim; j++ {
		if _, ok := set[j]; ok {
			arg1[j-1] = x1[j-1]
			arg2[j-1] = x2[j-1]
		} else {
			arg1[j-1] = x2[j-1]
			arg2[j-1] = x1[j-1]
		}
	}
}

// Dim returns the parameter count.
func (e *Estimator) Dim() int { return e.dim }

// Samples returns the configured Monte Carlo iteration count.
func (e *Estimator) Samples() int { return e.samples }

// CoV returns the coefficient-of-variation factor.
func (e *Estimator) CoV() float64 { return e.cov }

// Targets returns the configured target subset in ascending order.
func (e *Estimator) Targets() []int {
	out := make([]int, 0, len(e.targets))
	for j := range e.targets {
		out = append(out, j)
	}
	sort.Ints(out)
	return out
}

// Complement returns the 1-based parameter positions outside the
// configured target subset, in ascending order.
func (e *Estimator) Complement() []int {
	out := make([]int, 0, e.dim-len(e.targets))
	for j := 1; j <= e.dim; j++ {
		if _, ok := e.targets[j]; !ok {
			out = append(out, j)
		}
	}
	return out
}

// Marginals returns a copy of the per-parameter distribution settings.
func (e *Estimator) Marginals() []Marginal {
	return append([]Marginal(nil), e.marginals...)
}

// LowerIndex returns the first-order index from the last estimate.
func (e *Estimator) LowerIndex() float64 { return e.lowerIndex }

// TotalIndex returns the total-effect index from the last estimate.
func (e *Estimator) TotalIndex() float64 { return e.totalIndex }

// ModelVariance returns the output variance from the last estimate.
func (e *Estimator) ModelVariance() float64 { return e.modelVariance }

// ModelMean returns the output mean from the last estimate.
func (e *Estimator) ModelMean() float64 { return e.modelMean }

// Result returns a snapshot of the last estimate.
func (e *Estimator) Result() Result {
	return Result{
		LowerIndex:    e.lowerIndex,
		TotalIndex:    e.totalIndex,
		ModelVariance: e.modelVariance,
		ModelMean:     e.modelMean,
		Samples:       e.lastSamples,
	}
}

// Describe renders the configuration and last results as a labeled,
// human-readable listing for debugging.
func (e *Estimator) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "dim: %d\n", e.dim)
	fmt.Fprintf(&b, "samples: %d\n", e.samples)
	fmt.Fprintf(&b, "cov: %g\n", e.cov)
	fmt.Fprintf(&b, "targets: %v\n", e.Targets())
	fmt.Fprintf(&b, "constants: %v\n", e.constants)
	fmt.Fprintf(&b, "lowerIndex: %g\n", e.lowerIndex)
	fmt.Fprintf(&b, "totalIndex: %g\n", e.totalIndex)
	fmt.Fprintf(&b, "modelVariance: %g\n", e.modelVariance)
	fmt.Fprintf(&b, "modelMean: %g\n", e.modelMean)
	b.WriteString("marginals:\n")
	for j, m := range e.marginals {
		fmt.Fprintf(&b, "  p%d: %s mean=%g variance=%g\n", j+1, m.family().Name(), m.Mean, m.Variance)
	}
	return b.String()
}
