package sensitivity

// Session accumulates Monte Carlo iterations incrementally so callers
// can watch the indices converge. Estimate drives a session internally;
// the live view advances one in batches. A session borrows the
// estimator's sequence generator and scratch buffers, so at most one
// session per estimator may be active.
type Session struct {
	e             *Estimator
	set           map[int]struct{}
	uncertainties []float64
	normalize     bool
	substituteCoV bool

	f0Sum float64
	dSum  float64
	dySum float64
	dtSum float64
	done  int
}

// Session validates the overrides and prepares an incremental estimate.
func (e *Estimator) Session(opts Opts) (*Session, error) {
	if n := len(opts.Uncertainties); n != 0 && n != e.dim {
		return nil, ErrOverrideLength
	}
	set, err := e.resolveSet(opts.Indices)
	if err != nil {
		return nil, err
	}
	return &Session{
		e:             e,
		set:           set,
		uncertainties: append([]float64(nil), opts.Uncertainties...),
		normalize:     opts.Normalize,
		substituteCoV: opts.SubstituteCoV,
	}, nil
}

// Advance runs n further iterations, four model evaluations each, in
// strict serial order.
func (s *Session) Advance(n int) {
	e := s.e
	for i := 0; i < n; i++ {
		e.seq.Next()
		e.transform(e.seq.Coordinate, s.uncertainties, s.substituteCoV, e.x1, e.x2)
		e.mix(s.set, e.x1, e.x2, e.arg1, e.arg2)

		f := e.model.Evaluate(e.x1, e.constants)
		f2 := e.model.Evaluate(e.x2, e.constants)
		m1 := e.model.Evaluate(e.arg1, e.constants)
		m2 := e.model.Evaluate(e.arg2, e.constants)

		s.f0Sum += f
		s.dSum += f * f
		s.dySum += f * (m1 - f2)
		s.dtSum += (f - m2) * (f - m2)
		s.done++
	}
}

// Iterations returns how many iterations have been accumulated.
func (s *Session) Iterations() int { return s.done }

// Reduce collapses the running sums into indices over the iterations so
// far. A negative variance is possible for few iterations and is
// returned as computed; clamping it would bias the estimate.
func (s *Session) Reduce() Result {
	if s.done == 0 {
		return Result{}
	}
	n := float64(s.done)

	mean := s.f0Sum / n
	variance := s.dSum/n - mean*mean
	lower := s.dySum / n
	total := s.dtSum / (2 * n)

	if s.normalize {
		lower /= variance
		total /= variance
	}

	return Result{
		LowerIndex:    lower,
		TotalIndex:    total,
		ModelVariance: variance,
		ModelMean:     mean,
		Samples:       s.done,
	}
}
