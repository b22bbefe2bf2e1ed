package sensitivity

import (
	"runtime"
	"sync"
)

// EstimateParallel computes the same indices as Estimate with the
// iterations partitioned across workers. Draws are taken from the
// sequence generator up front in serial order, so the point set matches
// the serial path; the four partial sums are then reduced with ordinary
// addition, which tolerates reassociation but is not guaranteed
// bit-identical to Estimate. workers <= 0 means GOMAXPROCS.
func (e *Estimator) EstimateParallel(opts Opts, workers int) (float64, error) {
	if n := len(opts.Uncertainties); n != 0 && n != e.dim {
		return 0, ErrOverrideLength
	}
	set, err := e.resolveSet(opts.Indices)
	if err != nil {
		return 0, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > e.samples {
		workers = e.samples
	}

	// Pre-partitioned draws keep the generator single-threaded.
	points := make([][]float64, e.samples)
	for i := range points {
		e.seq.Next()
		p := make([]float64, 2*e.dim)
		for k := range p {
			p[k] = e.seq.Coordinate(k)
		}
		points[i] = p
	}

	type partial struct{ f0, d, dy, dt float64 }
	partials := make([]partial, workers)

	chunk := (e.samples + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > e.samples {
			end = e.samples
		}
		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()

			x1 := make([]float64, e.dim)
			x2 := make([]float64, e.dim)
			arg1 := make([]float64, e.dim)
			arg2 := make([]float64, e.dim)

			var acc partial
			for i := start; i < end; i++ {
				p := points[i]
				e.transform(func(k int) float64 { return p[k] }, opts.Uncertainties, opts.SubstituteCoV, x1, x2)
				e.mix(set, x1, x2, arg1, arg2)

				f := e.model.Evaluate(x1, e.constants)
				f2 := e.model.Evaluate(x2, e.constants)
				m1 := e.model.Evaluate(arg1, e.constants)
				m2 := e.model.Evaluate(arg2, e.constants)

				acc.f0 += f
				acc.d += f * f
				acc.dy += f * (m1 - f2)
				acc.dt += (f - m2) * (f - m2)
			}
			partials[w] = acc
		}(w, start, end)
	}
	wg.Wait()

	s := Session{e: e, set: set, normalize: opts.Normalize, done: e.samples}
	for _, p := range partials {
		s.f0Sum += p.f0
		s.dSum += p.d
		s.dySum += p.dy
		s.dtSum += p.dt
	}
	r := s.Reduce()

	e.lowerIndex = r.LowerIndex
	e.totalIndex = r.TotalIndex
	e.modelVariance = r.ModelVariance
	e.modelMean = r.ModelMean
	e.lastSamples = r.Samples
	return r.TotalIndex, nil
}
