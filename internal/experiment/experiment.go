package experiment

import (
	"fmt"

	"github.com/san-kum/varsense/internal/sensitivity"
)

// Config selects a registered model and how to estimate its indices.
// Zero-value fields fall back to the model definition's defaults.
type Config struct {
	Model     string
	Targets   []int
	Samples   int
	Seed      int64
	CoV       float64
	Normalize bool
	Workers   int // 0 = serial estimation

	// Marginals replaces the definition's per-parameter distributions.
	// Empty keeps the defaults; any other length must match the model's
	// parameter count.
	Marginals []sensitivity.Marginal

	// Constants replaces the definition's model constants. Empty keeps
	// the defaults; any other length must match the definition's.
	Constants []float64
}

// Experiment wires a model definition into a configured estimator.
type Experiment struct {
	cfg       Config
	def       Definition
	estimator *sensitivity.Estimator
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(def Definition) error {
	targets := e.cfg.Targets
	if len(targets) == 0 {
		targets = def.Targets
	}
	samples := e.cfg.Samples
	if samples == 0 {
		samples = 10000
	}

	marginals := def.Marginals
	if len(e.cfg.Marginals) > 0 {
		if len(e.cfg.Marginals) != def.Dim() {
			return fmt.Errorf("experiment: %d marginal overrides for %d parameters", len(e.cfg.Marginals), def.Dim())
		}
		marginals = e.cfg.Marginals
	}
	constants := def.Constants
	if len(e.cfg.Constants) > 0 {
		if len(e.cfg.Constants) != len(def.Constants) {
			return fmt.Errorf("experiment: %d constant overrides, model %s takes %d", len(e.cfg.Constants), def.Name, len(def.Constants))
		}
		constants = e.cfg.Constants
	}

	opts := []sensitivity.Option{sensitivity.WithSeed(e.cfg.Seed)}
	if e.cfg.CoV != 0 {
		opts = append(opts, sensitivity.WithCoV(e.cfg.CoV))
	}

	est, err := sensitivity.New(def.Build(), constants, targets, marginals, samples, opts...)
	if err != nil {
		return err
	}
	e.def = def
	e.estimator = est
	return nil
}

// Run performs one estimation and returns the reduced result.
func (e *Experiment) Run() (sensitivity.Result, error) {
	if e.estimator == nil {
		return sensitivity.Result{}, fmt.Errorf("experiment not setup")
	}

	opts := sensitivity.Opts{Normalize: e.cfg.Normalize}
	var err error
	if e.cfg.Workers > 1 {
		_, err = e.estimator.EstimateParallel(opts, e.cfg.Workers)
	} else {
		_, err = e.estimator.Estimate(opts)
	}
	if err != nil {
		return sensitivity.Result{}, err
	}
	return e.estimator.Result(), nil
}

// Estimator returns the underlying estimator for sweeps and live views.
func (e *Experiment) Estimator() *sensitivity.Estimator {
	return e.estimator
}

// Definition returns the model definition the experiment was setup with.
func (e *Experiment) Definition() Definition {
	return e.def
}
