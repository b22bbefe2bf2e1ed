package experiment

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/varsense/internal/distribution"
	"github.com/san-kum/varsense/internal/model"
	"github.com/san-kum/varsense/internal/sensitivity"
)

// Definition bundles a model with the defaults needed to estimate
// sensitivity indices for it: marginals, constants and a target subset.
type Definition struct {
	Name        string
	Description string
	Build       func() sensitivity.Model
	Marginals   []sensitivity.Marginal
	Constants   []float64
	Targets     []int
}

// Dim returns the model's parameter count.
func (d Definition) Dim() int { return len(d.Marginals) }

type Registry struct {
	defs map[string]Definition
}

func NewRegistry() *Registry {
	r := &Registry{defs: make(map[string]Definition)}

	r.defs["linear"] = Definition{
		Name:        "linear",
		Description: "weighted sum of three normal parameters",
		Build:       func() sensitivity.Model { return model.NewLinear([]float64{1, 2, 3}) },
		Marginals: []sensitivity.Marginal{
			{Mean: 0, Variance: 1},
			{Mean: 0, Variance: 1},
			{Mean: 0, Variance: 1},
		},
		Targets: []int{1},
	}

	r.defs["gfunction"] = Definition{
		Name:        "gfunction",
		Description: "Sobol' g-function over four uniform parameters",
		Build:       func() sensitivity.Model { return model.NewGFunction([]float64{0, 0.5, 3, 9}) },
		Marginals: []sensitivity.Marginal{
			{Family: distribution.Uniform{}, Mean: 0.5, Variance: 1.0 / 12.0},
			{Family: distribution.Uniform{}, Mean: 0.5, Variance: 1.0 / 12.0},
			{Family: distribution.Uniform{}, Mean: 0.5, Variance: 1.0 / 12.0},
			{Family: distribution.Uniform{}, Mean: 0.5, Variance: 1.0 / 12.0},
		},
		Targets: []int{1},
	}

	r.defs["ishigami"] = Definition{
		Name:        "ishigami",
		Description: "Ishigami benchmark over uniform (-pi, pi) parameters",
		Build:       func() sensitivity.Model { return model.NewIshigami() },
		Marginals: []sensitivity.Marginal{
			{Family: distribution.Uniform{}, Mean: 0, Variance: math.Pi * math.Pi / 3},
			{Family: distribution.Uniform{}, Mean: 0, Variance: math.Pi * math.Pi / 3},
			{Family: distribution.Uniform{}, Mean: 0, Variance: math.Pi * math.Pi / 3},
		},
		Targets: []int{1},
	}

	r.defs["calloption"] = Definition{
		Name:        "calloption",
		Description: "Black-Scholes call price; constants are strike, rate, maturity",
		Build:       func() sensitivity.Model { return model.NewCallOption() },
		Marginals: []sensitivity.Marginal{
			{Mean: 100, Variance: 25},     // spot
			{Mean: 0.2, Variance: 0.0004}, // volatility
		},
		Constants: []float64{100, 0.05, 1},
		Targets:   []int{1},
	}

	return r
}

func (r *Registry) Get(name string) (Definition, error) {
	def, ok := r.defs[name]
	if !ok {
		return Definition{}, fmt.Errorf("unknown model: %s", name)
	}
	return def, nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
