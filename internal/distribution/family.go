package distribution

import "math"

// Family maps a uniform (0,1) variate to a sample from a distribution
// described by its mean and variance (inverse-transform sampling).
type Family interface {
	Name() string
	Quantile(u, mean, variance float64) float64
}

// Normal is the Gaussian family.
type Normal struct{}

func (Normal) Name() string { return "normal" }

func (Normal) Quantile(u, mean, variance float64) float64 {
	return mean + math.Sqrt(2*variance)*math.Erfinv(2*u-1)
}

// Uniform is the continuous uniform family. Mean and variance fix the
// support: a symmetric interval of half-width sqrt(3*variance) around
// the mean.
type Uniform struct{}

func (Uniform) Name() string { return "uniform" }

func (Uniform) Quantile(u, mean, variance float64) float64 {
	w := math.Sqrt(3 * variance)
	return mean - w + 2*w*u
}

// LogNormal exponentiates a Normal draw; mean and variance describe the
// underlying Gaussian, not the log-normal itself.
type LogNormal struct{}

func (LogNormal) Name() string { return "lognormal" }

func (LogNormal) Quantile(u, mean, variance float64) float64 {
	return math.Exp(Normal{}.Quantile(u, mean, variance))
}

// ByName returns the family registered under name, or nil.
func ByName(name string) Family {
	switch name {
	case "normal", "":
		return Normal{}
	case "uniform":
		return Uniform{}
	case "lognormal":
		return LogNormal{}
	default:
		return nil
	}
}
