package distribution

import (
	"math"
	"testing"
)

func TestNormalQuantile(t *testing.T) {
	n := Normal{}

	if v := n.Quantile(0.5, 0, 1); math.Abs(v) > 1e-12 {
		t.Errorf("median of standard normal should be 0, got %f", v)
	}

	// 97.5th percentile of the standard normal.
	if v := n.Quantile(0.975, 0, 1); math.Abs(v-1.959964) > 1e-4 {
		t.Errorf("expected ~1.96, got %f", v)
	}

	// Location-scale shift.
	if v := n.Quantile(0.5, 3, 4); math.Abs(v-3) > 1e-12 {
		t.Errorf("median should equal mean, got %f", v)
	}
}

func TestNormalQuantileMonotone(t *testing.T) {
	n := Normal{}
	prev := math.Inf(-1)
	for u := 0.01; u < 1.0; u += 0.01 {
		v := n.Quantile(u, 0, 2)
		if v <= prev {
			t.Fatalf("quantile not increasing at u=%f", u)
		}
		prev = v
	}
}

func TestUniformQuantile(t *testing.T) {
	u := Uniform{}

	// Variance 1/12 gives the unit interval around mean 0.5.
	if v := u.Quantile(0, 0.5, 1.0/12.0); math.Abs(v) > 1e-12 {
		t.Errorf("expected left endpoint 0, got %f", v)
	}
	if v := u.Quantile(1, 0.5, 1.0/12.0); math.Abs(v-1) > 1e-12 {
		t.Errorf("expected right endpoint 1, got %f", v)
	}
}

func TestLogNormalPositive(t *testing.T) {
	ln := LogNormal{}
	for _, u := range []float64{0.01, 0.25, 0.5, 0.75, 0.99} {
		if v := ln.Quantile(u, 0, 1); v <= 0 {
			t.Errorf("lognormal sample must be positive, got %f at u=%f", v, u)
		}
	}
}

func TestByName(t *testing.T) {
	if f := ByName("normal"); f == nil || f.Name() != "normal" {
		t.Error("expected normal family")
	}
	if f := ByName(""); f == nil || f.Name() != "normal" {
		t.Error("empty name should default to normal")
	}
	if f := ByName("cauchy"); f != nil {
		t.Error("expected nil for unknown family")
	}
}
