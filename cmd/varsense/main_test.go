package main

import (
	"testing"

	"github.com/san-kum/varsense/internal/config"
)

func TestMarginalsFromConfig(t *testing.T) {
	marginals, err := marginalsFromConfig([]config.MarginalConfig{
		{Family: "", Mean: 1, Variance: 2},
		{Family: "uniform", Mean: 0.5, Variance: 1.0 / 12},
		{Family: "lognormal", Mean: 1, Variance: 0.25},
	})
	if err != nil {
		t.Fatalf("conversion failed: %v", err)
	}
	if len(marginals) != 3 {
		t.Fatalf("expected 3 marginals, got %d", len(marginals))
	}
	if marginals[0].Family.Name() != "normal" {
		t.Errorf("empty family should resolve to normal, got %s", marginals[0].Family.Name())
	}
	if marginals[1].Family.Name() != "uniform" || marginals[2].Family.Name() != "lognormal" {
		t.Errorf("family names not preserved: %s, %s", marginals[1].Family.Name(), marginals[2].Family.Name())
	}
	if marginals[0].Mean != 1 || marginals[0].Variance != 2 {
		t.Errorf("mean/variance not carried over: %+v", marginals[0])
	}
}

func TestMarginalsFromConfigUnknownFamily(t *testing.T) {
	if _, err := marginalsFromConfig([]config.MarginalConfig{{Family: "cauchy"}}); err == nil {
		t.Error("expected error for unknown family")
	}
}
