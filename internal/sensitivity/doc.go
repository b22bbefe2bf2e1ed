// Package sensitivity implements a Saltelli-style quasi-Monte-Carlo
// estimator for Sobol' variance-based sensitivity indices.
//
// For a scalar model f(p, c) with uncertain parameters p and fixed
// constants c, the estimator reports how much of Var(f) a chosen
// parameter subset explains on its own (the first-order or "lower"
// index) and including all interactions (the total-effect index). Each
// iteration draws two independent parameter replicas from a
// low-discrepancy sequence, crosses them over the subset into hybrid
// argument vectors, and accumulates four running sums reduced once at
// the end:
//
//	mean     = Σf / N
//	variance = Σf² / N − mean²
//	lower    = Σ f·(f(arg1) − f(x2)) / N
//	total    = Σ (f − f(arg2))² / (2N)
//
// Indices are reported non-normalized (variance units) by default;
// Opts.Normalize divides them by the model variance. Estimators are not
// safe for concurrent use; EstimateParallel partitions iterations
// internally instead.
package sensitivity
