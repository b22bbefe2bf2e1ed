package sensitivity

import "errors"

// Configuration and override errors. Construction fails fast so a
// misconfigured estimator can never produce silently wrong indices.
var (
	// ErrNilModel indicates construction without a model.
	ErrNilModel = errors.New("sensitivity: model is nil")

	// ErrNoMarginals indicates an empty distribution-parameter list.
	ErrNoMarginals = errors.New("sensitivity: no parameter marginals")

	// ErrSampleCount indicates a sample count below one.
	ErrSampleCount = errors.New("sensitivity: sample count must be >= 1")

	// ErrIndexRange indicates a target index outside [1, dim].
	ErrIndexRange = errors.New("sensitivity: target index out of range")

	// ErrOverrideLength indicates an uncertainty override vector whose
	// length does not match the parameter count.
	ErrOverrideLength = errors.New("sensitivity: uncertainty override length mismatch")
)
