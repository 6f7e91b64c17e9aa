package sift

// SampleSpec describes a probabilistic sample of Rows.
//
// Fraction is the expected proportion of rows to retain, in (0,1]. The number of
// sampled rows is approximate: each row is retained independently (Bernoulli) or,
// when sampling WithReplacement, repeated a Poisson-distributed number of times.
//
// If Seed is set, sampling an unchanged dataset always produces the same rows, in
// the same order, across runs and process restarts. If Seed is nil, a fresh seed is
// drawn when the sample operation is applied to a DataFrame.
type SampleSpec struct {
	Fraction        float64
	WithReplacement bool
	Seed            *int64
}

// Seed is a convenience for populating SampleSpec.Seed
func Seed(seed int64) *int64 {
	return &seed
}
