package model

import "time"

// Sample is one timing measurement: the length of the scaled argument and
// the time the target took on it.
type Sample struct {
	Size    int           `yaml:"size"`
	Elapsed time.Duration `yaml:"elapsed"`
}

// Samples holds measurements in order of strictly increasing size.
type Samples []Sample

// Total returns the sum of all elapsed times.
func (s Samples) Total() time.Duration {
	var total time.Duration
	for _, sample := range s {
		total += sample.Elapsed
	}

	return total
}

// DistinctSizes returns the number of different sizes in the set.
func (s Samples) DistinctSizes() int {
	seen := make(map[int]struct{}, len(s))
	for _, sample := range s {
		seen[sample.Size] = struct{}{}
	}

	return len(seen)
}

// Rejection records an expected error returned by the target for one size.
type Rejection struct {
	Size    int    `yaml:"size"`
	Kind    string `yaml:"kind"`
	Message string `yaml:"message"`
}

// SweepResult is everything a sweep produced.
type SweepResult struct {
	Samples    Samples
	Rejections []Rejection
	Total      time.Duration
	Fit        FitResult
}
