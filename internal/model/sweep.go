// Package model defines the data structures for complexity sweeps.
package model

// Path represents a file system path.
type Path string

// DefaultMinAccuracy is the fit score a growth model must reach when the
// caller does not set one.
const DefaultMinAccuracy = 0.8

// Target is a function under measurement. The arguments are passed
// positionally; one of them is the sequence that grows during a sweep.
type Target func(args ...any) (any, error)

// SweepConfig describes a single sweep over growing input sizes.
type SweepConfig struct {
	Name        string
	Target      Target
	Index       int     // position of the scalable argument in Args
	MaxSize     int     // largest number of elements added to the base argument
	Step        int     // distance between consecutive sizes
	Args        []any   // base argument list; Args[Index] must be []int
	Expected    []error // errors the target may legitimately return
	MinAccuracy float64 // zero means DefaultMinAccuracy
}

// Accuracy returns the effective minimum accuracy.
func (c SweepConfig) Accuracy() float64 {
	if c.MinAccuracy == 0 {
		return DefaultMinAccuracy
	}

	return c.MinAccuracy
}
