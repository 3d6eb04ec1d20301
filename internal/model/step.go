package model

import "time"

// StepKind is the variant of a StepOutcome.
type StepKind int

const (
	// StepRecorded means the target succeeded and a sample was taken.
	StepRecorded StepKind = iota
	// StepRejected means the target returned one of the expected errors.
	StepRejected
	// StepFatal means the target failed in a way the sweep cannot tolerate.
	StepFatal
)

func (k StepKind) String() string {
	switch k {
	case StepRecorded:
		return "recorded"
	case StepRejected:
		return "rejected"
	case StepFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// StepOutcome is the result of running the target at one size.
type StepOutcome struct {
	Kind    StepKind
	Index   int // position of the step in the sweep, starting at 0
	Steps   int // total number of steps in the sweep
	Added   int // elements added to the base argument
	Size    int // length of the scaled argument
	Elapsed time.Duration
	// ErrorKind and Message describe a rejection.
	ErrorKind string
	Message   string
	Err       error // set for StepFatal
}

// Sample returns the measurement of a recorded step.
func (o StepOutcome) Sample() Sample {
	return Sample{Size: o.Size, Elapsed: o.Elapsed}
}

// Rejection returns the rejection of a rejected step.
func (o StepOutcome) Rejection() Rejection {
	return Rejection{Size: o.Size, Kind: o.ErrorKind, Message: o.Message}
}
