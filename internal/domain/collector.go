// Package domain contains the sweep pipeline: timing, input scaling, sample
// collection and model fitting, plus the workflow behind the CLI.
package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	m "otime.dev/pkg/otime/internal/model"
)

// StepObserver is told about every step of a sweep as it completes.
type StepObserver interface {
	DisplayStep(ctx context.Context, outcome m.StepOutcome)
}

// Collector runs sweeps and fits the collected samples.
type Collector interface {
	Sweep(ctx context.Context, cfg m.SweepConfig) (m.SweepResult, error)
}

type collector struct {
	scaler   Scaler
	fitter   Fitter
	clock    Clock
	observer StepObserver
}

// CollectorOption configures a Collector.
type CollectorOption func(*collector)

// WithClock overrides the clock used to time the target.
func WithClock(clock Clock) CollectorOption {
	return func(c *collector) {
		c.clock = clock
	}
}

// WithObserver registers an observer for step progress.
func WithObserver(observer StepObserver) CollectorOption {
	return func(c *collector) {
		c.observer = observer
	}
}

// NewCollector constructs a Collector backed by the provided scaler and fitter.
func NewCollector(scaler Scaler, fitter Fitter, options ...CollectorOption) Collector {
	c := &collector{
		scaler: scaler,
		fitter: fitter,
		clock:  DefaultClock,
	}

	for _, opt := range options {
		opt(c)
	}

	return c
}

// Sweep runs the target once per size, strictly one after another, and
// fits the recorded samples. When the fit cannot be made for lack of data
// the result is returned along with an ErrInsufficientData error.
func (c *collector) Sweep(ctx context.Context, cfg m.SweepConfig) (m.SweepResult, error) {
	if cfg.Target == nil {
		return m.SweepResult{}, ErrNoFunction
	}

	base, err := validateConfig(cfg)
	if err != nil {
		return m.SweepResult{}, err
	}

	sizes := sweepSizes(cfg.MaxSize, cfg.Step)
	result := m.SweepResult{Fit: m.FitResult{Degree: m.NoDegree}}

	slog.Info("Starting sweep", "target", cfg.Name, "steps", len(sizes), "maxSize", cfg.MaxSize, "step", cfg.Step)

	for i, added := range sizes {
		outcome := c.runStep(cfg, base, added)
		outcome.Index = i
		outcome.Steps = len(sizes)
		c.notify(ctx, outcome)

		switch outcome.Kind {
		case m.StepRecorded:
			result.Samples = append(result.Samples, outcome.Sample())
		case m.StepRejected:
			slog.Info("Target rejected input", "target", cfg.Name, "size", outcome.Size, "kind", outcome.ErrorKind, "message", outcome.Message)
			result.Rejections = append(result.Rejections, outcome.Rejection())
		case m.StepFatal:
			slog.Error("Sweep aborted", "target", cfg.Name, "size", outcome.Size, "error", outcome.Err)
			return result, outcome.Err
		}
	}

	result.Total = result.Samples.Total()
	slog.Info("Sweep finished", "target", cfg.Name, "samples", len(result.Samples), "rejections", len(result.Rejections), "total", result.Total)

	fit, err := c.fitter.Fit(result.Samples, cfg.Accuracy())
	result.Fit = fit

	if err != nil {
		return result, fmt.Errorf("fit %s: %w", cfg.Name, err)
	}

	return result, nil
}

// runStep scales the base argument, calls the target and classifies what happened.
func (c *collector) runStep(cfg m.SweepConfig, base []int, added int) (outcome m.StepOutcome) {
	scaled := c.scaler.Scale(base, added)

	args := make([]any, len(cfg.Args))
	copy(args, cfg.Args)
	args[cfg.Index] = scaled

	outcome = m.StepOutcome{Added: added, Size: len(scaled)}

	// A panicking target was handed arguments it cannot work with.
	defer func() {
		if r := recover(); r != nil {
			outcome.Kind = m.StepFatal
			outcome.Err = fmt.Errorf("%w: %v", ErrInvalidParameters, r)
		}
	}()

	_, elapsed, err := Measure(c.clock, func() (any, error) {
		return cfg.Target(args...)
	})

	switch {
	case err == nil:
		outcome.Kind = m.StepRecorded
		outcome.Elapsed = elapsed
	case expectedKind(err, cfg.Expected) != nil:
		outcome.Kind = m.StepRejected
		outcome.ErrorKind = expectedKind(err, cfg.Expected).Error()
		outcome.Message = err.Error()
	default:
		outcome.Kind = m.StepFatal
		outcome.Err = fmt.Errorf("%w: %w", ErrInvalidParameters, err)
	}

	return outcome
}

func (c *collector) notify(ctx context.Context, outcome m.StepOutcome) {
	if c.observer == nil {
		return
	}

	c.observer.DisplayStep(ctx, outcome)
}

// expectedKind returns the declared error that err matches, or nil.
func expectedKind(err error, expected []error) error {
	for _, kind := range expected {
		if kind != nil && errors.Is(err, kind) {
			return kind
		}
	}

	return nil
}

func validateConfig(cfg m.SweepConfig) ([]int, error) {
	if cfg.Step <= 0 {
		return nil, fmt.Errorf("%w: step must be positive, got %d", ErrInvalidConfig, cfg.Step)
	}

	if cfg.MaxSize < cfg.Step {
		return nil, fmt.Errorf("%w: max size %d is smaller than step %d", ErrInvalidConfig, cfg.MaxSize, cfg.Step)
	}

	if cfg.MinAccuracy < 0 || cfg.MinAccuracy > 1 {
		return nil, fmt.Errorf("%w: min accuracy must be within [0, 1], got %g", ErrInvalidConfig, cfg.MinAccuracy)
	}

	if cfg.Index < 0 || cfg.Index >= len(cfg.Args) {
		return nil, fmt.Errorf("%w: index %d out of range for %d argument(s)", ErrInvalidConfig, cfg.Index, len(cfg.Args))
	}

	base, ok := cfg.Args[cfg.Index].([]int)
	if !ok {
		return nil, fmt.Errorf("%w: argument %d is %T, not a sequence", ErrInvalidConfig, cfg.Index, cfg.Args[cfg.Index])
	}

	return base, nil
}

// sweepSizes lists the element counts added at each step: 0, step, 2*step, ...
// with the last one clamped to maxSize.
func sweepSizes(maxSize, step int) []int {
	sizes := make([]int, 0, maxSize/step+2)
	for size := 0; size < maxSize; size += step {
		sizes = append(sizes, size)
	}

	return append(sizes, maxSize)
}
