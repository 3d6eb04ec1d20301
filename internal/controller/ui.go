// Package controller provides output adapters for displaying sweep progress and results.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "otime.dev/pkg/otime/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeView StartMode = iota
	ModeSweep
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode   StartMode
	target string
	steps  int
}

// WithViewMode sets the UI to display stored data only.
func WithViewMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeView
	}
}

// WithSweepMode sets the UI to follow a running sweep of the given number of steps.
func WithSweepMode(target string, steps int) StartOption {
	return func(c *StartConfig) {
		c.mode = ModeSweep
		c.target = target
		c.steps = steps
	}
}

func newStartConfig(options []StartOption) StartConfig {
	cfg := StartConfig{mode: ModeView}
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

// UI defines the interface for displaying sweeps and reports.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish rendering
	DisplayStep(ctx context.Context, outcome m.StepOutcome)
	DisplayReport(ctx context.Context, report m.Report) error
	DisplayReports(ctx context.Context, reports []m.Report) error
	DisplayTargets(ctx context.Context, targets []m.TargetInfo) error
}

// NewUI returns the interactive UI for terminals and the plain one otherwise.
func NewUI(cmd *cobra.Command, interactive bool) UI {
	if interactive {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
