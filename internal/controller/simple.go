package controller

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	m "otime.dev/pkg/otime/internal/model"
)

// SimpleUI implements UI by printing plain lines to the command output.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start announces a sweep.
func (s *SimpleUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := newStartConfig(options)
	if cfg.mode == ModeSweep {
		s.printf("Sweeping %s over %d sizes\n", cfg.target, cfg.steps)
	}

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
	// SimpleUI doesn't block - it just prints and continues
}

// DisplayStep prints one line per processed size.
func (s *SimpleUI) DisplayStep(ctx context.Context, outcome m.StepOutcome) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s\n", stepLine(outcome))
}

// DisplayReport prints the samples table and the fit of a report.
func (s *SimpleUI) DisplayReport(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderReport(report))

	return nil
}

// DisplayReports prints a table of stored reports.
func (s *SimpleUI) DisplayReports(ctx context.Context, reports []m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(reports) == 0 {
		s.printf("No reports found\n")
		return nil
	}

	s.printf("%s", renderReportsTable(reports))

	return nil
}

// DisplayTargets prints the registered targets.
func (s *SimpleUI) DisplayTargets(ctx context.Context, targets []m.TargetInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", renderTargetsTable(targets))

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
