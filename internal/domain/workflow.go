package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"otime.dev/pkg/otime/internal/adapter"
	"otime.dev/pkg/otime/internal/controller"
	m "otime.dev/pkg/otime/internal/model"
	"otime.dev/pkg/otime/internal/targets"
)

// RunArgs contains the arguments for sweeping a registered target.
type RunArgs struct {
	Target      string
	MaxSize     int
	Step        int
	Index       int   // negative keeps the target's own scalable argument
	Base        []int // nil keeps the target's default sequence
	MinAccuracy float64
	MaxDegree   int
	ScaleMin    int
	ScaleMax    int
	Reports     m.Path
}

// FitArgs contains the arguments for re-fitting a saved report.
type FitArgs struct {
	Reports     m.Path
	ID          string // empty selects the most recent report
	MinAccuracy float64
	MaxDegree   int
}

// ViewArgs contains the arguments for viewing saved reports.
type ViewArgs struct {
	Reports m.Path
	ID      string // empty lists every report
}

// Workflow defines the operations behind the CLI commands.
type Workflow interface {
	Run(ctx context.Context, args RunArgs) error
	Fit(ctx context.Context, args FitArgs) error
	View(ctx context.Context, args ViewArgs) error
	List(ctx context.Context) error
}

type workflow struct {
	adapter.ReportStore
	controller.UI
	clock Clock
	seed  *uint64
	now   func() time.Time
}

// WorkflowOption configures a Workflow.
type WorkflowOption func(*workflow)

// WithSweepClock sets the clock used to time targets during Run.
func WithSweepClock(clock Clock) WorkflowOption {
	return func(w *workflow) {
		w.clock = clock
	}
}

// WithScalerSeed makes the values inserted during Run reproducible.
func WithScalerSeed(seed uint64) WorkflowOption {
	return func(w *workflow) {
		w.seed = &seed
	}
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(reportStore adapter.ReportStore, ui controller.UI, options ...WorkflowOption) Workflow {
	w := &workflow{
		ReportStore: reportStore,
		UI:          ui,
		clock:       DefaultClock,
		now:         time.Now,
	}

	for _, opt := range options {
		opt(w)
	}

	return w
}

// Run sweeps a registered target, shows the result and saves it as a report.
// A sweep whose samples cannot be fitted is still saved; its error is returned
// afterwards.
func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	cfg, err := w.sweepConfig(args)
	if err != nil {
		return err
	}

	base, err := validateConfig(cfg)
	if err != nil {
		return err
	}

	if err := w.Start(ctx, controller.WithSweepMode(cfg.Name, len(sweepSizes(cfg.MaxSize, cfg.Step)))); err != nil {
		slog.Error("Failed to start UI", "error", err)
		return err
	}

	slog.Debug("Sweep configured", "target", cfg.Name, "index", cfg.Index, "base", len(base))

	result, sweepErr := w.collector(args).Sweep(ctx, cfg)
	if sweepErr != nil && !errors.Is(sweepErr, ErrInsufficientData) {
		w.Close(ctx)
		w.Wait(ctx)

		return fmt.Errorf("sweep %s: %w", cfg.Name, sweepErr)
	}

	report := w.newReport(cfg, result, sweepErr)

	if err := w.DisplayReport(ctx, report); err != nil {
		w.Close(ctx)
		w.Wait(ctx)
		slog.Error("Failed to display report", "error", err)

		return fmt.Errorf("display: %w", err)
	}

	w.Wait(ctx)
	w.Close(ctx)

	path, err := w.SaveReport(ctx, args.Reports, report)
	if err != nil {
		slog.Error("Failed to save report", "id", report.ID, "error", err)
		return fmt.Errorf("save report: %w", err)
	}

	slog.Info("Saved report", "id", report.ID, "path", path)

	return sweepErr
}

// Fit re-runs model selection over the samples of a saved report.
func (w *workflow) Fit(ctx context.Context, args FitArgs) error {
	report, err := w.findReport(ctx, args.Reports, args.ID)
	if err != nil {
		return err
	}

	accuracy := args.MinAccuracy
	if accuracy == 0 {
		accuracy = report.MinAccuracy
	}

	if accuracy < 0 || accuracy > 1 {
		return fmt.Errorf("%w: min accuracy must be within [0, 1], got %g", ErrInvalidConfig, accuracy)
	}

	accuracy = m.SweepConfig{MinAccuracy: accuracy}.Accuracy()

	fit, fitErr := NewFitter(args.MaxDegree).Fit(report.Samples, accuracy)
	report.Fit = fit
	report.MinAccuracy = accuracy
	report.FitError = ""

	if fitErr != nil {
		report.FitError = fitErr.Error()
	}

	if err := w.show(ctx, func() error { return w.DisplayReport(ctx, report) }); err != nil {
		return err
	}

	return fitErr
}

// View shows one saved report, or a table of all of them.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	if args.ID != "" {
		report, err := w.LoadReport(ctx, args.Reports, args.ID)
		if err != nil {
			slog.Error("Failed to load report", "id", args.ID, "error", err)
			return fmt.Errorf("load report: %w", err)
		}

		return w.show(ctx, func() error { return w.DisplayReport(ctx, report) })
	}

	reports, err := w.LoadReports(ctx, args.Reports)
	if err != nil {
		slog.Error("Failed to load reports", "error", err)
		return fmt.Errorf("load reports: %w", err)
	}

	return w.show(ctx, func() error { return w.DisplayReports(ctx, reports) })
}

// List shows the registered targets.
func (w *workflow) List(ctx context.Context) error {
	all := targets.All()

	infos := make([]m.TargetInfo, 0, len(all))
	for _, t := range all {
		infos = append(infos, t.Info())
	}

	return w.show(ctx, func() error { return w.DisplayTargets(ctx, infos) })
}

func (w *workflow) show(ctx context.Context, display func() error) error {
	if err := w.Start(ctx, controller.WithViewMode()); err != nil {
		slog.Error("Failed to start UI", "error", err)
		return err
	}

	defer w.Close(ctx)

	if err := display(); err != nil {
		slog.Error("Failed to display", "error", err)
		return fmt.Errorf("display: %w", err)
	}

	return nil
}

func (w *workflow) sweepConfig(args RunArgs) (m.SweepConfig, error) {
	target, ok := targets.Lookup(args.Target)
	if !ok {
		return m.SweepConfig{}, fmt.Errorf("%w: %q", ErrUnknownTarget, args.Target)
	}

	cfg := target.Config(args.MaxSize, args.Step, nil, args.MinAccuracy)
	if args.Index >= 0 {
		cfg.Index = args.Index
	}

	if args.Base != nil && cfg.Index < len(cfg.Args) {
		cfg.Args[cfg.Index] = slices.Clone(args.Base)
	}

	return cfg, nil
}

func (w *workflow) collector(args RunArgs) Collector {
	scalerOptions := []ScalerOption{WithValueRange(args.ScaleMin, args.ScaleMax)}
	if args.ScaleMin == 0 && args.ScaleMax == 0 {
		scalerOptions = nil
	}

	if w.seed != nil {
		scalerOptions = append(scalerOptions, WithSeed(*w.seed))
	}

	return NewCollector(
		NewScaler(scalerOptions...),
		NewFitter(args.MaxDegree),
		WithClock(w.clock),
		WithObserver(w.UI),
	)
}

func (w *workflow) newReport(cfg m.SweepConfig, result m.SweepResult, fitErr error) m.Report {
	report := m.Report{
		ID:          uuid.NewString(),
		Target:      cfg.Name,
		CreatedAt:   w.now().UTC(),
		MaxSize:     cfg.MaxSize,
		Step:        cfg.Step,
		Index:       cfg.Index,
		MinAccuracy: cfg.Accuracy(),
		Samples:     result.Samples,
		Rejections:  result.Rejections,
		Total:       result.Total,
		Fit:         result.Fit,
	}

	if fitErr != nil {
		report.FitError = fitErr.Error()
	}

	return report
}

// findReport loads the report with the given ID, or the most recent one.
func (w *workflow) findReport(ctx context.Context, dir m.Path, id string) (m.Report, error) {
	if id != "" {
		report, err := w.LoadReport(ctx, dir, id)
		if err != nil {
			slog.Error("Failed to load report", "id", id, "error", err)
			return m.Report{}, fmt.Errorf("load report: %w", err)
		}

		return report, nil
	}

	reports, err := w.LoadReports(ctx, dir)
	if err != nil {
		slog.Error("Failed to load reports", "error", err)
		return m.Report{}, fmt.Errorf("load reports: %w", err)
	}

	if len(reports) == 0 {
		return m.Report{}, fmt.Errorf("%w in %s", adapter.ErrReportNotFound, dir)
	}

	return reports[len(reports)-1], nil
}
