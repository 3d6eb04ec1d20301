package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	m "otime.dev/pkg/otime/internal/model"
)

const (
	maxProgressWidth = 60
	maxRejectLines   = 5
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	resultStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output  io.Writer
	mu      sync.Mutex
	program *tea.Program
	group   *errgroup.Group
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start launches the progress program for sweeps; other modes render statically.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := newStartConfig(options)
	if cfg.mode != ModeSweep {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	program := tea.NewProgram(
		newSweepModel(cfg.target, cfg.steps),
		tea.WithOutput(t.output),
		tea.WithInput(nil),
		tea.WithContext(ctx),
	)

	group, _ := errgroup.WithContext(ctx)
	group.Go(func() error {
		_, err := program.Run()
		return err
	})

	t.program = program
	t.group = group

	return nil
}

// Close stops the progress program if it is still running.
func (t *TUI) Close(_ context.Context) {
	if program := t.current(); program != nil {
		program.Quit()
	}
}

// Wait blocks until the progress program has drawn its last frame.
func (t *TUI) Wait(_ context.Context) {
	t.mu.Lock()
	group := t.group
	t.mu.Unlock()

	if group == nil {
		return
	}

	if err := group.Wait(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		slog.Error("TUI program failed", "error", err)
	}
}

// DisplayStep forwards a step to the progress program.
func (t *TUI) DisplayStep(ctx context.Context, outcome m.StepOutcome) {
	if err := ctx.Err(); err != nil {
		return
	}

	if program := t.current(); program != nil {
		program.Send(stepMsg(outcome))
	}
}

// DisplayReport hands the report to the progress program, which renders it
// as its final frame, or prints it when no sweep is running.
func (t *TUI) DisplayReport(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if program := t.current(); program != nil {
		program.Send(reportMsg(report))
		return nil
	}

	_, err := fmt.Fprint(t.output, styledReport(report))

	return err
}

// DisplayReports prints a table of stored reports.
func (t *TUI) DisplayReports(ctx context.Context, reports []m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Saved sweeps") + "\n\n")

	if len(reports) == 0 {
		b.WriteString(faintStyle.Render("  No reports found") + "\n")
	} else {
		b.WriteString(renderReportsTable(reports))
	}

	_, err := fmt.Fprint(t.output, b.String())

	return err
}

// DisplayTargets prints the registered targets.
func (t *TUI) DisplayTargets(ctx context.Context, targets []m.TargetInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := fmt.Fprint(t.output, titleStyle.Render("Targets")+"\n\n"+renderTargetsTable(targets))

	return err
}

func (t *TUI) current() *tea.Program {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.program
}

func styledReport(report m.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", titleStyle.Render(fmt.Sprintf("otime - %s", report.Target)))
	b.WriteString(renderSamplesTable(report.Samples, report.Total))

	for _, r := range report.Rejections {
		b.WriteString(warnStyle.Render(fmt.Sprintf("  %d: [%s] %s", r.Size, r.Kind, r.Message)) + "\n")
	}

	b.WriteString("\n")

	summary := fitSummary(report)
	if report.FitError != "" || !report.Fit.Accepted() {
		b.WriteString(errorStyle.Render(summary) + "\n")
	} else {
		b.WriteString(resultStyle.Render(summary) + "\n")
	}

	return b.String()
}

type stepMsg m.StepOutcome

type reportMsg m.Report

// sweepModel is the Bubble Tea model following a running sweep.
type sweepModel struct {
	target     string
	steps      int
	done       int
	recorded   int
	last       string
	rejections []string
	failure    error
	report     *m.Report
	bar        progress.Model
}

func newSweepModel(target string, steps int) sweepModel {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = maxProgressWidth

	return sweepModel{
		target: target,
		steps:  steps,
		bar:    bar,
	}
}

func (sm sweepModel) Init() tea.Cmd {
	return nil
}

func (sm sweepModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		sm.bar.Width = min(maxProgressWidth, max(10, msg.Width-4))
		return sm, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return sm, tea.Quit
		}

		return sm, nil

	case stepMsg:
		return sm.applyStep(m.StepOutcome(msg)), nil

	case reportMsg:
		report := m.Report(msg)
		sm.report = &report

		return sm, tea.Quit
	}

	return sm, nil
}

func (sm sweepModel) applyStep(outcome m.StepOutcome) sweepModel {
	sm.done++
	sm.last = stepLine(outcome)

	switch outcome.Kind {
	case m.StepRecorded:
		sm.recorded++
	case m.StepRejected:
		sm.rejections = append(sm.rejections, fmt.Sprintf("%d: [%s] %s", outcome.Size, outcome.ErrorKind, outcome.Message))
	case m.StepFatal:
		sm.failure = outcome.Err
	}

	return sm
}

func (sm sweepModel) percent() float64 {
	if sm.steps <= 0 {
		return 0
	}

	return min(1, float64(sm.done)/float64(sm.steps))
}

func (sm sweepModel) View() string {
	if sm.report != nil {
		return styledReport(*sm.report)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", titleStyle.Render(fmt.Sprintf("otime - %s", sm.target)))
	fmt.Fprintf(&b, "  %s %d/%d\n", sm.bar.ViewAs(sm.percent()), sm.done, sm.steps)

	if sm.last != "" {
		fmt.Fprintf(&b, "  %s\n", faintStyle.Render(sm.last))
	}

	rejections := sm.rejections
	if len(rejections) > maxRejectLines {
		rejections = rejections[len(rejections)-maxRejectLines:]
	}

	for _, line := range rejections {
		fmt.Fprintf(&b, "  %s\n", warnStyle.Render(line))
	}

	if sm.failure != nil {
		fmt.Fprintf(&b, "  %s\n", errorStyle.Render(sm.failure.Error()))
	}

	return b.String()
}
