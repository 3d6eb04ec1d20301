package controller

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "otime.dev/pkg/otime/internal/model"
)

func newTestSimpleUI() (*SimpleUI, *bytes.Buffer) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	return NewSimpleUI(cmd), &buf
}

func testReport() m.Report {
	return m.Report{
		ID:          "5f1c7e1a-aaaa-bbbb-cccc-000000000000",
		Target:      "contains",
		CreatedAt:   time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC),
		MaxSize:     2000,
		Step:        1000,
		MinAccuracy: 0.8,
		Samples: m.Samples{
			{Size: 3, Elapsed: time.Microsecond},
			{Size: 1003, Elapsed: 500 * time.Microsecond},
			{Size: 2003, Elapsed: time.Millisecond},
		},
		Total: 1501 * time.Microsecond,
		Fit:   m.FitResult{Degree: 1, Accuracy: 0.9987},
	}
}

func TestSimpleUI_StartSweepMode(t *testing.T) {
	ui, buf := newTestSimpleUI()

	require.NoError(t, ui.Start(context.Background(), WithSweepMode("sum", 6)))
	assert.Contains(t, buf.String(), "Sweeping sum over 6 sizes")
}

func TestSimpleUI_StartViewModeIsSilent(t *testing.T) {
	ui, buf := newTestSimpleUI()

	require.NoError(t, ui.Start(context.Background(), WithViewMode()))
	assert.Empty(t, buf.String())
}

func TestSimpleUI_DisplayStep(t *testing.T) {
	tests := []struct {
		name    string
		outcome m.StepOutcome
		want    string
	}{
		{
			name:    "recorded",
			outcome: m.StepOutcome{Kind: m.StepRecorded, Size: 1003, Elapsed: 1500 * time.Microsecond},
			want:    "Running with 1003 elements... 0.0015s",
		},
		{
			name:    "rejected",
			outcome: m.StepOutcome{Kind: m.StepRejected, Size: 3, ErrorKind: "value not found", Message: "value not found: 9"},
			want:    "Running with 3 elements... [value not found] value not found: 9",
		},
		{
			name:    "fatal",
			outcome: m.StepOutcome{Kind: m.StepFatal, Size: 3, Err: errors.New("boom")},
			want:    "Running with 3 elements... failed: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui, buf := newTestSimpleUI()
			ui.DisplayStep(context.Background(), tt.outcome)
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestSimpleUI_DisplayReport(t *testing.T) {
	ui, buf := newTestSimpleUI()

	require.NoError(t, ui.DisplayReport(context.Background(), testReport()))

	out := buf.String()
	assert.Contains(t, out, "Report 5f1c7e1a")
	assert.Contains(t, out, "2003")
	assert.Contains(t, out, "0.0005")
	assert.Contains(t, out, "Total running time: 0.001501")
	assert.Contains(t, out, "Best fit: O(n) (degree 1), accuracy 0.9987")
}

func TestSimpleUI_DisplayReport_NoAcceptableDegree(t *testing.T) {
	ui, buf := newTestSimpleUI()

	report := testReport()
	report.Fit = m.FitResult{
		Degree: m.NoDegree,
		Scores: []m.DegreeScore{{Degree: 0, Score: 0.2}, {Degree: 1, Score: 0.5}},
	}
	report.Rejections = []m.Rejection{{Size: 4003, Kind: "value not found", Message: "value not found: 1"}}

	require.NoError(t, ui.DisplayReport(context.Background(), report))

	out := buf.String()
	assert.Contains(t, out, "No acceptable degree found (best degree 1 scored 0.5000, needed 0.80)")
	assert.Contains(t, out, "Rejected sizes: 1")
	assert.Contains(t, out, "[value not found]")
}

func TestSimpleUI_DisplayReport_FitError(t *testing.T) {
	ui, buf := newTestSimpleUI()

	report := testReport()
	report.FitError = "insufficient data to fit a growth model: 1 distinct size(s)"

	require.NoError(t, ui.DisplayReport(context.Background(), report))
	assert.Contains(t, buf.String(), "Fit failed: insufficient data")
}

func TestSimpleUI_DisplayReports(t *testing.T) {
	ui, buf := newTestSimpleUI()

	require.NoError(t, ui.DisplayReports(context.Background(), nil))
	assert.Contains(t, buf.String(), "No reports found")

	buf.Reset()
	require.NoError(t, ui.DisplayReports(context.Background(), []m.Report{testReport()}))

	out := buf.String()
	assert.Contains(t, out, "5f1c7e1a")
	assert.Contains(t, out, "contains")
	assert.Contains(t, out, "O(n)")
}

func TestSimpleUI_DisplayTargets(t *testing.T) {
	ui, buf := newTestSimpleUI()

	err := ui.DisplayTargets(context.Background(), []m.TargetInfo{
		{Name: "sum", Description: "sums all elements", Expected: "O(n)", Base: []int{1, 2, 3}},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "sum")
	assert.Contains(t, out, "[1 2 3]")
	assert.Contains(t, out, "sums all elements")
}

func TestSimpleUI_CanceledContext(t *testing.T) {
	ui, buf := newTestSimpleUI()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, ui.Start(ctx), context.Canceled)
	require.ErrorIs(t, ui.DisplayReport(ctx, testReport()), context.Canceled)
	ui.DisplayStep(ctx, m.StepOutcome{Size: 1})
	assert.Empty(t, buf.String())
}

func TestNewUI_PicksImplementation(t *testing.T) {
	cmd := &cobra.Command{}

	_, ok := NewUI(cmd, false).(*SimpleUI)
	assert.True(t, ok)

	_, ok = NewUI(cmd, true).(*TUI)
	assert.True(t, ok)
}

func TestIsTTY_NonTerminal(t *testing.T) {
	assert.False(t, IsTTY(nil))

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, IsTTY(f))
}
