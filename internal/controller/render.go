package controller

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	m "otime.dev/pkg/otime/internal/model"
)

const shortIDLength = 8

func seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}

func shortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}

	return id[:shortIDLength]
}

func newTable(buf *bytes.Buffer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(buf)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	return table
}

func renderSamplesTable(samples m.Samples, total time.Duration) string {
	var buf bytes.Buffer

	table := newTable(&buf, []string{"Size", "Elapsed (s)"})
	table.SetColumnAlignment([]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT})

	for _, s := range samples {
		table.Append([]string{strconv.Itoa(s.Size), seconds(s.Elapsed)})
	}

	table.SetFooter([]string{fmt.Sprintf("Total %d", len(samples)), seconds(total)})
	table.Render()

	return buf.String()
}

func fitSummary(report m.Report) string {
	if report.FitError != "" {
		return "Fit failed: " + report.FitError
	}

	return describeFit(report.Fit, report.MinAccuracy)
}

func describeFit(fit m.FitResult, minAccuracy float64) string {
	if fit.Accepted() {
		return fmt.Sprintf("Best fit: %s (degree %d), accuracy %.4f", m.ComplexityName(fit.Degree), fit.Degree, fit.Accuracy)
	}

	best, ok := fit.Best()
	if !ok {
		return "No acceptable degree found"
	}

	return fmt.Sprintf("No acceptable degree found (best degree %d scored %.4f, needed %.2f)", best.Degree, best.Score, minAccuracy)
}

func renderReport(report m.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Report %s: %s, sizes 0..%d step %d\n\n", shortID(report.ID), report.Target, report.MaxSize, report.Step)
	b.WriteString(renderSamplesTable(report.Samples, report.Total))

	if len(report.Rejections) > 0 {
		fmt.Fprintf(&b, "\nRejected sizes: %d\n", len(report.Rejections))

		for _, r := range report.Rejections {
			fmt.Fprintf(&b, "  %d: [%s] %s\n", r.Size, r.Kind, r.Message)
		}
	}

	fmt.Fprintf(&b, "\nTotal running time: %s\n", seconds(report.Total))
	b.WriteString(fitSummary(report) + "\n")

	return b.String()
}

func renderReportsTable(reports []m.Report) string {
	var buf bytes.Buffer

	table := newTable(&buf, []string{"ID", "Target", "Created", "Samples", "Fit"})

	for _, r := range reports {
		fit := m.ComplexityName(r.Fit.Degree)
		if r.FitError != "" {
			fit = "error"
		}

		table.Append([]string{
			shortID(r.ID),
			r.Target,
			r.CreatedAt.Local().Format(time.DateTime),
			strconv.Itoa(len(r.Samples)),
			fit,
		})
	}

	table.SetFooter([]string{fmt.Sprintf("Total %d", len(reports)), "", "", "", ""})
	table.Render()

	return buf.String()
}

func renderTargetsTable(targets []m.TargetInfo) string {
	var buf bytes.Buffer

	table := newTable(&buf, []string{"Target", "Complexity", "Base", "Description"})

	for _, t := range targets {
		table.Append([]string{t.Name, t.Expected, fmt.Sprint(t.Base), t.Description})
	}

	table.Render()

	return buf.String()
}

func stepLine(outcome m.StepOutcome) string {
	prefix := fmt.Sprintf("Running with %d elements...", outcome.Size)

	switch outcome.Kind {
	case m.StepRecorded:
		return fmt.Sprintf("%s %ss", prefix, seconds(outcome.Elapsed))
	case m.StepRejected:
		return fmt.Sprintf("%s [%s] %s", prefix, outcome.ErrorKind, outcome.Message)
	case m.StepFatal:
		return fmt.Sprintf("%s failed: %v", prefix, outcome.Err)
	default:
		return prefix
	}
}
