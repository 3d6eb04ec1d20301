// Package adapter provides storage adapters for sweep reports.
package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	m "otime.dev/pkg/otime/internal/model"
)

const reportExt = ".yaml"

// ErrReportNotFound is returned when no report matches the request.
var ErrReportNotFound = errors.New("report not found")

// ReportStore persists sweep reports.
type ReportStore interface {
	SaveReport(ctx context.Context, dir m.Path, report m.Report) (m.Path, error)
	LoadReport(ctx context.Context, dir m.Path, id string) (m.Report, error)
	LoadReports(ctx context.Context, dir m.Path) ([]m.Report, error)
}

type yamlReportStore struct{}

// NewReportStore creates a ReportStore keeping one YAML file per report.
func NewReportStore() ReportStore {
	return &yamlReportStore{}
}

// SaveReport writes the report to dir/<id>.yaml, replacing the file atomically.
func (s *yamlReportStore) SaveReport(ctx context.Context, dir m.Path, report m.Report) (m.Path, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if report.ID == "" {
		return "", fmt.Errorf("report has no id")
	}

	if err := os.MkdirAll(string(dir), 0o755); err != nil {
		slog.Error("Failed to create reports dir", "dir", dir, "error", err)
		return "", fmt.Errorf("create reports dir: %w", err)
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("encode report %s: %w", report.ID, err)
	}

	target := filepath.Join(string(dir), report.ID+reportExt)

	tmp, err := os.CreateTemp(string(dir), ".report-*")
	if err != nil {
		return "", fmt.Errorf("create temp report: %w", err)
	}

	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write report %s: %w", report.ID, err)
	}

	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close report %s: %w", report.ID, err)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		slog.Error("Failed to move report into place", "path", target, "error", err)
		return "", fmt.Errorf("store report %s: %w", report.ID, err)
	}

	slog.Debug("saved report", "id", report.ID, "path", target)

	return m.Path(target), nil
}

// LoadReport reads a single report. The id may be a unique prefix.
func (s *yamlReportStore) LoadReport(ctx context.Context, dir m.Path, id string) (m.Report, error) {
	if err := ctx.Err(); err != nil {
		return m.Report{}, err
	}

	names, err := reportFiles(dir)
	if err != nil {
		return m.Report{}, err
	}

	var matches []string

	for _, name := range names {
		if strings.HasPrefix(strings.TrimSuffix(name, reportExt), id) {
			matches = append(matches, name)
		}
	}

	switch len(matches) {
	case 0:
		return m.Report{}, fmt.Errorf("%w: %q in %s", ErrReportNotFound, id, dir)
	case 1:
		return readReport(filepath.Join(string(dir), matches[0]))
	default:
		return m.Report{}, fmt.Errorf("report id %q is ambiguous (%d matches)", id, len(matches))
	}
}

// LoadReports reads every report in dir, oldest first. A missing dir holds no reports.
func (s *yamlReportStore) LoadReports(ctx context.Context, dir m.Path) ([]m.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	names, err := reportFiles(dir)
	if err != nil {
		return nil, err
	}

	reports := make([]m.Report, 0, len(names))

	for _, name := range names {
		report, err := readReport(filepath.Join(string(dir), name))
		if err != nil {
			return nil, err
		}

		reports = append(reports, report)
	}

	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].CreatedAt.Before(reports[j].CreatedAt)
	})

	return reports, nil
}

func reportFiles(dir m.Path) ([]string, error) {
	entries, err := os.ReadDir(string(dir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("read reports dir: %w", err)
	}

	names := make([]string, 0, len(entries))

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != reportExt {
			continue
		}

		names = append(names, name)
	}

	return names, nil
}

func readReport(path string) (m.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return m.Report{}, fmt.Errorf("read report: %w", err)
	}

	var report m.Report
	if err := yaml.Unmarshal(data, &report); err != nil {
		slog.Error("Failed to decode report", "path", path, "error", err)
		return m.Report{}, fmt.Errorf("decode report %s: %w", path, err)
	}

	return report, nil
}
