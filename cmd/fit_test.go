package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"otime.dev/pkg/otime/internal/adapter"
	"otime.dev/pkg/otime/internal/domain"
	domainmocks "otime.dev/pkg/otime/internal/domain/mocks"
	m "otime.dev/pkg/otime/internal/model"
)

func TestFitCmd_LatestReportByDefault(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newFitCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Fit", mock.Anything, mock.MatchedBy(func(args domain.FitArgs) bool {
		return args.ID == "" &&
			args.MinAccuracy == 0 &&
			args.MaxDegree == 4 &&
			args.Reports == m.Path(".otime-reports")
	})).Return(nil)

	cmd.SetArgs([]string{"fit"})
	err := cmd.Execute()
	require.NoError(t, err)
}

func TestFitCmd_IDAndFlags(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newFitCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Fit", mock.Anything, mock.MatchedBy(func(args domain.FitArgs) bool {
		return args.ID == "1a2b" && args.MinAccuracy == 0.99 && args.MaxDegree == 2
	})).Return(nil)

	cmd.SetArgs([]string{"fit", "1a2b", "--min-accuracy", "0.99", "--max-degree", "2"})
	err := cmd.Execute()
	require.NoError(t, err)
}

func TestFitCmd_PropagatesError(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newFitCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Fit", mock.Anything, mock.Anything).Return(adapter.ErrReportNotFound)

	cmd.SetArgs([]string{"fit"})
	err := cmd.Execute()
	require.ErrorIs(t, err, adapter.ErrReportNotFound)
}

func TestFitCmd_TooManyArgs(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newFitCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	cmd.SetArgs([]string{"fit", "a", "b"})
	err := cmd.Execute()
	assert.Error(t, err)
}
