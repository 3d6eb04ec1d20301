package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otime.dev/pkg/otime/internal/controller"
)

func TestMain(m *testing.M) {
	logDir, err := os.MkdirTemp("", "otime-cmd-test")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Keep command logs out of the package directory.
	os.Setenv("OTIME_LOG_FILENAME", filepath.Join(logDir, "otime.log"))

	code := m.Run()

	_ = os.RemoveAll(logDir)
	os.Exit(code)
}

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "otime", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.Equal(t, rootLongDescription, cmd.Long)

	for _, name := range []string{outputFlagName, uiFlagName, logFlagName, verboseFlagName} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}

	assert.Equal(t, "o", cmd.PersistentFlags().Lookup(outputFlagName).Shorthand)
	assert.Equal(t, "v", cmd.PersistentFlags().Lookup(verboseFlagName).Shorthand)
}

func TestRootCmd_HelpOutput(t *testing.T) {
	cmd := newRootCmd()
	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(&bytes.Buffer{})

	cmd.SetArgs([]string{})
	err := cmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, output.String(), "Usage:")
	assert.Contains(t, output.String(), "fits polynomial models")
}

func TestRootCmd_RejectsUnknownUIMode(t *testing.T) {
	cmd := newRootCmd()
	cmd.AddCommand(newListCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	cmd.SetArgs([]string{"--ui", "fancy", "list"})
	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown ui mode")
}

func TestInit(t *testing.T) {
	assert.NotNil(t, reportStore)
	assert.NotNil(t, rootCmd)

	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}

	assert.Subset(t, names, []string{"run", "fit", "view", "list", "init", "version"})
}

func TestParseUIMode(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		want    string
		wantErr bool
	}{
		{"empty is auto", "", uiModeAuto, false},
		{"auto", "auto", uiModeAuto, false},
		{"simple", "simple", uiModeSimple, false},
		{"tui upper case", "TUI", uiModeTUI, false},
		{"unknown", "fancy", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseUIMode(tt.mode)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewUI(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})

	assert.IsType(t, &controller.SimpleUI{}, newUI(cmd, uiModeSimple))
	assert.IsType(t, &controller.TUI{}, newUI(cmd, uiModeTUI))
	assert.NotNil(t, newUI(cmd, uiModeAuto))
}

func TestCurrentWorkflow_BuiltOnce(t *testing.T) {
	originalWorkflow := workflow
	workflow = nil
	defer func() { workflow = originalWorkflow }()

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})

	first := currentWorkflow(cmd)
	require.NotNil(t, first)
	assert.Same(t, first, currentWorkflow(cmd))
}

func TestConfigureLogger_WritesToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")

	configureLogger(logPath, true)
	require.NotNil(t, globalLogger)

	globalLogger.Debug("debug line", "key", "value")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "debug line")
	assert.Contains(t, string(data), "key=value")
}

func TestConfigureLogger_UsesConfiguredLevel(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")

	viper.Set(logLevelKey, "error")
	defer viper.Set(logLevelKey, defaultLogLevel)

	configureLogger(logPath, false)
	globalLogger.Info("hidden")
	globalLogger.Error("shown")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestExecute(t *testing.T) {
	originalRootCmd := rootCmd

	mockCmd := &cobra.Command{
		Use: "test",
		RunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}
	mockCmd.SetOut(&bytes.Buffer{})
	mockCmd.SetErr(&bytes.Buffer{})

	rootCmd = mockCmd

	// Execute should not panic or exit
	Execute()

	rootCmd = originalRootCmd
}

func TestExecute_WithError(t *testing.T) {
	originalRootCmd := rootCmd
	defer func() {
		rootCmd = originalRootCmd
	}()

	mockCmd := &cobra.Command{
		Use: "test",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("command failed")
		},
	}
	mockCmd.SetOut(&bytes.Buffer{})
	mockCmd.SetErr(&bytes.Buffer{})

	rootCmd = mockCmd

	// Execute would call os.Exit(1), so only the command itself is checked here.
	err := rootCmd.Execute()
	require.Error(t, err)
}

func TestExecute_ProcessLevel_Failure(t *testing.T) {
	if os.Getenv("TEST_EXECUTE_SUBPROCESS_FAIL") == "1" {
		originalRootCmd := rootCmd
		mockCmd := &cobra.Command{
			Use: "test",
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(os.Stderr, "error occurred")
				return fmt.Errorf("command failed")
			},
		}
		mockCmd.SetOut(os.Stdout)
		mockCmd.SetErr(os.Stderr)
		rootCmd = mockCmd
		defer func() { rootCmd = originalRootCmd }()

		Execute() // This should call os.Exit(1)
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestExecute_ProcessLevel_Failure")
	cmd.Env = append(os.Environ(), "TEST_EXECUTE_SUBPROCESS_FAIL=1")
	output, err := cmd.CombinedOutput()

	require.Error(t, err)

	if exitErr, ok := err.(*exec.ExitError); ok {
		assert.Equal(t, 1, exitErr.ExitCode())
	} else {
		assert.Fail(t, "expected exec.ExitError", "got %T", err)
	}

	assert.Contains(t, string(output), "error occurred")
}
