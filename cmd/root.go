// Package cmd provides the root command and CLI setup for otime.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"otime.dev/pkg/otime/internal/adapter"
	"otime.dev/pkg/otime/internal/controller"
	"otime.dev/pkg/otime/internal/domain"
)

var reportStore adapter.ReportStore

// workflow is built on first use so the UI can follow the --ui flag.
var workflow domain.Workflow

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

var (
	uiModeFlag  string
	logFileFlag string
	verboseFlag bool
)

func init() {
	reportStore = adapter.NewReportStore()
}

const rootLongDescription = `otime estimates the time complexity of a function empirically.

It calls the function with one argument grown step by step, times every call
and fits polynomial models of increasing degree to the measurements. The
first model that explains the data well enough names the complexity.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "otime",
		Short:        "Empirical time complexity estimator",
		Long:         rootLongDescription,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if _, err := parseUIMode(viper.GetString(uiFlagName)); err != nil {
				return err
			}

			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			defaultReportsDir,
			"output directory for sweep reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringVar(&uiModeFlag, uiFlagName, defaultUIMode, "output mode: auto, simple or tui")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(uiFlagName), uiFlagName)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFlagName, defaultLogFilename, "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFlagName), logFilenameKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", defaultLogVerbose, "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

func parseUIMode(mode string) (string, error) {
	switch mode = strings.ToLower(strings.TrimSpace(mode)); mode {
	case "", uiModeAuto:
		return uiModeAuto, nil
	case uiModeSimple, uiModeTUI:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown ui mode %q (want %s, %s or %s)", mode, uiModeAuto, uiModeSimple, uiModeTUI)
	}
}

func newUI(cmd *cobra.Command, mode string) controller.UI {
	switch mode {
	case uiModeSimple:
		return controller.NewSimpleUI(cmd)
	case uiModeTUI:
		return controller.NewTUI(cmd.OutOrStdout())
	default:
		return controller.NewUI(cmd, controller.IsTTY(os.Stdout))
	}
}

// currentWorkflow returns the shared workflow, building it for cmd's output on first use.
func currentWorkflow(cmd *cobra.Command) domain.Workflow {
	if workflow == nil {
		mode, _ := parseUIMode(viper.GetString(uiFlagName))
		workflow = domain.NewWorkflow(reportStore, newUI(cmd, mode))
	}

	return workflow
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
