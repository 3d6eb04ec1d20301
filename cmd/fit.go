package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"otime.dev/pkg/otime/internal/domain"
	m "otime.dev/pkg/otime/internal/model"
)

var (
	fitMinAccuracyFlag float64
	fitMaxDegreeFlag   int
)

// fitCmd represents the fit command.
var fitCmd = newFitCmd()

func newFitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fit [report-id]",
		Short: "Fit the samples of a saved report again",
		Long: `Run model selection again over the samples of a saved report, for example
with a stricter accuracy. Without an id the most recent report is used; an id
prefix is enough when it is unique.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fitArgs := domain.FitArgs{
				Reports:     m.Path(viper.GetString(outputFlagName)),
				MinAccuracy: fitMinAccuracyFlag,
				MaxDegree:   viper.GetInt(maxDegreeConfigKey),
			}

			if cmd.Flags().Changed(maxDegreeFlagName) {
				fitArgs.MaxDegree = fitMaxDegreeFlag
			}

			if len(args) == 1 {
				fitArgs.ID = args[0]
			}

			return currentWorkflow(cmd).Fit(context.Background(), fitArgs)
		},
	}

	cmd.Flags().Float64Var(&fitMinAccuracyFlag, minAccuracyFlagName, 0, "score a model needs to be accepted (default: the report's own)")
	cmd.Flags().IntVar(&fitMaxDegreeFlag, maxDegreeFlagName, defaultMaxDegree, "highest polynomial degree tried")

	return cmd
}

func init() {
	rootCmd.AddCommand(fitCmd)
}
