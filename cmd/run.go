package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"otime.dev/pkg/otime/internal/domain"
	m "otime.dev/pkg/otime/internal/model"
)

var (
	runMaxSizeFlag     int
	runStepFlag        int
	runIndexFlag       int
	runBaseFlag        []int
	runMinAccuracyFlag float64
	runMaxDegreeFlag   int
	runScaleMinFlag    int
	runScaleMaxFlag    int
)

const runLongDescription = `Sweep a built-in target function over growing input sizes.

The scalable argument starts from its base sequence and gains step more random
elements at every size, up to max. Every call is timed, the timings are fitted
and the result is saved as a report in the output directory.

Use "otime list" to see the available targets.`

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <target>",
		Short: "Sweep a target and estimate its complexity",
		Long:  runLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var base []int
			if cmd.Flags().Changed(baseFlagName) {
				base = runBaseFlag
			}

			return currentWorkflow(cmd).Run(context.Background(), domain.RunArgs{
				Target:      args[0],
				MaxSize:     viper.GetInt(maxSizeConfigKey),
				Step:        viper.GetInt(stepConfigKey),
				Index:       runIndexFlag,
				Base:        base,
				MinAccuracy: viper.GetFloat64(minAccuracyConfigKey),
				MaxDegree:   viper.GetInt(maxDegreeConfigKey),
				ScaleMin:    viper.GetInt(scaleMinConfigKey),
				ScaleMax:    viper.GetInt(scaleMaxConfigKey),
				Reports:     m.Path(viper.GetString(outputFlagName)),
			})
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&runMaxSizeFlag, maxSizeFlagName, defaultMaxSize, "largest number of elements added to the base sequence")
	bindFlagToConfig(cmd.Flags().Lookup(maxSizeFlagName), maxSizeConfigKey)

	cmd.Flags().IntVar(&runStepFlag, stepFlagName, defaultStep, "elements added between consecutive sizes")
	bindFlagToConfig(cmd.Flags().Lookup(stepFlagName), stepConfigKey)

	cmd.Flags().Float64Var(&runMinAccuracyFlag, minAccuracyFlagName, defaultMinAccuracy, "score a model needs to be accepted, within [0, 1]")
	bindFlagToConfig(cmd.Flags().Lookup(minAccuracyFlagName), minAccuracyConfigKey)

	cmd.Flags().IntVar(&runMaxDegreeFlag, maxDegreeFlagName, defaultMaxDegree, "highest polynomial degree tried")
	bindFlagToConfig(cmd.Flags().Lookup(maxDegreeFlagName), maxDegreeConfigKey)

	cmd.Flags().IntVar(&runScaleMinFlag, scaleMinFlagName, defaultScaleMin, "smallest value inserted while scaling")
	bindFlagToConfig(cmd.Flags().Lookup(scaleMinFlagName), scaleMinConfigKey)

	cmd.Flags().IntVar(&runScaleMaxFlag, scaleMaxFlagName, defaultScaleMax, "largest value inserted while scaling")
	bindFlagToConfig(cmd.Flags().Lookup(scaleMaxFlagName), scaleMaxConfigKey)

	cmd.Flags().IntVar(&runIndexFlag, indexFlagName, -1, "position of the scaled argument (default: the target's own)")
	cmd.Flags().IntSliceVar(&runBaseFlag, baseFlagName, nil, "base sequence to grow, e.g. 1,2,3 (default: the target's own)")
}
