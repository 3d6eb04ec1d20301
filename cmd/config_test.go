package cmd

import (
	"log/slog"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "otime", configBaseName)
	assert.Equal(t, "otime.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "output", outputFlagName)
	assert.Equal(t, "sweep.max_size", maxSizeConfigKey)
	assert.Equal(t, "sweep.step", stepConfigKey)
	assert.Equal(t, "sweep.min_accuracy", minAccuracyConfigKey)
	assert.Equal(t, "fit.max_degree", maxDegreeConfigKey)
	assert.Equal(t, ".otime-reports", defaultReportsDir)
	assert.Equal(t, "OTIME", envPrefix)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestConfigDefaults(t *testing.T) {
	assert.Equal(t, 10000, viper.GetInt(maxSizeConfigKey))
	assert.Equal(t, 1000, viper.GetInt(stepConfigKey))
	assert.Equal(t, 0.8, viper.GetFloat64(minAccuracyConfigKey))
	assert.Equal(t, 4, viper.GetInt(maxDegreeConfigKey))
	assert.Equal(t, -100, viper.GetInt(scaleMinConfigKey))
	assert.Equal(t, 10000, viper.GetInt(scaleMaxConfigKey))
}

func TestConfigEnvOverride(t *testing.T) {
	t.Setenv("OTIME_SWEEP_STEP", "250")

	assert.Equal(t, 250, viper.GetInt(stepConfigKey))
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"", slog.LevelWarn},
		{"debug", slog.LevelDebug},
		{" INFO ", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"-4", slog.LevelDebug},
		{"loud", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelWarn))
		})
	}
}
