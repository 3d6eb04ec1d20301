package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"otime.dev/pkg/otime/internal/domain"
	m "otime.dev/pkg/otime/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "otime"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	outputFlagName      = "output"
	uiFlagName          = "ui"
	logFlagName         = "log"
	verboseFlagName     = "verbose"
	maxSizeFlagName     = "max"
	stepFlagName        = "step"
	indexFlagName       = "index"
	baseFlagName        = "base"
	minAccuracyFlagName = "min-accuracy"
	maxDegreeFlagName   = "max-degree"
	scaleMinFlagName    = "scale-min"
	scaleMaxFlagName    = "scale-max"

	maxSizeConfigKey     = "sweep.max_size"
	stepConfigKey        = "sweep.step"
	minAccuracyConfigKey = "sweep.min_accuracy"
	maxDegreeConfigKey   = "fit.max_degree"
	scaleMinConfigKey    = "scaler.min"
	scaleMaxConfigKey    = "scaler.max"

	defaultReportsDir  = ".otime-reports"
	defaultUIMode      = uiModeAuto
	defaultMaxSize     = 10000
	defaultStep        = 1000
	defaultMinAccuracy = m.DefaultMinAccuracy
	defaultMaxDegree   = domain.DefaultMaxDegree
	defaultScaleMin    = domain.DefaultScaleMin
	defaultScaleMax    = domain.DefaultScaleMax

	uiModeAuto   = "auto"
	uiModeSimple = "simple"
	uiModeTUI    = "tui"

	envPrefix = "OTIME"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".otime.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(outputFlagName, defaultReportsDir)
	viper.SetDefault(uiFlagName, defaultUIMode)
	viper.SetDefault(maxSizeConfigKey, defaultMaxSize)
	viper.SetDefault(stepConfigKey, defaultStep)
	viper.SetDefault(minAccuracyConfigKey, defaultMinAccuracy)
	viper.SetDefault(maxDegreeConfigKey, defaultMaxDegree)
	viper.SetDefault(scaleMinConfigKey, defaultScaleMin)
	viper.SetDefault(scaleMaxConfigKey, defaultScaleMax)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
