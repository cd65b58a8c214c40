package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/helmcode/configlint-ai/pkg/config"
	"github.com/helmcode/configlint-ai/pkg/logging"
)

// defaultLogLevelKey is the cobra annotation naming a command's log level
// when neither --log-level nor LOG_LEVEL is set.
const defaultLogLevelKey = "defaultLogLevel"

var (
	logLevel  string
	appConfig = &config.Config{}
	logger    = zap.NewNop()
)

// AddGlobalFlags registers the flags shared by every subcommand.
func AddGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); defaults to LOG_LEVEL")
}

// InitRuntime loads configuration and builds the logger. It runs before
// every subcommand.
func InitRuntime(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	appConfig = cfg

	level := logLevel
	if level == "" {
		level = cfg.LogLevel
	}
	if level == "" {
		level = cmd.Annotations[defaultLogLevelKey]
	}
	l, err := logging.New(level)
	if err != nil {
		return err
	}
	logger = l
	return nil
}

// SyncLogger flushes buffered log entries.
func SyncLogger(cmd *cobra.Command, args []string) {
	_ = logger.Sync()
}

func providerOrDefault(flag string) string {
	if flag != "" {
		return flag
	}
	return appConfig.Provider
}

func modelOrDefault(flag string) string {
	if flag != "" {
		return flag
	}
	return appConfig.Model
}
