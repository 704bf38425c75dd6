// Package logger builds the hclog logger shared by the CLI commands.
package logger

import (
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/oxhq/patternlint/config"
)

// NewLogger creates an hclog.Logger from the YAML configuration and the
// provided name.
func NewLogger(cfg *config.Config, name string) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:            name,
		DisableTime:     cfg.Logger.DisableTime,
		JSONFormat:      cfg.Logger.JSONFormat,
		IncludeLocation: cfg.Logger.IncludeLocation,
		Output:          os.Stderr,
		Level:           determineLogLevel(cfg),
	})
}

// determineLogLevel prefers the PATTERNLINT_LOG_LEVEL environment variable
// over the configured level and defaults to INFO.
func determineLogLevel(cfg *config.Config) hclog.Level {
	if levelEnv := os.Getenv("PATTERNLINT_LOG_LEVEL"); levelEnv != "" {
		return parseLogLevel(strings.ToUpper(levelEnv))
	}
	return parseLogLevel(strings.ToUpper(cfg.Logger.Level))
}

func parseLogLevel(levelStr string) hclog.Level {
	switch levelStr {
	case "TRACE":
		return hclog.Trace
	case "DEBUG":
		return hclog.Debug
	case "INFO":
		return hclog.Info
	case "WARN":
		return hclog.Warn
	case "ERROR":
		return hclog.Error
	default:
		return hclog.Info
	}
}
