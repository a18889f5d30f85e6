package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"neevamind/internal/config"
	"neevamind/internal/textgen"
)

var rootCmd = &cobra.Command{
	Use:           "neevamind",
	Short:         "Memory diary service with generated insights and weekly reports",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, reportCmd, insightsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads configuration and installs the default logger.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	slog.SetDefault(newLogger(cfg.LogLevel, cfg.LogFormat))
	return cfg, nil
}

func newLogger(level, format string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// newCompleter builds the insight text generator. The mock is used only when
// TEXTGEN_PROVIDER=mock; config validation rejects cohere without a key.
func newCompleter(c config.Config) textgen.Completer {
	if c.UseMockTextGen() {
		slog.Warn("TEXTGEN_PROVIDER=mock, insights will use canned completions")
		return &textgen.Mock{}
	}
	cfg := c.TextGen
	return textgen.NewRetrying(
		textgen.NewCohere(cfg.APIKey, cfg.BaseURL, cfg.Model),
		cfg.Timeout, cfg.MaxAttempts, cfg.Backoff, cfg.MaxBackoff,
	)
}
