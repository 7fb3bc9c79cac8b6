// Package commands implements the sqlmark subcommands.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/leapstack-labs/sqlmark/internal/cli/output"
	"github.com/leapstack-labs/sqlmark/internal/config"
	"github.com/leapstack-labs/sqlmark/internal/refsfile"
	"github.com/leapstack-labs/sqlmark/pkg/annotate"
	"github.com/spf13/cobra"
)

// getConfig returns the loaded config, or defaults when the root command's
// config load did not run (direct command construction in tests).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{OutputFormat: config.DefaultOutput}
}

// newRenderer builds the output renderer for a command, with the command's
// own --output flag taking precedence over the configured format.
func newRenderer(cmd *cobra.Command, override string) *output.Renderer {
	cfg := getConfig()
	mode := output.Mode(cfg.OutputFormat)
	if override != "" {
		mode = output.Mode(override)
	}
	return output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)
}

// newLogger builds the command logger; verbose enables debug level.
func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// readSQL reads the SQL input from a file, or from stdin when path is "-".
func readSQL(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read sql from stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read sql file: %w", err)
	}
	return string(data), nil
}

// loadRefs loads the reference list, returning nil for an empty path.
func loadRefs(path string) ([]annotate.Reference, error) {
	if path == "" {
		return nil, nil
	}
	return refsfile.Load(path)
}
