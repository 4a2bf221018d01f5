// Package commands implements the fluxcal CLI subcommands.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/fluxcal/internal/config"
	"github.com/Sumatoshi-tech/fluxcal/pkg/piecewise"
)

// loadConfig reads the configuration named by the persistent --config
// flag. The flag may be absent when a command runs standalone (tests);
// defaults apply then.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	return config.Load(path)
}

// buildInverter loads configuration and constructs the inverter it
// describes.
func buildInverter(cmd *cobra.Command) (*config.Config, *piecewise.Inverter, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	inv, err := cfg.Inverter()
	if err != nil {
		return nil, nil, err
	}

	return cfg, inv, nil
}

// newLogger builds a structured logger honoring the persistent
// --verbose and --quiet flags.
func newLogger(cmd *cobra.Command) *slog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")

	level := slog.LevelInfo

	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// writeOutput writes data to the given path, or to the command's
// stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		if err != nil {
			return fmt.Errorf("write output: %w", err)
		}

		return nil
	}

	err := os.WriteFile(path, data, 0o600)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
