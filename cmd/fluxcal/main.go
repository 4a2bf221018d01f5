// Package main provides the entry point for the fluxcal CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/fluxcal/cmd/fluxcal/commands"
	"github.com/Sumatoshi-tech/fluxcal/pkg/version"
)

var (
	configPath string
	verbose    bool
	quiet      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fluxcal",
		Short: "Hall-sensor calibration - piecewise flux/distance conversion",
		Long: `Fluxcal precomputes a piecewise-linear calibration table for a block
magnet's flux-density-versus-distance equation and converts in both
directions: distance to expected flux, and measured flux back to
distance.

Commands:
  eval      Convert a single value in either direction
  table     Render or export the calibration table
  plot      Write the calibration curves as an HTML page
  validate  Schema-check an exported calibration table
  mcp       Serve the conversions as MCP tools on stdio`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: .fluxcal.yaml in CWD or $HOME)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output")

	// Add commands.
	rootCmd.AddCommand(commands.NewEvalCommand())
	rootCmd.AddCommand(commands.NewTableCommand())
	rootCmd.AddCommand(commands.NewPlotCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewMCPCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "fluxcal %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
