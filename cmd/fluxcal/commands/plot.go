package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/fluxcal/internal/plot"
)

// NewPlotCommand creates the plot subcommand.
func NewPlotCommand() *cobra.Command {
	var (
		output string
		theme  string
	)

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Write the calibration curves as an HTML page",
		Long: `Plot the flux equation, its chord approximation, and the
approximation error as a standalone HTML page.

Examples:
  fluxcal plot
  fluxcal plot --output calibration.html --theme light`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, inv, err := buildInverter(cmd)
			if err != nil {
				return err
			}

			path := cfg.Plot.Output
			if cmd.Flags().Changed("output") {
				path = output
			}

			pageTheme := cfg.Plot.Theme
			if cmd.Flags().Changed("theme") {
				pageTheme = theme
			}

			file, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create %s: %w", path, err)
			}
			defer file.Close()

			err = plot.WritePage(file, inv, cfg.Magnet, plot.Theme(pageTheme))
			if err != nil {
				return err
			}

			newLogger(cmd).Info("plot written", "path", path, "theme", pageTheme)

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output HTML file (default from config)")
	cmd.Flags().StringVar(&theme, "theme", "", "chart theme: dark or light (default from config)")

	return cmd
}
