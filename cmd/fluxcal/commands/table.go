package commands

import (
	"bytes"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/fluxcal/internal/caltable"
)

// NewTableCommand creates the table subcommand.
func NewTableCommand() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Render or export the calibration table",
		Long: `Render the calibration table for the terminal, or export it.

Examples:
  fluxcal table
  fluxcal table --format json --output cal.json
  fluxcal table --format yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, inv, err := buildInverter(cmd)
			if err != nil {
				return err
			}

			tbl := caltable.Build(inv, cfg.Magnet)

			if format == "" {
				var buf bytes.Buffer

				tbl.Render(&buf)

				return writeOutput(cmd, output, buf.Bytes())
			}

			data, err := tbl.Marshal(format)
			if err != nil {
				return err
			}

			return writeOutput(cmd, output, data)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "export format: json or yaml (default: terminal table)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")

	return cmd
}
