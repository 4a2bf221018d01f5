package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// evalDigits is the printed precision for converted values.
const evalDigits = 4

// ErrEvalInput is returned unless exactly one conversion input is given.
var ErrEvalInput = errors.New("exactly one of --distance or --flux is required")

// NewEvalCommand creates the eval subcommand.
func NewEvalCommand() *cobra.Command {
	var (
		distance float64
		flux     float64
		raw      bool
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Convert a single value between distance and flux",
		Long: `Convert one value using the piecewise calibration table.

Examples:
  fluxcal eval --distance 14.0
  fluxcal eval --flux 12.273
  fluxcal eval --flux 12.273 --raw`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			distanceSet := cmd.Flags().Changed("distance")
			fluxSet := cmd.Flags().Changed("flux")

			if distanceSet == fluxSet {
				return ErrEvalInput
			}

			_, inv, err := buildInverter(cmd)
			if err != nil {
				return err
			}

			logger := newLogger(cmd)
			logger.Debug("inverter ready",
				"segments", inv.SegmentCount(),
				"monotone", inv.Monotone(),
			)

			out := cmd.OutOrStdout()

			if distanceSet {
				result, fwdErr := inv.Forward(distance)
				if fwdErr != nil {
					return fmt.Errorf("forward eval: %w", fwdErr)
				}

				printConversion(out, raw, distance, "mm", result, "mT")

				return nil
			}

			result, invErr := inv.Inverse(flux)
			if invErr != nil {
				return fmt.Errorf("backward eval: %w", invErr)
			}

			printConversion(out, raw, flux, "mT", result, "mm")

			return nil
		},
	}

	cmd.Flags().Float64Var(&distance, "distance", 0, "distance from the magnet face in mm")
	cmd.Flags().Float64Var(&flux, "flux", 0, "measured flux density in mT")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the bare result only")

	return cmd
}

// printConversion writes one conversion in either raw or human form.
func printConversion(w io.Writer, raw bool, in float64, inUnit string, out float64, outUnit string) {
	if raw {
		fmt.Fprintf(w, "%v\n", out)

		return
	}

	fmt.Fprintf(w, "%s %s -> ", humanize.CommafWithDigits(in, evalDigits), inUnit)
	color.New(color.FgGreen).Fprintf(w, "%s %s\n", humanize.CommafWithDigits(out, evalDigits), outUnit)
}
