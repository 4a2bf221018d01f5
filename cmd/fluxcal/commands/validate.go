package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/fluxcal/internal/caltable"
)

// exitCodeValidationFailure is the exit code for validation failures.
const exitCodeValidationFailure = 2

// stdinArg selects standard input as the table source.
const stdinArg = "-"

// NewValidateCommand creates the validate subcommand.
func NewValidateCommand() *cobra.Command {
	var nocolor bool

	cmd := &cobra.Command{
		Use:   "validate <table.json|->",
		Short: "Validate an exported calibration table against the schema",
		Long: `Validate a JSON calibration table export against the embedded schema.

Examples:
  fluxcal validate cal.json
  fluxcal table --format json | fluxcal validate -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if nocolor {
				color.NoColor = true //nolint:reassign // intentional override of library global
			}

			data, err := readTableInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			report, err := caltable.Validate(data)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if report.Valid {
				color.New(color.FgGreen).Fprintf(out, "calibration table is valid (%s)\n", args[0])

				return nil
			}

			color.New(color.FgRed).Fprintf(out, "calibration table is invalid (%s):\n", args[0])

			for _, desc := range report.Errors {
				fmt.Fprintf(out, "  - %s\n", desc)
			}

			os.Exit(exitCodeValidationFailure)

			return nil
		},
	}

	cmd.Flags().BoolVar(&nocolor, "no-color", false, "disable colored output")

	return cmd
}

// readTableInput loads the table bytes from a file or stdin.
func readTableInput(stdin io.Reader, arg string) ([]byte, error) {
	if arg == stdinArg {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}

		return data, nil
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", arg, err)
	}

	return data, nil
}
