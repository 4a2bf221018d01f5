package commands

import (
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/fluxcal/internal/mcp"
)

// NewMCPCommand creates the mcp subcommand.
func NewMCPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the calibration conversions as MCP tools on stdio",
		Long: `Run a Model Context Protocol server on stdio exposing
distance_to_flux, flux_to_distance, and calibration_info tools.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, inv, err := buildInverter(cmd)
			if err != nil {
				return err
			}

			logger := newLogger(cmd)

			srv := mcp.NewServer(mcp.ServerDeps{
				Inverter: inv,
				Magnet:   cfg.Magnet,
				Logger:   logger,
			})

			logger.Info("mcp server listening on stdio", "tools", srv.ListToolNames())

			return srv.Run(cmd.Context())
		},
	}
}
