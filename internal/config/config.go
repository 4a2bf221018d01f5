// Package config loads and validates fluxcal configuration from file,
// environment variables, and defaults.
package config

import (
	"errors"
	"fmt"

	"github.com/Sumatoshi-tech/fluxcal/pkg/fluxmodel"
	"github.com/Sumatoshi-tech/fluxcal/pkg/piecewise"
)

// Default table partition: 100 segments over the first 16 mm, the
// working range of the reference sensor setup.
const (
	DefaultTableSegments = 100
	DefaultTableFrom     = 0.0
	DefaultTableTo       = 16.0
)

// Plot defaults.
const (
	DefaultPlotTheme  = "dark"
	DefaultPlotOutput = "fluxcal-plot.html"
)

// Sentinel validation errors.
var (
	// ErrInvalidTable is returned when the table partition is unusable.
	ErrInvalidTable = errors.New("config: table segments must be positive and interval non-empty")

	// ErrInvalidTheme is returned for an unknown plot theme.
	ErrInvalidTheme = errors.New("config: plot theme must be dark or light")
)

// Config is the top-level configuration struct for fluxcal.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Magnet fluxmodel.Magnet `mapstructure:"magnet"`
	Table  Table            `mapstructure:"table"`
	Plot   Plot             `mapstructure:"plot"`
}

// Table holds the piecewise partition settings.
type Table struct {
	Segments     int     `mapstructure:"segments"`
	From         float64 `mapstructure:"from"`
	To           float64 `mapstructure:"to"`
	StrictSlopes bool    `mapstructure:"strict_slopes"`
}

// Plot holds HTML chart output settings.
type Plot struct {
	Theme  string `mapstructure:"theme"`
	Output string `mapstructure:"output"`
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	err := c.Magnet.Validate()
	if err != nil {
		return fmt.Errorf("validate magnet: %w", err)
	}

	if c.Table.Segments < 1 || c.Table.From >= c.Table.To {
		return fmt.Errorf("%w: segments=%d interval=[%v, %v]",
			ErrInvalidTable, c.Table.Segments, c.Table.From, c.Table.To)
	}

	if c.Plot.Theme != "dark" && c.Plot.Theme != "light" {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, c.Plot.Theme)
	}

	return nil
}

// Inverter constructs the piecewise inverter described by the
// configuration.
func (c *Config) Inverter() (*piecewise.Inverter, error) {
	var opts []piecewise.Option

	if c.Table.StrictSlopes {
		opts = append(opts, piecewise.WithStrictSlopes())
	}

	inv, err := piecewise.New(c.Magnet.Func(), c.Table.Segments, c.Table.From, c.Table.To, opts...)
	if err != nil {
		return nil, fmt.Errorf("build inverter: %w", err)
	}

	return inv, nil
}
