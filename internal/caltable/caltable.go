// Package caltable turns a piecewise inverter into a calibration
// table: a per-segment listing of distance bounds, flux bounds, and
// chord coefficients, renderable for the terminal and exportable as
// JSON or YAML.
package caltable

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/fluxcal/pkg/fluxmodel"
	"github.com/Sumatoshi-tech/fluxcal/pkg/piecewise"
)

// errorProbes is the grid density used for the max-error estimate.
const errorProbes = 4096

// Supported export formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrUnknownFormat is returned for an unsupported export format.
var ErrUnknownFormat = errors.New("caltable: format must be json or yaml")

// Row describes one segment of the calibration table.
type Row struct {
	Segment    int     `json:"segment"     yaml:"segment"`
	DistanceLo float64 `json:"distance_lo" yaml:"distance_lo"`
	DistanceHi float64 `json:"distance_hi" yaml:"distance_hi"`
	FluxLo     float64 `json:"flux_lo"     yaml:"flux_lo"`
	FluxHi     float64 `json:"flux_hi"     yaml:"flux_hi"`
	Slope      float64 `json:"slope"       yaml:"slope"`
	Intercept  float64 `json:"intercept"   yaml:"intercept"`
	Invertible bool    `json:"invertible"  yaml:"invertible"`
}

// Table is a complete calibration table with its build parameters.
type Table struct {
	Magnet      fluxmodel.Magnet `json:"magnet"        yaml:"magnet"`
	Segments    int              `json:"segments"      yaml:"segments"`
	From        float64          `json:"from"          yaml:"from"`
	To          float64          `json:"to"            yaml:"to"`
	Monotone    bool             `json:"monotone"      yaml:"monotone"`
	MaxAbsError float64          `json:"max_abs_error" yaml:"max_abs_error"`
	Rows        []Row            `json:"rows"          yaml:"rows"`
}

// Build snapshots the inverter's segments into a calibration table.
func Build(inv *piecewise.Inverter, magnet fluxmodel.Magnet) *Table {
	from, to := inv.Interval()
	segments := inv.Segments()

	tbl := &Table{
		Magnet:      magnet,
		Segments:    inv.SegmentCount(),
		From:        from,
		To:          to,
		Monotone:    inv.Monotone(),
		MaxAbsError: inv.MaxAbsError(errorProbes),
		Rows:        make([]Row, len(segments)),
	}

	for i, seg := range segments {
		tbl.Rows[i] = Row{
			Segment:    i,
			DistanceLo: seg.XLo,
			DistanceHi: seg.XHi,
			FluxLo:     seg.YLo,
			FluxHi:     seg.YHi,
			Slope:      seg.Slope,
			Intercept:  seg.Intercept,
			Invertible: seg.Invertible,
		}
	}

	return tbl
}

// Marshal exports the table in the given format.
func (t *Table) Marshal(format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(t, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal table: %w", err)
		}

		return data, nil
	case FormatYAML:
		data, err := yaml.Marshal(t)
		if err != nil {
			return nil, fmt.Errorf("marshal table: %w", err)
		}

		return data, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
