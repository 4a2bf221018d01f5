// Package fluxmodel provides the magnetic-flux-density-versus-distance
// equation of a rectangular block magnet, the function a Hall-effect
// sensor setup needs inverted to recover distance from a flux reading.
//
// The equation comes from the TI DRV5056 datasheet's block-magnet
// worked example. It has a closed form in the distance but not in the
// flux, which is why callers feed it to pkg/piecewise instead of
// solving it directly.
package fluxmodel

import (
	"errors"
	"fmt"
	"math"

	"github.com/Sumatoshi-tech/fluxcal/pkg/piecewise"
)

// ErrInvalidMagnet is returned when a magnet dimension or the remanence
// is not positive.
var ErrInvalidMagnet = errors.New("fluxmodel: magnet dimensions and remanence must be positive")

// Magnet describes a rectangular block magnet. Dimensions are in mm,
// remanence Br in mT.
type Magnet struct {
	Length    float64 `json:"length"    mapstructure:"length"    yaml:"length"`
	Width     float64 `json:"width"     mapstructure:"width"     yaml:"width"`
	Thickness float64 `json:"thickness" mapstructure:"thickness" yaml:"thickness"`
	Remanence float64 `json:"remanence" mapstructure:"remanence" yaml:"remanence"`
}

// Reference returns the magnet from the DRV5056 datasheet worked
// example: a 19.05 × 9.525 × 1.5875 mm block with Br = 1320 mT.
func Reference() Magnet {
	return Magnet{
		Length:    19.05,
		Width:     9.525,
		Thickness: 1.5875,
		Remanence: 1320,
	}
}

// Validate checks that all magnet parameters are positive.
func (m Magnet) Validate() error {
	if m.Length <= 0 || m.Width <= 0 || m.Thickness <= 0 || m.Remanence <= 0 {
		return fmt.Errorf("%w: %+v", ErrInvalidMagnet, m)
	}

	return nil
}

// FluxDensity returns the flux density B(d) in mT on the magnet's
// center axis at distance d mm from its face:
//
//	B(d) = (Br/π) · [atan(w·l / (2d·√(4d² + w² + l²)))
//	               − atan(w·l / (2(d+t)·√(4(d+t)² + w² + l²)))]
//
// At d = 0 the first term reaches its finite limit π/2 (atan of +Inf),
// so the function is total on [0, ∞).
func (m Magnet) FluxDensity(d float64) float64 {
	return (m.Remanence / math.Pi) * (m.faceTerm(d) - m.faceTerm(d+m.Thickness))
}

// faceTerm computes the atan term for one magnet face at distance d.
func (m Magnet) faceTerm(d float64) float64 {
	area := m.Width * m.Length
	diag := math.Sqrt(4*d*d + m.Width*m.Width + m.Length*m.Length)

	return math.Atan(area / (2 * d * diag))
}

// Func adapts the flux equation for piecewise construction.
func (m Magnet) Func() piecewise.Func {
	return m.FluxDensity
}
