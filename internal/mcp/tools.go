package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/fluxcal/pkg/fluxmodel"
)

// Tool name constants.
const (
	ToolNameDistanceToFlux  = "distance_to_flux"
	ToolNameFluxToDistance  = "flux_to_distance"
	ToolNameCalibrationInfo = "calibration_info"
)

// Tool descriptions.
const (
	distanceToFluxDescription = "Convert a distance from the magnet face (mm) " +
		"to the expected flux density (mT) using the calibration table."
	fluxToDistanceDescription = "Convert a measured flux density (mT) " +
		"to the distance from the magnet face (mm) using the calibration table."
	calibrationInfoDescription = "Describe the loaded calibration: magnet geometry, " +
		"partition, interval, monotonicity, and approximation error."
)

// ErrNonFiniteInput indicates the numeric input is NaN or infinite.
var ErrNonFiniteInput = errors.New("input must be a finite number")

// Input types (auto-generate JSON schemas via struct tags).

// DistanceInput is the input schema for the distance_to_flux tool.
type DistanceInput struct {
	Distance float64 `json:"distance" jsonschema:"distance from the magnet face in mm"`
}

// FluxInput is the input schema for the flux_to_distance tool.
type FluxInput struct {
	Flux float64 `json:"flux" jsonschema:"measured flux density in mT"`
}

// InfoInput is the (empty) input schema for the calibration_info tool.
type InfoInput struct{}

// Conversion is the structured output of both conversion tools.
type Conversion struct {
	Distance float64 `json:"distance"`
	Flux     float64 `json:"flux"`
}

// Info is the structured output of the calibration_info tool.
type Info struct {
	Magnet      fluxmodel.Magnet `json:"magnet"`
	Segments    int              `json:"segments"`
	From        float64          `json:"from"`
	To          float64          `json:"to"`
	Monotone    bool             `json:"monotone"`
	MaxAbsError float64          `json:"max_abs_error"`
}

// infoErrorProbes is the grid density for the calibration_info error
// estimate.
const infoErrorProbes = 1024

// ToolOutput is a generic wrapper for tool results.
type ToolOutput struct {
	Data any `json:"data"`
}

// handleDistanceToFlux processes distance_to_flux tool calls.
func (s *Server) handleDistanceToFlux(
	_ context.Context,
	_ *mcpsdk.CallToolRequest,
	input DistanceInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if !isFinite(input.Distance) {
		return errorResult(fmt.Errorf("%w: distance", ErrNonFiniteInput))
	}

	flux, err := s.inverter.Forward(input.Distance)
	if err != nil {
		return errorResult(err)
	}

	return jsonResult(Conversion{Distance: input.Distance, Flux: flux})
}

// handleFluxToDistance processes flux_to_distance tool calls.
func (s *Server) handleFluxToDistance(
	_ context.Context,
	_ *mcpsdk.CallToolRequest,
	input FluxInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if !isFinite(input.Flux) {
		return errorResult(fmt.Errorf("%w: flux", ErrNonFiniteInput))
	}

	distance, err := s.inverter.Inverse(input.Flux)
	if err != nil {
		return errorResult(err)
	}

	return jsonResult(Conversion{Distance: distance, Flux: input.Flux})
}

// handleCalibrationInfo processes calibration_info tool calls.
func (s *Server) handleCalibrationInfo(
	_ context.Context,
	_ *mcpsdk.CallToolRequest,
	_ InfoInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	from, to := s.inverter.Interval()

	return jsonResult(Info{
		Magnet:      s.magnet,
		Segments:    s.inverter.SegmentCount(),
		From:        from,
		To:          to,
		Monotone:    s.inverter.Monotone(),
		MaxAbsError: s.inverter.MaxAbsError(infoErrorProbes),
	})
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Result helpers.

// errorResult builds a CallToolResult with isError set.
func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: err.Error()},
		},
		IsError: true,
	}, ToolOutput{}, nil
}

// jsonResult builds a CallToolResult with JSON-encoded content.
func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(data)},
		},
	}, ToolOutput{Data: value}, nil
}
