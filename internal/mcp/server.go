// Package mcp implements a Model Context Protocol server exposing the
// calibration inverter as MCP tools over stdio transport.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/fluxcal/pkg/fluxmodel"
	"github.com/Sumatoshi-tech/fluxcal/pkg/piecewise"
)

const (
	// serverName is the MCP server implementation name.
	serverName = "fluxcal"
	// serverVersion is the MCP server implementation version.
	serverVersion = "1.0.0"

	// toolCount is the expected number of registered tools.
	toolCount = 3
)

// ServerDeps holds injectable dependencies for the MCP server.
type ServerDeps struct {
	// Inverter answers the conversion tools. Required.
	Inverter *piecewise.Inverter

	// Magnet describes the calibrated magnet; echoed by calibration_info.
	Magnet fluxmodel.Magnet

	// Logger is an optional structured logger. Nil uses the slog default.
	Logger *slog.Logger
}

// Server wraps the MCP SDK server with fluxcal tool registrations.
type Server struct {
	inner    *mcpsdk.Server
	mu       sync.RWMutex
	tools    []string
	inverter *piecewise.Inverter
	magnet   fluxmodel.Magnet
}

// NewServer creates a new MCP server with all fluxcal tools registered.
func NewServer(deps ServerDeps) *Server {
	opts := &mcpsdk.ServerOptions{}
	if deps.Logger != nil {
		opts.Logger = deps.Logger
	}

	inner := mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    serverName,
			Version: serverVersion,
		},
		opts,
	)

	srv := &Server{
		inner:    inner,
		tools:    make([]string, 0, toolCount),
		inverter: deps.Inverter,
		magnet:   deps.Magnet,
	}

	srv.registerTools()

	return srv
}

// ListToolNames returns the sorted names of all registered tools.
func (s *Server) ListToolNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, len(s.tools))
	copy(names, s.tools)
	sort.Strings(names)

	return names
}

// Run starts the MCP server on stdio transport. It blocks until the
// context is canceled or the connection closes.
func (s *Server) Run(ctx context.Context) error {
	err := s.inner.Run(ctx, &mcpsdk.StdioTransport{})
	if err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}

	return nil
}

// RunWithTransport starts the MCP server on the given transport. It
// blocks until the context is canceled or the connection closes.
func (s *Server) RunWithTransport(ctx context.Context, transport mcpsdk.Transport) error {
	err := s.inner.Run(ctx, transport)
	if err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}

	return nil
}

// registerTools adds all fluxcal MCP tools to the server.
func (s *Server) registerTools() {
	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        ToolNameDistanceToFlux,
		Description: distanceToFluxDescription,
	}, s.handleDistanceToFlux)
	s.trackTool(ToolNameDistanceToFlux)

	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        ToolNameFluxToDistance,
		Description: fluxToDistanceDescription,
	}, s.handleFluxToDistance)
	s.trackTool(ToolNameFluxToDistance)

	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        ToolNameCalibrationInfo,
		Description: calibrationInfoDescription,
	}, s.handleCalibrationInfo)
	s.trackTool(ToolNameCalibrationInfo)
}

func (s *Server) trackTool(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tools = append(s.tools, name)
}
