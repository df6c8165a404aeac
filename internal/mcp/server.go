package mcp

import (
	"context"
	"encoding/json"
	"time"

	"cashflow-mcp/internal/dataset"
	"cashflow-mcp/internal/logging"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/google/uuid"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pkg/errors"
)

// ServerName is reported to clients during initialization.
const ServerName = "cashflow-mcp"

// Server exposes the dataset service as MCP tools.
type Server struct {
	svc                 *dataset.Service
	enableMermaidCharts bool
	impl                *sdk.Server
}

// NewServer creates the MCP server and registers every tool.
func NewServer(svc *dataset.Service, enableMermaidCharts bool, version string) (*Server, error) {
	s := &Server{
		svc:                 svc,
		enableMermaidCharts: enableMermaidCharts,
		impl:                sdk.NewServer(&sdk.Implementation{Name: ServerName, Version: version}, nil),
	}
	if err := s.registerTools(); err != nil {
		return nil, err
	}
	return s, nil
}

// Serve runs the server over stdio until the client disconnects or ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	logging.FromContext(ctx).Info().Msg("MCP server listening on stdio")
	return s.impl.Run(ctx, &sdk.StdioTransport{})
}

// Connect attaches the server to an arbitrary transport, e.g. an in-memory pair.
func (s *Server) Connect(ctx context.Context, t sdk.Transport) (*sdk.ServerSession, error) {
	return s.impl.Connect(ctx, t, nil)
}

// toolHandler returns the payload and an optional Mermaid chart.
type toolHandler[In any] func(ctx context.Context, in In) (any, string, error)

// addTool registers a typed tool. The input schema is inferred from In and adjusted by tune.
func addTool[In any](s *Server, name, description string, tune func(*jsonschema.Schema), h toolHandler[In]) error {
	schema, err := jsonschema.For[In](nil)
	if err != nil {
		return errors.Wrapf(err, "input schema for %s", name)
	}
	if tune != nil {
		tune(schema)
	}

	tool := &sdk.Tool{
		Name:        name,
		Description: description,
		InputSchema: schema,
	}
	sdk.AddTool(s.impl, tool, func(ctx context.Context, _ *sdk.CallToolRequest, in In) (*sdk.CallToolResult, any, error) {
		ctx = logging.WithRequestID(ctx, uuid.NewString())
		logger := logging.FromContext(ctx)
		start := time.Now()

		data, chart, err := h(ctx, in)
		if err != nil {
			logger.Warn().Err(err).Str("tool", name).Msg("Tool call failed")
			return nil, nil, err
		}

		res, err := s.textResult(data, chart)
		if err != nil {
			logger.Error().Err(err).Str("tool", name).Msg("Tool result could not be encoded")
			return nil, nil, err
		}
		logger.Info().Str("tool", name).Dur("elapsed", time.Since(start)).Msg("Tool call served")
		return res, nil, nil
	})
	return nil
}

func (s *Server) textResult(data any, chart string) (*sdk.CallToolResult, error) {
	text, err := formatResult(data)
	if err != nil {
		return nil, err
	}
	content := []sdk.Content{&sdk.TextContent{Text: text}}
	if s.enableMermaidCharts && chart != "" {
		content = append(content, &sdk.TextContent{Text: chart})
	}
	return &sdk.CallToolResult{Content: content}, nil
}

func formatResult(data any) (string, error) {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "encode tool result")
	}
	return string(out), nil
}
