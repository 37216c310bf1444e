// Package mcpserver exposes a catalog Dispatcher as Model Context Protocol
// tools over streamable HTTP.
//
// Every dispatcher operation becomes one tool with the same name,
// description and string parameters. Soft failures travel as ordinary text
// content so an agent reads the guidance; only internal faults surface as
// protocol errors.
//
// # Tools
//
//	get_categories {}
//	get_products_by_category { "category": "Sports" }
//	get_product { "product_id": "PROD-001" }
//	search_products { "query": "bottle" }
//	check_stock { "product_id": "PROD-003" }
package mcpserver

import (
	"context"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"ProductCatalog/internal/catalog"
)

const Name = "ProductCatalog"

func New(d *catalog.Dispatcher, version string, log *zap.Logger) *server.MCPServer {
	if log == nil {
		log = zap.NewNop()
	}

	s := server.NewMCPServer(Name, version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	for _, op := range d.Operations() {
		s.AddTool(toolFor(op), handlerFor(d, op.Name, log))
	}
	return s
}

// NewHTTPHandler serves s as streamable HTTP. The handler is path-agnostic;
// the caller mounts it.
func NewHTTPHandler(s *server.MCPServer) http.Handler {
	return server.NewStreamableHTTPServer(s)
}

func toolFor(op catalog.Operation) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(op.Description)}
	for _, p := range op.Params {
		opts = append(opts, mcp.WithString(p.Name,
			mcp.Required(),
			mcp.Description(p.Description),
		))
	}
	return mcp.NewTool(op.Name, opts...)
}

func handlerFor(d *catalog.Dispatcher, name string, log *zap.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := d.Call(ctx, name, req.GetArguments())
		if err != nil {
			log.Warn("tool call failed", zap.String("tool", name), zap.Error(err))
			return nil, err
		}
		return mcp.NewToolResultText(res.Text), nil
	}
}
