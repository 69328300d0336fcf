package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/unfaiyted/godoc-swagger/internal/annotation"
	"github.com/unfaiyted/godoc-swagger/internal/refgraph"
	"github.com/unfaiyted/godoc-swagger/internal/scanner"
	"github.com/unfaiyted/godoc-swagger/internal/symbols"
)

// blocksResponse is the godoc_blocks tool payload.
type blocksResponse struct {
	Files []*scanner.FileAnnotations `json:"files"`
	Total int                        `json:"total"`
}

// resolveResponse is the godoc_resolve tool payload.
type resolveResponse struct {
	Found    bool                 `json:"found"`
	Model    *annotation.ModelRef `json:"model,omitempty"`
	Location *symbols.Location    `json:"location,omitempty"`
}

// endpointsResponse is the godoc_endpoints tool payload.
type endpointsResponse struct {
	Endpoints []refgraph.Endpoint `json:"endpoints"`
	Total     int                 `json:"total"`
}

// AddBlocksTool registers the godoc_blocks tool: list annotation blocks and
// their parsed fields, for one file or the whole project.
func AddBlocksTool(s *server.MCPServer, srv *Server) {
	tool := mcp.NewTool(
		"godoc_blocks",
		mcp.WithDescription("List godoc-style API annotation blocks and their parsed fields (status codes, params, routes, model references). Returns all scanned files unless a file path is given."),
		mcp.WithString("file",
			mcp.Description("Optional source file path, absolute or relative to the project root. Limits results to that file.")),
	)

	s.AddTool(tool, createBlocksHandler(srv))
}

func createBlocksHandler(srv *Server) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			argsMap = map[string]interface{}{}
		}

		file, err := parseStringArg(argsMap, "file", false)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		files := srv.snapshot()
		if file != "" {
			target := srv.absPath(file)
			filtered := make([]*scanner.FileAnnotations, 0, 1)
			for _, fa := range files {
				if filepath.Clean(fa.Path) == target {
					filtered = append(filtered, fa)
				}
			}
			files = filtered
		} else {
			// Whole-project listing skips files without blocks.
			withBlocks := make([]*scanner.FileAnnotations, 0, len(files))
			for _, fa := range files {
				if len(fa.Blocks) > 0 {
					withBlocks = append(withBlocks, fa)
				}
			}
			files = withBlocks
		}

		return jsonResult(&blocksResponse{Files: files, Total: len(files)})
	}
}

// AddResolveTool registers the godoc_resolve tool: map a cursor position
// inside an annotation block to a model reference and its declaration site.
func AddResolveTool(s *server.MCPServer, srv *Server) {
	tool := mcp.NewTool(
		"godoc_resolve",
		mcp.WithDescription("Resolve the model reference at a cursor position inside an annotation block to its declaration site. Positions near a reference (within the configured column distance) also resolve."),
		mcp.WithString("file",
			mcp.Required(),
			mcp.Description("Source file path, absolute or relative to the project root.")),
		mcp.WithNumber("line",
			mcp.Required(),
			mcp.Description("1-indexed line of the cursor.")),
		mcp.WithNumber("column",
			mcp.Required(),
			mcp.Description("0-indexed column of the cursor.")),
		mcp.WithNumber("max_distance",
			mcp.Description("Maximum column distance for near-miss resolution. Defaults to the configured proximity threshold.")),
	)

	s.AddTool(tool, createResolveHandler(srv))
}

func createResolveHandler(srv *Server) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		file, err := parseStringArg(argsMap, "file", true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		line, err := parseRequiredIntArg(argsMap, "line")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		column, err := parseRequiredIntArg(argsMap, "column")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		maxDistance := parseIntArg(argsMap, "max_distance", srv.scanner.Proximity())

		fa, err := srv.scanner.ScanFile(srv.absPath(file))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to scan %s: %v", file, err)), nil
		}
		if fa == nil {
			return jsonResult(&resolveResponse{Found: false})
		}

		ref := fa.ResolveAt(line, column, maxDistance)
		if ref == nil {
			return jsonResult(&resolveResponse{Found: false})
		}

		loc, err := srv.chain.Resolve(ctx, ref.QualifiedName)
		if err != nil {
			return nil, fmt.Errorf("declaration lookup failed: %w", err)
		}

		return jsonResult(&resolveResponse{Found: true, Model: ref, Location: loc})
	}
}

// AddEndpointsTool registers the godoc_endpoints tool: list documented
// endpoints, optionally filtered to those referencing a model.
func AddEndpointsTool(s *server.MCPServer, srv *Server) {
	tool := mcp.NewTool(
		"godoc_endpoints",
		mcp.WithDescription("List documented API endpoints (from @Router lines) with the model types each references. Pass a model name like 'models.User' to list only the endpoints referencing it."),
		mcp.WithString("model",
			mcp.Description("Optional qualified model name to filter by.")),
	)

	s.AddTool(tool, createEndpointsHandler(srv))
}

func createEndpointsHandler(srv *Server) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			argsMap = map[string]interface{}{}
		}

		model, err := parseStringArg(argsMap, "model", false)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		rg, err := refgraph.Build(srv.snapshot())
		if err != nil {
			return nil, fmt.Errorf("failed to build reference graph: %w", err)
		}

		var endpoints []refgraph.Endpoint
		if model != "" {
			endpoints, err = rg.EndpointsUsing(model)
			if err != nil {
				return nil, err
			}
		} else {
			endpoints = rg.Endpoints()
		}
		if endpoints == nil {
			endpoints = []refgraph.Endpoint{}
		}

		return jsonResult(&endpointsResponse{Endpoints: endpoints, Total: len(endpoints)})
	}
}

// absPath resolves a tool-supplied path against the project root.
func (s *Server) absPath(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(s.rootDir, path)
}

// jsonResult marshals a payload as a text result, the mcp-go convention.
func jsonResult(payload interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
