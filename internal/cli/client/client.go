// Package client connects the CLI to a course catalog server over one of
// the supported MCP transports.
package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/course-catalog-mcp/catalog/internal/api"
	"github.com/course-catalog-mcp/catalog/internal/config"
	"github.com/course-catalog-mcp/catalog/internal/domain/catalog"
	"github.com/course-catalog-mcp/catalog/internal/json"
)

// Transport selects how the CLI reaches the server.
type Transport string

const (
	// TransportStdio spawns the server and talks over its stdin/stdout.
	TransportStdio Transport = "stdio"
	// TransportSSE connects to a running HTTP server.
	TransportSSE Transport = "sse"
	// TransportDirect serves the catalog in-process.
	TransportDirect Transport = "direct"
)

// ErrUnknownTransport is returned by Connect for an unsupported transport.
var ErrUnknownTransport = errors.New("unknown transport")

// Defaults used when Options leaves a field empty.
const (
	DefaultServerCommand = "course-catalog"
	DefaultURL           = "http://localhost:3001/sse"
)

// Options configures Connect.
type Options struct {
	Transport Transport

	// ServerCommand and ServerArgs start the server for TransportStdio.
	ServerCommand string
	ServerArgs    []string

	// URL is the SSE endpoint for TransportSSE.
	URL string

	// CatalogPath is served by TransportDirect and passed to a spawned
	// stdio server. Empty means the built-in sample catalog.
	CatalogPath string

	// Timeout bounds each request; zero means no limit beyond the caller's context.
	Timeout time.Duration
}

// CatalogClient is an initialized MCP session with a catalog server.
type CatalogClient struct {
	mcp     *mcpclient.Client
	timeout time.Duration
	server  mcp.Implementation
}

// CallResult is the outcome of a tool call.
type CallResult struct {
	Content []ContentBlock `json:"content"`
	IsError bool           `json:"isError"`
}

// ContentBlock is one content item of a tool result.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
	Data any    `json:"data,omitempty"`
}

// Text joins the text blocks of the result.
func (r *CallResult) Text() string {
	var text string
	for _, c := range r.Content {
		if c.Type == "text" {
			text += c.Text
		}
	}
	return text
}

// Courses decodes a successful search_courses payload.
func (r *CallResult) Courses() ([]catalog.Course, error) {
	if r.IsError {
		return nil, fmt.Errorf("tool error: %s", r.Text())
	}
	var courses []catalog.Course
	if err := json.Unmarshal([]byte(r.Text()), &courses); err != nil {
		return nil, fmt.Errorf("failed to decode courses: %w", err)
	}
	return courses, nil
}

// Connect opens and initializes a session over the configured transport.
func Connect(ctx context.Context, opts Options) (*CatalogClient, error) {
	c, err := newTransport(ctx, opts)
	if err != nil {
		return nil, err
	}

	cc := &CatalogClient{mcp: c, timeout: opts.Timeout}

	initCtx, cancel := cc.requestContext(ctx)
	defer cancel()

	req := mcp.InitializeRequest{}
	req.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	req.Params.ClientInfo = mcp.Implementation{Name: "catalog-cli", Version: api.ServerVersion}
	res, err := c.Initialize(initCtx, req)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}
	cc.server = res.ServerInfo
	return cc, nil
}

func newTransport(ctx context.Context, opts Options) (*mcpclient.Client, error) {
	switch opts.Transport {
	case TransportDirect, "":
		cat, err := catalog.Open(opts.CatalogPath)
		if err != nil {
			return nil, err
		}
		c, err := mcpclient.NewInProcessClient(api.NewCatalogServer(cat).MCPServer())
		if err != nil {
			return nil, err
		}
		if err := c.Start(ctx); err != nil {
			return nil, err
		}
		return c, nil

	case TransportStdio:
		command := opts.ServerCommand
		if command == "" {
			command = DefaultServerCommand
		}
		var env []string
		if opts.CatalogPath != "" {
			env = append(env, config.EnvCatalogPath+"="+opts.CatalogPath)
		}
		// The stdio client starts the subprocess itself.
		c, err := mcpclient.NewStdioMCPClient(command, env, opts.ServerArgs...)
		if err != nil {
			return nil, fmt.Errorf("failed to start %s: %w", command, err)
		}
		return c, nil

	case TransportSSE:
		url := opts.URL
		if url == "" {
			url = DefaultURL
		}
		c, err := mcpclient.NewSSEMCPClient(url)
		if err != nil {
			return nil, err
		}
		if err := c.Start(ctx); err != nil {
			return nil, fmt.Errorf("failed to connect to %s: %w", url, err)
		}
		return c, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransport, opts.Transport)
	}
}

// Server reports the identity the server sent during initialization.
func (c *CatalogClient) Server() mcp.Implementation {
	return c.server
}

// ListTools returns the tools the server exposes.
func (c *CatalogClient) ListTools(ctx context.Context) ([]mcp.Tool, error) {
	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	res, err := c.mcp.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, err
	}
	return res.Tools, nil
}

// CallTool invokes a tool with the given arguments.
func (c *CatalogClient) CallTool(ctx context.Context, name string, args map[string]any) (*CallResult, error) {
	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	res, err := c.mcp.CallTool(ctx, req)
	if err != nil {
		return nil, err
	}
	return convertResult(res), nil
}

// SearchCourses calls search_courses.
func (c *CatalogClient) SearchCourses(ctx context.Context, args map[string]any) (*CallResult, error) {
	return c.CallTool(ctx, api.ToolSearchCourses, args)
}

// Close ends the session and stops a spawned server.
func (c *CatalogClient) Close() error {
	return c.mcp.Close()
}

func (c *CatalogClient) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func convertResult(res *mcp.CallToolResult) *CallResult {
	out := &CallResult{IsError: res.IsError}
	for _, content := range res.Content {
		switch v := content.(type) {
		case mcp.TextContent:
			out.Content = append(out.Content, ContentBlock{Type: "text", Text: v.Text})
		case *mcp.TextContent:
			out.Content = append(out.Content, ContentBlock{Type: "text", Text: v.Text})
		case mcp.ImageContent:
			out.Content = append(out.Content, ContentBlock{Type: "image", Data: v.Data})
		case *mcp.ImageContent:
			out.Content = append(out.Content, ContentBlock{Type: "image", Data: v.Data})
		default:
			out.Content = append(out.Content, ContentBlock{Type: "unknown", Data: v})
		}
	}
	return out
}
