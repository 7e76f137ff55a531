package api

import (
	"context"
	"net/http"

	"github.com/mark3labs/mcp-go/server"

	"github.com/course-catalog-mcp/catalog/internal/json"
	"github.com/course-catalog-mcp/catalog/internal/logger"
)

// HTTP routes served by the gateway.
const (
	SSEPath     = "/sse"
	MessagePath = "/message"
	HealthPath  = "/health"
)

// HealthName is reported by the health endpoint.
const HealthName = "course-catalog-mcp"

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status string `json:"status"`
	Server string `json:"server"`
}

// Gateway exposes a CatalogServer over HTTP with server-sent events.
type Gateway struct {
	mux *http.ServeMux
	sse *server.SSEServer
}

// GatewayOptions configures a Gateway.
type GatewayOptions struct {
	// BaseURL prefixes the message endpoint announced to SSE clients.
	BaseURL string

	// HTTPServer, when set, is shut down together with the SSE sessions.
	HTTPServer *http.Server
}

// NewGateway creates the HTTP handler for cs.
func NewGateway(cs *CatalogServer, opts GatewayOptions) *Gateway {
	sseOpts := []server.SSEOption{
		server.WithSSEEndpoint(SSEPath),
		server.WithMessageEndpoint(MessagePath),
		server.WithKeepAlive(true),
	}
	if opts.BaseURL != "" {
		sseOpts = append(sseOpts, server.WithBaseURL(opts.BaseURL))
	}
	if opts.HTTPServer != nil {
		sseOpts = append(sseOpts, server.WithHTTPServer(opts.HTTPServer))
	}

	g := &Gateway{
		mux: http.NewServeMux(),
		sse: server.NewSSEServer(cs.MCPServer(), sseOpts...),
	}
	g.routes()
	return g
}

func (g *Gateway) routes() {
	g.mux.Handle("GET "+SSEPath, g.sse.SSEHandler())
	g.mux.Handle("POST "+MessagePath, g.sse.MessageHandler())
	g.mux.HandleFunc("GET "+HealthPath, g.handleHealth)
	g.mux.HandleFunc("/", g.handleNotFound)
}

func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Global CORS headers for MCP clients
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	g.mux.ServeHTTP(w, r)
}

// Shutdown closes open SSE sessions and, when configured, the HTTP server.
func (g *Gateway) Shutdown(ctx context.Context) error {
	return g.sse.Shutdown(ctx)
}

func (g *Gateway) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	body, _ := json.Marshal(HealthStatus{Status: "ok", Server: HealthName})
	w.Write(body)
}

func (g *Gateway) handleNotFound(w http.ResponseWriter, r *http.Request) {
	logger.Debugf("no route for %s %s", r.Method, r.URL.Path)
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte("Not found"))
}
