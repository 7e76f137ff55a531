// Command course-catalog-sse serves the course catalog tool over HTTP with
// server-sent events.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/course-catalog-mcp/catalog/internal/api"
	"github.com/course-catalog-mcp/catalog/internal/app"
	"github.com/course-catalog-mcp/catalog/internal/config"
	"github.com/course-catalog-mcp/catalog/internal/logger"
)

const shutdownTimeout = 5 * time.Second

type listenFunc func(addr string) (net.Listener, error)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	listen := func(addr string) (net.Listener, error) {
		return net.Listen("tcp", addr)
	}
	if err := run(ctx, listen, os.Stderr); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints a failure returned by run.
func reportError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}

func run(ctx context.Context, listen listenFunc, errOut io.Writer) error {
	settings, err := config.Resolve()
	if err != nil {
		return err
	}

	a, err := app.Bootstrap(settings)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.Close(shutdownCtx)
	}()

	ln, err := listen(settings.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", settings.Addr(), err)
	}

	httpServer := &http.Server{ReadHeaderTimeout: 10 * time.Second}
	gateway := api.NewGateway(a.Server, api.GatewayOptions{
		BaseURL:    settings.BaseURL,
		HTTPServer: httpServer,
	})
	httpServer.Handler = gateway

	port := ln.Addr().(*net.TCPAddr).Port
	fmt.Fprintf(errOut, "Course Catalog MCP SSE server running on port %d\n", port)
	fmt.Fprintf(errOut, "SSE endpoint: http://localhost:%d%s\n", port, api.SSEPath)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpServer.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Infof("Shutting down SSE server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := gateway.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
