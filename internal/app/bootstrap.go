// Package app assembles a CatalogServer from resolved settings. Both server
// binaries start through Bootstrap.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/course-catalog-mcp/catalog/internal/api"
	"github.com/course-catalog-mcp/catalog/internal/config"
	"github.com/course-catalog-mcp/catalog/internal/domain/catalog"
	"github.com/course-catalog-mcp/catalog/internal/logger"
	"github.com/course-catalog-mcp/catalog/internal/metrics"
)

// App is a ready-to-serve catalog server and the resources it owns.
type App struct {
	Settings config.Settings
	Catalog  *catalog.Catalog
	Metrics  *metrics.Recorder
	Server   *api.CatalogServer

	metricsServer *http.Server
	stopStreams   context.CancelFunc
}

// Bootstrap configures logging, loads the catalog and builds the server.
// The metrics listener is started when settings enable it.
func Bootstrap(settings config.Settings) (*App, error) {
	level, err := logger.ParseLevel(settings.LogLevel)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(level)

	if settings.LogDir != "" {
		if err := logger.Init(settings.LogDir); err != nil {
			return nil, err
		}
	}

	cat, err := catalog.Open(settings.CatalogPath)
	if err != nil {
		logger.Close()
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	if settings.CatalogPath == "" {
		logger.Infof("Serving built-in sample catalog (%d courses)", cat.Len())
	} else {
		logger.Infof("Loaded %d course(s) from %s", cat.Len(), settings.CatalogPath)
	}

	rec := metrics.NewRecorder()
	a := &App{
		Settings: settings,
		Catalog:  cat,
		Metrics:  rec,
		Server:   api.NewCatalogServer(cat, api.WithMetrics(rec)),
	}

	if addr := settings.MetricsAddr(); addr != "" {
		if err := a.serveMetrics(addr); err != nil {
			logger.Close()
			return nil, err
		}
	}
	return a, nil
}

func (a *App) serveMetrics(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen for metrics on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", a.Metrics.Handler())
	registerLogRoutes(mux)

	// Log streams never finish on their own; Close cancels them before Shutdown.
	baseCtx, stop := context.WithCancel(context.Background())
	a.stopStreams = stop
	a.metricsServer = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}

	logger.Infof("Metrics available at http://%s/metrics, logs at /logs", ln.Addr())
	go func() {
		if err := a.metricsServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("Metrics server failed: %v", err)
		}
	}()
	return nil
}

// Close stops the metrics listener, ending open log streams, and flushes the
// log file.
func (a *App) Close(ctx context.Context) error {
	var err error
	if a.metricsServer != nil {
		a.stopStreams()
		err = a.metricsServer.Shutdown(ctx)
	}
	logger.Close()
	return err
}
