// Command course-catalog serves the course catalog tool over stdio.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/course-catalog-mcp/catalog/internal/api"
	"github.com/course-catalog-mcp/catalog/internal/app"
	"github.com/course-catalog-mcp/catalog/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdin, os.Stdout, os.Stderr); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints a failure returned by run.
func reportError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}

func run(ctx context.Context, in io.Reader, out, errOut io.Writer) error {
	settings, err := config.Resolve()
	if err != nil {
		return err
	}

	a, err := app.Bootstrap(settings)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		a.Close(shutdownCtx)
	}()

	fmt.Fprintln(errOut, api.StdioBanner)

	if err := a.Server.ServeStdio(ctx, in, out, errOut); err != nil && ctx.Err() == nil {
		return fmt.Errorf("stdio transport failed: %w", err)
	}
	return nil
}
