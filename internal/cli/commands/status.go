package commands

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/course-catalog-mcp/catalog/internal/api"
	"github.com/course-catalog-mcp/catalog/internal/cli/client"
	"github.com/course-catalog-mcp/catalog/internal/json"
)

// Status summarizes a reachable catalog server.
type Status struct {
	Transport string            `json:"transport"`
	Server    string            `json:"server"`
	Version   string            `json:"version"`
	Tools     []string          `json:"tools"`
	Health    *api.HealthStatus `json:"health,omitempty"`
}

func newStatusCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the server identity, its tools and, over SSE, its health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.connect(cmd.Context())
			if err != nil {
				return opts.fail(cmd, err)
			}
			defer c.Close()

			tools, err := c.ListTools(cmd.Context())
			if err != nil {
				return opts.fail(cmd, err)
			}

			status := Status{
				Transport: opts.transport,
				Server:    c.Server().Name,
				Version:   c.Server().Version,
			}
			for _, t := range tools {
				status.Tools = append(status.Tools, t.Name)
			}
			if client.Transport(opts.transport) == client.TransportSSE {
				health, err := fetchHealth(cmd.Context(), opts.url)
				if err != nil {
					return opts.fail(cmd, err)
				}
				status.Health = health
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				data, _ := json.MarshalIndent(status, "", "  ")
				fmt.Fprintln(out, string(data))
				return nil
			}

			header := "Course Catalog Server Status:"
			if !opts.noColor {
				header = color.New(color.FgCyan).Sprint(header)
			}
			fmt.Fprintln(out, header)
			fmt.Fprintf(out, "  Transport: %s\n", status.Transport)
			fmt.Fprintf(out, "  Server:    %s\n", status.Server)
			fmt.Fprintf(out, "  Version:   %s\n", status.Version)
			fmt.Fprintf(out, "  Tools:     %s\n", strings.Join(status.Tools, ", "))
			if status.Health != nil {
				fmt.Fprintf(out, "  Health:    %s (%s)\n", status.Health.Status, status.Health.Server)
			}
			return nil
		},
	}
}

// fetchHealth queries the health route next to the SSE endpoint.
func fetchHealth(ctx context.Context, sseURL string) (*api.HealthStatus, error) {
	healthURL := strings.TrimSuffix(sseURL, api.SSEPath) + api.HealthPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var health api.HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("failed to decode health: %w", err)
	}
	return &health, nil
}
