package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/course-catalog-mcp/catalog/internal/domain/integration"
)

func newInstallCmd(opts *globalOptions) *cobra.Command {
	var (
		useSSE bool
		port   int
	)

	cmd := &cobra.Command{
		Use:   "install <client>...",
		Short: "Register the catalog server in an MCP client's configuration",
		Long: fmt.Sprintf(`Register the catalog server in the configuration of an MCP client.

Supported clients: %s.

By default the client launches the server over stdio using --server-cmd.
With --sse the client connects to a running course-catalog-sse instead.`, strings.Join(integration.Names(), ", ")),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry := integration.StdioEntry(opts.serverCmd, opts.catalogPath)
			if useSSE {
				entry = integration.SSEEntry(port)
			}

			for _, name := range args {
				c, err := integration.Lookup(name)
				if err != nil {
					return opts.fail(cmd, err)
				}
				path, err := c.Install(entry)
				if err != nil {
					return opts.fail(cmd, fmt.Errorf("%s: %w", name, err))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Registered %s in %s (%s)\n", entry.Name, name, path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&useSSE, "sse", false, "register the SSE endpoint instead of a stdio command")
	cmd.Flags().IntVar(&port, "port", 3001, "SSE server port used with --sse")
	return cmd
}
