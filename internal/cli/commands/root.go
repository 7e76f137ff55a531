package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/course-catalog-mcp/catalog/internal/cli/client"
	"github.com/course-catalog-mcp/catalog/internal/cli/errors"
	"github.com/course-catalog-mcp/catalog/internal/cli/inference"
	"github.com/course-catalog-mcp/catalog/internal/cli/output"
)

type globalOptions struct {
	transport   string
	serverCmd   string
	serverArgs  []string
	url         string
	catalogPath string
	jsonOutput  bool
	rawOutput   bool
	markdown    bool
	noColor     bool
	timeout     int
}

// NewRootCommand builds the catalog-cli command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "catalog-cli",
		Short: "Course Catalog CLI - search the course catalog over MCP",
		Long: `catalog-cli talks to the course catalog MCP server. It can spawn the
server over stdio, connect to a running SSE server, or serve the catalog
in-process (direct mode, the default).

Bare keywords run a search: 'catalog-cli machine learning'.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.transport, "transport", string(client.TransportDirect), "transport (stdio, sse, direct)")
	flags.StringVar(&opts.serverCmd, "server-cmd", client.DefaultServerCommand, "server command for the stdio transport")
	flags.StringSliceVar(&opts.serverArgs, "server-arg", nil, "argument passed to the stdio server (repeatable)")
	flags.StringVar(&opts.url, "url", client.DefaultURL, "SSE endpoint for the sse transport")
	flags.StringVar(&opts.catalogPath, "catalog", "", "catalog file served in direct mode or passed to a stdio server")
	flags.BoolVar(&opts.jsonOutput, "json", false, "output in JSON format")
	flags.BoolVar(&opts.rawOutput, "raw", false, "raw output (no formatting)")
	flags.BoolVar(&opts.markdown, "markdown", false, "output tool results as markdown")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	flags.IntVar(&opts.timeout, "timeout", 30000, "request timeout in milliseconds")

	rootCmd.AddCommand(
		newSearchCmd(opts),
		newToolsCmd(opts),
		newScenarioCmd(opts),
		newStatusCmd(opts),
		newInstallCmd(opts),
	)
	return rootCmd
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	return ExecuteArgs(os.Args[1:], os.Stdout, os.Stderr)
}

// ExecuteArgs runs the CLI with args, writing results to out and errors to errOut.
func ExecuteArgs(args []string, out, errOut io.Writer) error {
	rootCmd := NewRootCommand()
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	// Simple command inference - prepend inferred command to args
	known := []string{"help", "completion"}
	for _, c := range rootCmd.Commands() {
		known = append(known, c.Name())
		known = append(known, c.Aliases...)
	}
	var valueFlags []string
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		if f.NoOptDefVal != "" {
			return
		}
		valueFlags = append(valueFlags, "--"+f.Name)
		if f.Shorthand != "" {
			valueFlags = append(valueFlags, "-"+f.Shorthand)
		}
	})
	if inferredCmd, _ := inference.InferCommand(args, known, valueFlags); inferredCmd != "" {
		args = append([]string{inferredCmd}, args...)
	}

	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func (o *globalOptions) format() output.OutputFormat {
	switch {
	case o.jsonOutput:
		return output.FormatJSON
	case o.rawOutput:
		return output.FormatRaw
	case o.markdown:
		return output.FormatMarkdown
	default:
		return output.FormatText
	}
}

func (o *globalOptions) formatter(w io.Writer) *output.Formatter {
	return output.NewFormatter(o.format(), !o.noColor, w)
}

func (o *globalOptions) connect(ctx context.Context) (*client.CatalogClient, error) {
	return client.Connect(ctx, client.Options{
		Transport:     client.Transport(o.transport),
		ServerCommand: o.serverCmd,
		ServerArgs:    o.serverArgs,
		URL:           o.url,
		CatalogPath:   o.catalogPath,
		Timeout:       time.Duration(o.timeout) * time.Millisecond,
	})
}

// fail prints a classified error and returns it so the command exits non-zero.
func (o *globalOptions) fail(cmd *cobra.Command, err error) error {
	classified := errors.Classify(err)
	fmt.Fprintln(cmd.ErrOrStderr(), o.formatter(cmd.ErrOrStderr()).FormatError(classified))
	return classified
}
