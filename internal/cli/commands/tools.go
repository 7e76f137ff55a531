package commands

import (
	"github.com/spf13/cobra"
)

func newToolsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "tools",
		Aliases: []string{"list"},
		Short:   "List the tools the server exposes",
		Args:    cobra.NoArgs,
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
			return opts.formatter(cmd.OutOrStdout()).FormatTools(tools)
		},
	}
}
