package commands

import (
	"github.com/spf13/cobra"

	"github.com/course-catalog-mcp/catalog/internal/cli/scenario"
)

func newScenarioCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scenario <file.yaml>...",
		Short: "Run scripted search scenarios against the server",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.connect(cmd.Context())
			if err != nil {
				return opts.fail(cmd, err)
			}
			defer c.Close()

			runner := &scenario.Runner{Client: c, Out: cmd.OutOrStdout()}
			for _, path := range args {
				s, err := scenario.LoadScenario(path)
				if err != nil {
					return opts.fail(cmd, err)
				}
				if err := runner.Run(cmd.Context(), s); err != nil {
					return opts.fail(cmd, err)
				}
			}
			return nil
		},
	}
}
