package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/course-catalog-mcp/catalog/internal/api"
	"github.com/course-catalog-mcp/catalog/internal/cli/errors"
	"github.com/course-catalog-mcp/catalog/internal/cli/output"
)

type searchOptions struct {
	query    string
	subject  string
	level    string
	duration float64
	provider string
}

func newSearchCmd(opts *globalOptions) *cobra.Command {
	so := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search [keywords...]",
		Short: "Search courses by keywords, subject, level, duration and provider",
		Example: `  catalog-cli search machine learning
  catalog-cli search --subject "Computer Science" --level intermediate
  catalog-cli search --duration 8 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			toolArgs := so.arguments(cmd, args)

			c, err := opts.connect(cmd.Context())
			if err != nil {
				return opts.fail(cmd, err)
			}
			defer c.Close()

			res, err := c.SearchCourses(cmd.Context(), toolArgs)
			if err != nil {
				return opts.fail(cmd, err)
			}

			formatter := opts.formatter(cmd.OutOrStdout())
			result := output.NewCallResult(res)
			if res.IsError {
				cmd.PrintErrln(formatter.FormatResult(result))
				return errors.ToolError(res)
			}

			courses, err := res.Courses()
			if err != nil {
				return opts.fail(cmd, err)
			}
			return formatter.FormatCourses(courses, result)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&so.query, api.ArgQuery, "q", "", "search keywords matched against title, description and instructor")
	flags.StringVarP(&so.subject, api.ArgSubject, "s", "", "subject area, e.g. 'Computer Science'")
	flags.StringVarP(&so.level, api.ArgLevel, "l", "", "difficulty level (beginner, intermediate, advanced)")
	flags.Float64VarP(&so.duration, api.ArgDuration, "d", 0, "maximum duration in weeks")
	flags.StringVarP(&so.provider, api.ArgProvider, "p", "", "platform provider, e.g. 'Coursera'")
	return cmd
}

// arguments builds the tool arguments from the flags that were set. Bare
// keywords become the query unless --query is given.
func (so *searchOptions) arguments(cmd *cobra.Command, keywords []string) map[string]any {
	args := map[string]any{}
	flags := cmd.Flags()

	if flags.Changed(api.ArgQuery) {
		args[api.ArgQuery] = so.query
	} else if len(keywords) > 0 {
		args[api.ArgQuery] = strings.Join(keywords, " ")
	}
	if flags.Changed(api.ArgSubject) {
		args[api.ArgSubject] = so.subject
	}
	if flags.Changed(api.ArgLevel) {
		args[api.ArgLevel] = so.level
	}
	if flags.Changed(api.ArgDuration) {
		args[api.ArgDuration] = so.duration
	}
	if flags.Changed(api.ArgProvider) {
		args[api.ArgProvider] = so.provider
	}
	return args
}
