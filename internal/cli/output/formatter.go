package output

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/olekukonko/tablewriter"

	"github.com/course-catalog-mcp/catalog/internal/cli/errors"
	"github.com/course-catalog-mcp/catalog/internal/domain/catalog"
	"github.com/course-catalog-mcp/catalog/internal/json"
)

type OutputFormat string

const (
	FormatText     OutputFormat = "text"
	FormatJSON     OutputFormat = "json"
	FormatRaw      OutputFormat = "raw"
	FormatMarkdown OutputFormat = "markdown"
)

type Formatter struct {
	format OutputFormat
	color  bool
	out    io.Writer
}

func NewFormatter(format OutputFormat, useColor bool, out io.Writer) *Formatter {
	return &Formatter{
		format: format,
		color:  useColor,
		out:    out,
	}
}

func (f *Formatter) FormatResult(result *CallResult) string {
	if f.format == FormatJSON {
		s, _ := result.JSON()
		return s
	}
	if f.format == FormatMarkdown {
		return result.Markdown()
	}
	if f.format == FormatRaw {
		return result.Text("")
	}

	// Default text format
	if result.IsError() {
		return f.red("Error: ") + result.Text("\n")
	}
	return result.Text("\n")
}

func (f *Formatter) FormatError(err errors.ClassifiedError) string {
	if f.format == FormatJSON {
		data, _ := json.MarshalIndent(err, "", "  ")
		return string(data)
	}

	var msg string
	if f.color {
		msg = color.RedString("Error [%s]: %s", err.Kind, err.Message)
		if err.Hint != "" {
			msg += "\n" + color.YellowString("Hint: %s", err.Hint)
		}
	} else {
		msg = fmt.Sprintf("Error [%s]: %s", err.Kind, err.Message)
		if err.Hint != "" {
			msg += "\nHint: " + err.Hint
		}
	}
	return msg
}

// FormatCourses writes search matches. Text mode renders a table followed by
// a match count; raw mode prints the server's JSON payload unchanged.
func (f *Formatter) FormatCourses(courses []catalog.Course, result *CallResult) error {
	switch f.format {
	case FormatJSON:
		if courses == nil {
			courses = []catalog.Course{}
		}
		data, err := json.MarshalIndent(courses, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(f.out, string(data))
		return err
	case FormatRaw, FormatMarkdown:
		_, err := fmt.Fprintln(f.out, f.FormatResult(result))
		return err
	}

	if len(courses) == 0 {
		_, err := fmt.Fprintln(f.out, f.yellow("No courses found."))
		return err
	}

	table := tablewriter.NewTable(f.out,
		tablewriter.WithHeader([]string{"ID", "Title", "Level", "Subject", "Weeks", "Provider", "Instructor"}),
	)
	for _, c := range courses {
		table.Append([]string{c.ID, c.Title, c.Level, c.Subject, strconv.Itoa(c.Duration), c.Provider, c.Instructor})
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(f.out, f.green(fmt.Sprintf("%d course(s) found", len(courses))))
	return err
}

// FormatTools writes the tool list with each tool's argument names.
func (f *Formatter) FormatTools(tools []mcp.Tool) error {
	if f.format == FormatJSON {
		data, err := json.MarshalIndent(tools, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(f.out, string(data))
		return err
	}
	if f.format == FormatRaw {
		for _, t := range tools {
			if _, err := fmt.Fprintln(f.out, t.Name); err != nil {
				return err
			}
		}
		return nil
	}

	table := tablewriter.NewTable(f.out,
		tablewriter.WithHeader([]string{"Name", "Arguments", "Description"}),
	)
	for _, t := range tools {
		table.Append([]string{t.Name, argumentNames(t), t.Description})
	}
	return table.Render()
}

func argumentNames(t mcp.Tool) string {
	names := make([]string, 0, len(t.InputSchema.Properties))
	for name := range t.InputSchema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func (f *Formatter) red(s string) string {
	if !f.color {
		return s
	}
	return color.New(color.FgRed).Sprint(s)
}

func (f *Formatter) yellow(s string) string {
	if !f.color {
		return s
	}
	return color.New(color.FgYellow).Sprint(s)
}

func (f *Formatter) green(s string) string {
	if !f.color {
		return s
	}
	return color.New(color.FgGreen).Sprint(s)
}
