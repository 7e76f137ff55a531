// Package scenario runs scripted search sessions against a catalog server
// and checks each step's outcome.
package scenario

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"github.com/course-catalog-mcp/catalog/internal/cli/client"
)

// Actions a step can take.
const (
	ActionListTools = "list_tools"
	ActionSearch    = "search"
	ActionWait      = "wait"
)

// Scenario represents a test scenario defined in YAML.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

type Step struct {
	Name   string         `yaml:"name"`
	Action string         `yaml:"action"`
	Args   map[string]any `yaml:"args,omitempty"`
	Wait   time.Duration  `yaml:"wait,omitempty"`
	Expect Expect         `yaml:"expect"`
}

// Expect lists the checks applied to a step. Unset fields are not checked.
type Expect struct {
	// Error expects the call itself to fail, as with invalid arguments.
	Error bool `yaml:"error"`

	IsError  *bool    `yaml:"is_error"`
	Count    *int     `yaml:"count"`
	IDs      []string `yaml:"ids"`
	Contains string   `yaml:"contains"`
	Tools    []string `yaml:"tools"`
}

// Caller is the part of the catalog client a scenario needs.
type Caller interface {
	ListTools(ctx context.Context) ([]mcp.Tool, error)
	SearchCourses(ctx context.Context, args map[string]any) (*client.CallResult, error)
}

// Runner executes scenarios and reports progress to Out.
type Runner struct {
	Client Caller
	Out    io.Writer
}

// LoadScenario loads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

// ParseScenario decodes a YAML scenario.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", s.Name)
	}
	return &s, nil
}

// Run executes a single scenario and stops at the first failing step.
func (r *Runner) Run(ctx context.Context, s *Scenario) error {
	r.printf("Running scenario: %s\n", s.Name)

	for i, step := range s.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("#%d %s", i+1, step.Action)
		}
		r.printf("  Step: %s\n", name)

		if err := r.runStep(ctx, step); err != nil {
			return fmt.Errorf("step %s failed: %w", name, err)
		}
	}

	r.printf("Scenario passed: %s (%d steps)\n", s.Name, len(s.Steps))
	return nil
}

func (r *Runner) runStep(ctx context.Context, step Step) error {
	switch step.Action {
	case ActionListTools:
		tools, err := r.Client.ListTools(ctx)
		if err := checkCallError(step.Expect, err); err != nil || step.Expect.Error {
			return err
		}
		return checkTools(step.Expect, tools)

	case ActionSearch:
		res, err := r.Client.SearchCourses(ctx, step.Args)
		if err := checkCallError(step.Expect, err); err != nil || step.Expect.Error {
			return err
		}
		return checkResult(step.Expect, res)

	case ActionWait:
		wait := step.Wait
		if wait <= 0 {
			wait = time.Second
		}
		r.printf("  Waiting %s...\n", wait)
		select {
		case <-time.After(wait):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}

	default:
		return fmt.Errorf("unknown action: %s", step.Action)
	}
}

func checkCallError(expect Expect, err error) error {
	switch {
	case expect.Error && err == nil:
		return fmt.Errorf("expected the call to fail")
	case !expect.Error && err != nil:
		return err
	}
	return nil
}

func checkTools(expect Expect, tools []mcp.Tool) error {
	names := make([]string, 0, len(tools))
	for _, t := range tools {
		names = append(names, t.Name)
	}
	for _, want := range expect.Tools {
		if !slices.Contains(names, want) {
			return fmt.Errorf("expected tool %s not found in [%s]", want, strings.Join(names, ", "))
		}
	}
	if expect.Count != nil && *expect.Count != len(tools) {
		return fmt.Errorf("expected %d tool(s), got %d", *expect.Count, len(tools))
	}
	return nil
}

func checkResult(expect Expect, res *client.CallResult) error {
	if expect.IsError != nil && *expect.IsError != res.IsError {
		return fmt.Errorf("expected isError=%t, got %t: %s", *expect.IsError, res.IsError, res.Text())
	}
	if expect.Contains != "" && !strings.Contains(res.Text(), expect.Contains) {
		return fmt.Errorf("expected result to contain %q. Result: %s", expect.Contains, res.Text())
	}
	if expect.Count == nil && expect.IDs == nil {
		return nil
	}

	courses, err := res.Courses()
	if err != nil {
		return err
	}
	if expect.Count != nil && *expect.Count != len(courses) {
		return fmt.Errorf("expected %d course(s), got %d", *expect.Count, len(courses))
	}
	if expect.IDs != nil {
		ids := make([]string, 0, len(courses))
		for _, c := range courses {
			ids = append(ids, c.ID)
		}
		if !slices.Equal(expect.IDs, ids) {
			return fmt.Errorf("expected ids [%s], got [%s]", strings.Join(expect.IDs, ", "), strings.Join(ids, ", "))
		}
	}
	return nil
}

func (r *Runner) printf(format string, args ...any) {
	if r.Out != nil {
		fmt.Fprintf(r.Out, format, args...)
	}
}
