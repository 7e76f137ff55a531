// Command validate-catalog validates course catalog files (YAML, TOML or JSON).
//
// Usage:
//
//	validate-catalog [options] [path...]
//
// If no paths are provided, validates $CATALOG_PATH, or the built-in sample
// catalog when that is unset.
//
// Options:
//
//	-strict     Treat warnings as errors
//	-json       Output results as JSON
//	-quiet      Only output errors
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/course-catalog-mcp/catalog/internal/config"
	"github.com/course-catalog-mcp/catalog/internal/domain/catalog"
	"github.com/course-catalog-mcp/catalog/internal/json"
)

// samplePath labels the built-in catalog in reports.
const samplePath = "<built-in sample>"

func main() {
	var strict, asJSON, quiet bool

	fs := flag.NewFlagSet("validate-catalog", flag.ExitOnError)
	fs.BoolVar(&strict, "strict", false, "Treat warnings as errors")
	fs.BoolVar(&asJSON, "json", false, "Output results as JSON")
	fs.BoolVar(&quiet, "quiet", false, "Only output errors")

	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	paths := fs.Args()
	if len(paths) == 0 {
		if p := os.Getenv(config.EnvCatalogPath); p != "" {
			paths = []string{p}
		}
	}

	os.Exit(run(paths, strict, asJSON, quiet, os.Stdout, os.Stderr))
}

func run(paths []string, strict, asJSON, quiet bool, out, errOut io.Writer) int {
	exitCode := 0
	allResults := make(map[string]*catalog.ValidationResult)

	if len(paths) == 0 {
		allResults[samplePath] = catalog.Validate(catalog.Sample().Courses())
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprintf(errOut, "Error: %s: %v\n", path, err)
			exitCode = 1
			continue
		}

		if info.IsDir() {
			results, err := catalog.ValidateDirectory(path)
			if err != nil {
				fmt.Fprintf(errOut, "Error validating directory %s: %v\n", path, err)
				exitCode = 1
				continue
			}
			for name, result := range results {
				allResults[filepath.Join(path, name)] = result
			}
		} else {
			result, err := catalog.ValidateFile(path)
			if err != nil {
				fmt.Fprintf(errOut, "Error validating file %s: %v\n", path, err)
				exitCode = 1
				continue
			}
			allResults[path] = result
		}
	}

	if asJSON {
		outputJSON(out, allResults)
	} else {
		outputText(out, allResults, quiet, strict)
	}

	for _, result := range allResults {
		if !result.Valid {
			exitCode = 1
		}
		if strict && len(result.Warnings) > 0 {
			exitCode = 1
		}
	}

	return exitCode
}

type summary struct {
	Total   int `json:"total"`
	Valid   int `json:"valid"`
	Invalid int `json:"invalid"`
	Courses int `json:"courses"`
}

func outputJSON(out io.Writer, results map[string]*catalog.ValidationResult) {
	report := struct {
		Results map[string]*catalog.ValidationResult `json:"results"`
		Summary summary                              `json:"summary"`
	}{
		Results: results,
	}

	for _, r := range results {
		report.Summary.Total++
		report.Summary.Courses += r.Courses
		if r.Valid {
			report.Summary.Valid++
		} else {
			report.Summary.Invalid++
		}
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.Encode(report)
}

func outputText(out io.Writer, results map[string]*catalog.ValidationResult, quiet, strict bool) {
	paths := make([]string, 0, len(results))
	for path := range results {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	validCount := 0
	invalidCount := 0

	for _, path := range paths {
		result := results[path]
		if result.Valid && len(result.Warnings) == 0 && quiet {
			validCount++
			continue
		}

		if result.Valid {
			validCount++
			if !quiet {
				fmt.Fprintf(out, "✓ %s (%d courses)\n", path, result.Courses)
			}
		} else {
			invalidCount++
			fmt.Fprintf(out, "✗ %s\n", path)
		}

		for _, err := range result.Errors {
			fmt.Fprintf(out, "  ERROR: %s: %s\n", err.Field, err.Message)
		}

		if !quiet || strict {
			for _, warn := range result.Warnings {
				fmt.Fprintf(out, "  WARN:  %s: %s\n", warn.Field, warn.Message)
			}
		}
	}

	if !quiet {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Summary: %d valid, %d invalid\n", validCount, invalidCount)
	}
}
