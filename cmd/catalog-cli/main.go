package main

import (
	"os"

	"github.com/course-catalog-mcp/catalog/internal/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
