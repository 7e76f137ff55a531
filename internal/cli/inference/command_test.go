package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferCommand(t *testing.T) {
	known := []string{"search", "tools", "scenario", "help", "completion"}
	valueFlags := []string{"--transport", "--url", "--timeout"}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no args", nil, ""},
		{"known command", []string{"tools"}, ""},
		{"help", []string{"help", "search"}, ""},
		{"flag first", []string{"--json", "tools"}, ""},
		{"keywords", []string{"machine", "learning"}, SearchCommand},
		{"single keyword", []string{"python"}, SearchCommand},
		{"bool flag before keyword", []string{"--json", "python"}, SearchCommand},
		{"value flag before command", []string{"--transport", "sse", "tools"}, ""},
		{"value flag before keyword", []string{"--url", "http://localhost:3001/sse", "react"}, SearchCommand},
		{"inline value", []string{"--timeout=500", "python"}, SearchCommand},
		{"only flags", []string{"--json", "--transport", "direct"}, ""},
		{"flag value is not a keyword", []string{"--transport", "stdio"}, ""},
		{"terminator", []string{"--", "python"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rest := InferCommand(tt.args, known, valueFlags)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.args, rest)
		})
	}
}
