package inference

import (
	"slices"
	"strings"
)

// SearchCommand is inferred for bare keywords, so `catalog-cli python` runs
// a search for "python".
const SearchCommand = "search"

// InferCommand returns the command to prepend to args, or "" when args
// already name a known command or hold only flags. Leading flags are skipped;
// valueFlags lists the flags ("--url", "-d") that consume the next argument.
func InferCommand(args []string, known []string, valueFlags []string) (string, []string) {
	if len(args) == 0 {
		return "", nil
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return "", args
		}
		if strings.HasPrefix(arg, "-") {
			if !strings.Contains(arg, "=") && slices.Contains(valueFlags, arg) {
				i++
			}
			continue
		}
		if slices.Contains(known, arg) {
			return "", args
		}
		return SearchCommand, args
	}

	return "", args
}
