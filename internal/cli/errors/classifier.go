package errors

import (
	stderrors "errors"
	"strings"

	"github.com/course-catalog-mcp/catalog/internal/cli/client"
	"github.com/course-catalog-mcp/catalog/internal/domain/catalog"
)

type ErrorKind string

const (
	ErrorKindOffline     ErrorKind = "offline"
	ErrorKindNotFound    ErrorKind = "not-found"
	ErrorKindInvalidArgs ErrorKind = "invalid-args"
	ErrorKindTool        ErrorKind = "tool"
	ErrorKindStdio       ErrorKind = "stdio-exit"
	ErrorKindCatalog     ErrorKind = "catalog"
	ErrorKindOther       ErrorKind = "other"
)

type ClassifiedError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Hint    string    `json:"hint,omitempty"` // User-friendly suggestion
	Raw     error     `json:"-"`
}

func (e ClassifiedError) Error() string {
	return e.Message
}

func (e ClassifiedError) Unwrap() error {
	return e.Raw
}

// ToolError builds the classified form of a tool result flagged isError.
func ToolError(res *client.CallResult) ClassifiedError {
	return ClassifiedError{
		Kind:    ErrorKindTool,
		Message: res.Text(),
		Hint:    "The server failed while searching. Check the server logs.",
	}
}

func Classify(err error) ClassifiedError {
	if err == nil {
		return ClassifiedError{}
	}

	var classified ClassifiedError
	if stderrors.As(err, &classified) {
		return classified
	}

	msg := strings.ToLower(err.Error())

	switch {
	case stderrors.Is(err, client.ErrUnknownTransport):
		return ClassifiedError{
			Kind:    ErrorKindInvalidArgs,
			Message: err.Error(),
			Hint:    "Use --transport stdio, sse or direct",
			Raw:     err,
		}
	case stderrors.Is(err, catalog.ErrInvalidCatalog) || stderrors.Is(err, catalog.ErrUnsupportedFormat):
		return ClassifiedError{
			Kind:    ErrorKindCatalog,
			Message: err.Error(),
			Hint:    "Run 'validate-catalog' on the catalog file for details",
			Raw:     err,
		}
	case strings.Contains(msg, "connection refused") || strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded") || strings.Contains(msg, "no such host"):
		return ClassifiedError{
			Kind:    ErrorKindOffline,
			Message: err.Error(),
			Hint:    "Is the SSE server running? Start it with 'course-catalog-sse' or use --transport direct",
			Raw:     err,
		}
	case strings.Contains(msg, "invalid arguments") || strings.Contains(msg, "invalid params"):
		return ClassifiedError{
			Kind:    ErrorKindInvalidArgs,
			Message: err.Error(),
			Hint:    "Check the search flags; --duration takes a number of weeks",
			Raw:     err,
		}
	case strings.Contains(msg, "executable file not found") || strings.Contains(msg, "exit status") || strings.Contains(msg, "signal:") || strings.Contains(msg, "broken pipe"):
		return ClassifiedError{
			Kind:    ErrorKindStdio,
			Message: err.Error(),
			Hint:    "The server process could not be started or exited. Check --server-cmd",
			Raw:     err,
		}
	case strings.Contains(msg, "404") || strings.Contains(msg, "not found"):
		return ClassifiedError{
			Kind:    ErrorKindNotFound,
			Message: err.Error(),
			Hint:    "The requested resource was not found. Check the URL or tool name.",
			Raw:     err,
		}
	default:
		return ClassifiedError{
			Kind:    ErrorKindOther,
			Message: err.Error(),
			Hint:    "An unexpected error occurred.",
			Raw:     err,
		}
	}
}
