package api

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/course-catalog-mcp/catalog/internal/domain/catalog"
	"github.com/course-catalog-mcp/catalog/internal/domain/search"
	"github.com/course-catalog-mcp/catalog/internal/json"
	"github.com/course-catalog-mcp/catalog/internal/logger"
	"github.com/course-catalog-mcp/catalog/internal/metrics"
)

// Server identity reported during the MCP handshake.
const (
	ServerName    = "course-catalog-server"
	ServerVersion = "0.1.0"
)

// ToolSearchCourses is the only tool exposed by the server.
const ToolSearchCourses = "search_courses"

// CatalogServer wires the search engine into an MCP server. Both transports
// serve the same CatalogServer.
type CatalogServer struct {
	mcp     *server.MCPServer
	metrics *metrics.Recorder

	// search is the query entry point, swappable in tests.
	search func(search.Criteria) []catalog.Course
}

// Option configures a CatalogServer.
type Option func(*CatalogServer)

// WithMetrics records every tool call on r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(s *CatalogServer) {
		s.metrics = r
	}
}

// NewCatalogServer creates an MCP server exposing search_courses over cat.
func NewCatalogServer(cat *catalog.Catalog, opts ...Option) *CatalogServer {
	s := &CatalogServer{
		mcp: server.NewMCPServer(ServerName, ServerVersion,
			server.WithToolCapabilities(false),
		),
		search: search.NewEngine(cat).Search,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.metrics.SetCatalogSize(cat.Len())
	s.mcp.AddTool(SearchCoursesTool(), s.handleSearchCourses)
	return s
}

// MCPServer returns the underlying protocol server.
func (s *CatalogServer) MCPServer() *server.MCPServer {
	return s.mcp
}

// SearchCoursesTool describes the search_courses tool and its input schema.
func SearchCoursesTool() mcp.Tool {
	return mcp.NewTool(ToolSearchCourses,
		mcp.WithDescription("Search the course catalog by keywords, subject, level, maximum duration and provider. All filters are optional and combined with AND."),
		mcp.WithString(ArgQuery,
			mcp.Description("Search keywords (e.g., 'machine learning', 'python programming')"),
		),
		mcp.WithString(ArgSubject,
			mcp.Description("Subject area (e.g., 'Computer Science', 'Mathematics')"),
		),
		mcp.WithString(ArgLevel,
			mcp.Description("Difficulty level ('beginner', 'intermediate', 'advanced')"),
		),
		mcp.WithNumber(ArgDuration,
			mcp.Description("Maximum course duration in weeks"),
		),
		mcp.WithString(ArgProvider,
			mcp.Description("Platform provider (e.g., 'Coursera', 'edX')"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(false),
	)
}

func (s *CatalogServer) handleSearchCourses(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	requestID := uuid.NewString()

	criteria, err := CriteriaFromArguments(req.GetArguments())
	if err != nil {
		logger.Warnf("[%s] %s rejected: %v", requestID, ToolSearchCourses, err)
		s.metrics.ObserveCall(ToolSearchCourses, metrics.StatusInvalid, 0, 0)
		return nil, fmt.Errorf("invalid arguments for %s: %w", ToolSearchCourses, err)
	}

	start := time.Now()
	text, count, err := s.run(criteria)
	elapsed := time.Since(start)
	if err != nil {
		logger.Errorf("[%s] %s %s failed: %v", requestID, ToolSearchCourses, criteria, err)
		s.metrics.ObserveCall(ToolSearchCourses, metrics.StatusError, elapsed, 0)
		return mcp.NewToolResultError(fmt.Sprintf("Error searching courses: %v", err)), nil
	}

	logger.Infof("[%s] %s %s matched %d course(s) in %s", requestID, ToolSearchCourses, criteria, count, elapsed)
	s.metrics.ObserveCall(ToolSearchCourses, metrics.StatusOK, elapsed, count)
	return mcp.NewToolResultText(text), nil
}

// run executes the query and renders the payload. A panic anywhere in the
// query is returned as an error.
func (s *CatalogServer) run(criteria search.Criteria) (text string, count int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	courses := s.search(criteria)
	text, err = FormatCourses(courses)
	return text, len(courses), err
}

// FormatCourses renders courses as two-space indented JSON. An empty result
// renders as [].
func FormatCourses(courses []catalog.Course) (string, error) {
	if courses == nil {
		courses = []catalog.Course{}
	}
	data, err := json.MarshalIndent(courses, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
