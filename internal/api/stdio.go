package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"sync"

	"github.com/mark3labs/mcp-go/server"

	"github.com/course-catalog-mcp/catalog/internal/json"
)

// StdioBanner is written to stderr once the stdio transport is ready.
const StdioBanner = "Course Catalog MCP server running on stdio"

// ServeStdio serves MCP messages read from in and writes responses to out
// until in is exhausted or ctx is cancelled. Transport errors go to errOut.
//
// Tool calls are answered on their own goroutines, so when in reaches EOF
// ServeStdio keeps running until every tool call read so far has been
// answered on out.
func (s *CatalogServer) ServeStdio(ctx context.Context, in io.Reader, out io.Writer, errOut io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(log.New(errOut, "", log.LstdFlags))

	pending := newPendingCalls()
	requests := io.TeeReader(in, &lineWatcher{onLine: pending.request})
	responses := &responseWriter{out: out, watcher: lineWatcher{onLine: pending.response}}

	if err := stdio.Listen(ctx, requests, responses); err != nil {
		return err
	}
	return pending.wait(ctx)
}

// rpcEnvelope holds the fields needed to pair requests with responses.
type rpcEnvelope struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
}

// idKey normalizes a JSON-RPC id so that 2 and 2.0 compare equal. It returns
// "" for a missing or null id.
func idKey(raw json.RawMessage) string {
	var v any
	if len(bytes.TrimSpace(raw)) == 0 || json.Unmarshal(raw, &v) != nil {
		return ""
	}
	switch id := v.(type) {
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case string:
		return strconv.Quote(id)
	case nil:
		return ""
	default:
		return fmt.Sprint(id)
	}
}

// pendingCalls tracks tools/call requests that have not been answered yet.
type pendingCalls struct {
	mu   sync.Mutex
	ids  map[string]struct{}
	idle chan struct{} // closed when ids becomes empty
}

func newPendingCalls() *pendingCalls {
	return &pendingCalls{ids: make(map[string]struct{})}
}

func (p *pendingCalls) request(line []byte) {
	var msg rpcEnvelope
	if json.Unmarshal(line, &msg) != nil || msg.Method != "tools/call" {
		return
	}
	key := idKey(msg.ID)
	if key == "" {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.ids[key]; ok {
		return
	}
	if len(p.ids) == 0 {
		p.idle = make(chan struct{})
	}
	p.ids[key] = struct{}{}
}

func (p *pendingCalls) response(line []byte) {
	var msg rpcEnvelope
	if json.Unmarshal(line, &msg) != nil || msg.Method != "" {
		return
	}
	key := idKey(msg.ID)

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.ids[key]; !ok {
		return
	}
	delete(p.ids, key)
	if len(p.ids) == 0 {
		close(p.idle)
	}
}

// wait blocks until every tracked call is answered or ctx is done.
func (p *pendingCalls) wait(ctx context.Context) error {
	p.mu.Lock()
	if len(p.ids) == 0 {
		p.mu.Unlock()
		return nil
	}
	idle := p.idle
	p.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// lineWatcher is an io.Writer that hands each complete line to onLine.
type lineWatcher struct {
	buf    []byte
	onLine func([]byte)
}

func (w *lineWatcher) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		if line := bytes.TrimSpace(w.buf[:i]); len(line) > 0 {
			w.onLine(line)
		}
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

// responseWriter serializes writes to out, which the stdio server performs
// from several goroutines, and reports each written line to watcher.
type responseWriter struct {
	mu      sync.Mutex
	out     io.Writer
	watcher lineWatcher
}

func (w *responseWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := w.out.Write(p)
	w.watcher.Write(p[:n])
	return n, err
}
