package app

import (
	"fmt"
	"net/http"

	"github.com/course-catalog-mcp/catalog/internal/json"
	"github.com/course-catalog-mcp/catalog/internal/logger"
)

// registerLogRoutes exposes the in-memory log buffer next to /metrics.
func registerLogRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /logs", handleGetLogs)
	mux.HandleFunc("DELETE /logs", handleClearLogs)
	mux.HandleFunc("GET /logs/stream", handleStreamLogs)
}

func handleGetLogs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(logger.GetLogs())
}

func handleClearLogs(w http.ResponseWriter, r *http.Request) {
	if err := logger.ClearLogs(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "cleared"})
}

// handleStreamLogs sends every new log entry as a server-sent event until
// the client disconnects.
func handleStreamLogs(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	sub := logger.Subscribe()
	defer logger.Unsubscribe(sub)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case entry, ok := <-sub:
			if !ok {
				return
			}
			data, err := json.Marshal(entry)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
	}
}
