package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/course-catalog-mcp/catalog/internal/json"
)

// Level is a log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

// ParseLevel maps a config value such as "warn" to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// LogEntry represents a single log record.
type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
}

var (
	mu          sync.RWMutex
	logEntries  []LogEntry
	maxEntries  = 1000 // Keep last 1000 in memory
	maxFileSize = int64(5 * 1024 * 1024)
	minLevel    = LevelInfo
	console     io.Writer = os.Stderr
	logFilePath string
	logFile     *os.File
	logChan     = make(chan LogEntry, 100)
	done        chan struct{}
	workerDone  chan struct{}
	subscribers = make(map[chan LogEntry]bool)
	subsMu      sync.RWMutex
)

// Init opens a JSON-lines log file in logDir and starts the file writer.
// Without Init, entries only go to the console and the in-memory buffer.
func Init(logDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logFileName := fmt.Sprintf("%s course-catalog.log", time.Now().Format("20060102"))
	logFilePath = filepath.Join(logDir, logFileName)

	f, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	logFile = f

	done = make(chan struct{})
	workerDone = make(chan struct{})
	go logWorker(done, workerDone)

	return nil
}

// SetLevel sets the minimum level that is recorded.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = l
}

// SetOutput redirects console output. Passing nil silences the console.
// Stdout must never be used while serving the stdio transport.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	console = w
}

// AddLog records a message at the given level.
func AddLog(level Level, message string) {
	mu.Lock()
	if level < minLevel {
		mu.Unlock()
		return
	}

	entry := LogEntry{
		Timestamp: time.Now().Format(time.RFC3339),
		Level:     level.String(),
		Message:   message,
	}

	logEntries = append(logEntries, entry)
	if len(logEntries) > maxEntries {
		logEntries = logEntries[len(logEntries)-maxEntries:]
	}
	out := console
	toFile := logFile != nil
	mu.Unlock()

	if out != nil {
		fmt.Fprintf(out, "[%s] [%s] %s\n", entry.Timestamp, entry.Level, message)
	}

	if toFile {
		select {
		case logChan <- entry:
		default:
			// Drop if the file worker is behind
		}
	}

	subsMu.RLock()
	for sub := range subscribers {
		select {
		case sub <- entry:
		default:
		}
	}
	subsMu.RUnlock()
}

func Debugf(format string, args ...any) { AddLog(LevelDebug, fmt.Sprintf(format, args...)) }
func Infof(format string, args ...any)  { AddLog(LevelInfo, fmt.Sprintf(format, args...)) }
func Warnf(format string, args ...any)  { AddLog(LevelWarn, fmt.Sprintf(format, args...)) }
func Errorf(format string, args ...any) { AddLog(LevelError, fmt.Sprintf(format, args...)) }

// Subscribe returns a channel that receives new log entries.
func Subscribe() chan LogEntry {
	subsMu.Lock()
	defer subsMu.Unlock()
	ch := make(chan LogEntry, 100)
	subscribers[ch] = true
	return ch
}

// Unsubscribe removes a log subscriber.
func Unsubscribe(ch chan LogEntry) {
	subsMu.Lock()
	defer subsMu.Unlock()
	if subscribers[ch] {
		delete(subscribers, ch)
		close(ch)
	}
}

// GetLogs returns a copy of the logs currently in memory.
func GetLogs() []LogEntry {
	mu.RLock()
	defer mu.RUnlock()

	res := make([]LogEntry, len(logEntries))
	copy(res, logEntries)
	return res
}

// ClearLogs wipes the in-memory buffer and truncates the log file.
func ClearLogs() error {
	mu.Lock()
	defer mu.Unlock()

	logEntries = []LogEntry{}

	if logFile == nil {
		return nil
	}
	logFile.Close()

	f, err := os.OpenFile(logFilePath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		logFile = nil
		return err
	}
	logFile = f
	return nil
}

// GetLogFilePath returns the path to the log file, or "" before Init.
func GetLogFilePath() string {
	mu.RLock()
	defer mu.RUnlock()
	return logFilePath
}

// Close flushes and closes the log file.
func Close() {
	mu.Lock()
	d, wd := done, workerDone
	done, workerDone = nil, nil
	mu.Unlock()

	if d != nil {
		close(d)
		<-wd
	}

	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

func logWorker(done <-chan struct{}, workerDone chan<- struct{}) {
	defer close(workerDone)
	for {
		select {
		case entry := <-logChan:
			writeEntry(entry)
		case <-done:
			for {
				select {
				case entry := <-logChan:
					writeEntry(entry)
				default:
					return
				}
			}
		}
	}
}

func writeEntry(entry LogEntry) {
	mu.Lock()
	defer mu.Unlock()

	f := logFile
	if f == nil {
		return
	}

	// Truncate once the file outgrows the limit
	if info, err := f.Stat(); err == nil && info.Size() > maxFileSize {
		f.Close()
		f, err = os.OpenFile(logFilePath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			logFile = nil
			return
		}
		logFile = f
		truncateEntry := LogEntry{
			Timestamp: time.Now().Format(time.RFC3339),
			Level:     LevelInfo.String(),
			Message:   "Log file reached 5MB limit and was truncated.",
		}
		data, _ := json.Marshal(truncateEntry)
		f.Write(append(data, '\n'))
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	f.Write(append(data, '\n'))
}
