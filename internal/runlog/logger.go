package runlog

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"pagewise/internal/flow"
)

// Logger appends one JSON line per flow run.
type Logger struct {
	writer io.Writer
	mu     sync.Mutex
}

func NewLogger(w io.Writer) *Logger {
	return &Logger{writer: w}
}

func NewFileLogger(path string) (*Logger, io.Closer, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, nil, err
	}

	cleanPath := filepath.Clean(path)
	f, err := os.OpenFile(cleanPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600) // #nosec G304 -- path is from application config, not user input
	if err != nil {
		return nil, nil, err
	}
	return NewLogger(io.MultiWriter(os.Stdout, f)), f, nil
}

func (l *Logger) Record(ctx context.Context, ev flow.RunEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := json.NewEncoder(l.writer).Encode(ev); err != nil {
		slog.ErrorContext(ctx, "failed to write run log entry", "error", err)
	}
}
