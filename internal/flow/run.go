package flow

import (
	"context"
	"time"
)

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// RunEvent describes one finished flow invocation. It never carries prompt
// or document text.
type RunEvent struct {
	Operation     string    `json:"operation"`
	UserID        string    `json:"user_id"`
	Status        string    `json:"status"`
	ErrorKind     string    `json:"error_kind,omitempty"`
	DurationMs    int64     `json:"duration_ms"`
	CorrelationID string    `json:"correlation_id"`
	Timestamp     time.Time `json:"timestamp"`
}

// RunRecorder receives run events. Implementations must not block the flow
// on failure.
type RunRecorder interface {
	Record(ctx context.Context, ev RunEvent)
}

// Recorders fans an event out to every recorder in order.
type Recorders []RunRecorder

func (rs Recorders) Record(ctx context.Context, ev RunEvent) {
	for _, r := range rs {
		if r != nil {
			r.Record(ctx, ev)
		}
	}
}
