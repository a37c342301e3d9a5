package run

import "time"

// Run is a persisted flow invocation record.
type Run struct {
	ID            string    `json:"id"`
	Operation     string    `json:"operation"`
	UserID        string    `json:"user_id"`
	Status        string    `json:"status"`
	ErrorKind     string    `json:"error_kind,omitempty"`
	DurationMs    int64     `json:"duration_ms"`
	CorrelationID string    `json:"correlation_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

const (
	DefaultLimit = 20
	MaxLimit     = 100
)
