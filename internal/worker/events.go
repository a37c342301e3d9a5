package worker

import (
	"fmt"
	"time"
)

// FlowCompletedPayload mirrors the run event published on config.TopicFlowCompleted.
type FlowCompletedPayload struct {
	Operation     string    `json:"operation"`
	UserID        string    `json:"user_id"`
	Status        string    `json:"status"`
	ErrorKind     string    `json:"error_kind,omitempty"`
	DurationMs    int64     `json:"duration_ms"`
	CorrelationID string    `json:"correlation_id"`
	Timestamp     time.Time `json:"timestamp"`
}

func (p FlowCompletedPayload) Validate() error {
	if p.Operation == "" {
		return fmt.Errorf("missing operation")
	}
	if p.UserID == "" {
		return fmt.Errorf("missing user_id")
	}
	if p.Status != "ok" && p.Status != "error" {
		return fmt.Errorf("invalid status %q", p.Status)
	}
	return nil
}
