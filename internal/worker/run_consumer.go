package worker

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nsqio/go-nsq"

	"pagewise/features/run"
	"pagewise/internal/middleware"
)

type RunStore interface {
	Save(ctx context.Context, r *run.Run) error
}

// RunConsumer persists flow.completed events.
type RunConsumer struct {
	store RunStore
}

func NewRunConsumer(s RunStore) *RunConsumer {
	return &RunConsumer{store: s}
}

func (h *RunConsumer) HandleMessage(m *nsq.Message) error {
	if len(m.Body) == 0 {
		return nil
	}

	var payload FlowCompletedPayload
	if err := json.Unmarshal(m.Body, &payload); err != nil {
		// Poison Pill: Invalid JSON, don't retry
		slog.Error("poison pill: invalid json", "error", err)
		return nil
	}
	if err := payload.Validate(); err != nil {
		slog.Error("poison pill: invalid run event", "error", err)
		return nil
	}

	ctx := context.Background()
	if payload.CorrelationID != "" {
		ctx = middleware.WithCorrelationID(ctx, payload.CorrelationID)
	}

	occurred := payload.Timestamp
	if occurred.IsZero() {
		occurred = time.Now().UTC()
	}

	saveCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	r := &run.Run{
		Operation:     payload.Operation,
		UserID:        payload.UserID,
		Status:        payload.Status,
		ErrorKind:     payload.ErrorKind,
		DurationMs:    payload.DurationMs,
		CorrelationID: payload.CorrelationID,
		OccurredAt:    occurred,
	}
	if err := h.store.Save(saveCtx, r); err != nil {
		slog.ErrorContext(ctx, "failed to save run", "error", err, "operation", payload.Operation)
		return err // Retry
	}

	slog.DebugContext(ctx, "run recorded", "id", r.ID, "operation", r.Operation)
	return nil
}
