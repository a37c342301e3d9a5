package flow

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"pagewise/internal/middleware"
)

// Operation names one of the four flows.
type Operation string

const (
	OpSummarize Operation = "summarize"
	OpAsk       Operation = "ask"
	OpCompose   Operation = "compose"
	OpEdit      Operation = "edit"
)

var Operations = []Operation{OpSummarize, OpAsk, OpCompose, OpEdit}

func ParseOperation(name string) (Operation, error) {
	for _, op := range Operations {
		if string(op) == name {
			return op, nil
		}
	}
	return "", newError(KindValidation, nil, "unknown operation %q", name)
}

type Flows interface {
	Summarize(ctx context.Context, in SummarizeInput) (SummarizeOutput, error)
	Ask(ctx context.Context, in AskInput) (AskOutput, error)
	Compose(ctx context.Context, in ComposeInput) (ComposeOutput, error)
	Edit(ctx context.Context, in EditInput) (EditOutput, error)
}

// Payload is the union of the flow request fields. page_id is accepted as an
// alias of pageId. A uid in the payload is ignored.
type Payload struct {
	PageID    string `json:"pageId"`
	PageIDAlt string `json:"page_id"`
	Question  string `json:"question"`
}

func (p Payload) pageID() string {
	if p.PageID != "" {
		return p.PageID
	}
	return p.PageIDAlt
}

// Dispatcher validates payloads, runs the named flow and records the outcome.
// It never touches storage or the model itself.
type Dispatcher struct {
	flows    Flows
	recorder RunRecorder
}

func NewDispatcher(f Flows, r RunRecorder) *Dispatcher {
	return &Dispatcher{flows: f, recorder: r}
}

// DispatchJSON decodes raw into a Payload and runs op. Empty input is treated as {}.
func (d *Dispatcher) DispatchJSON(ctx context.Context, op Operation, uid string, raw []byte) (any, error) {
	var p Payload
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, newError(KindValidation, err, "malformed %s payload", op)
		}
	}
	return d.Dispatch(ctx, op, uid, p)
}

// Dispatch runs op for the authenticated uid. Errors are always *Error.
func (d *Dispatcher) Dispatch(ctx context.Context, op Operation, uid string, p Payload) (any, error) {
	start := time.Now()
	out, err := d.run(ctx, op, uid, p)
	d.record(ctx, op, uid, start, err)
	if err != nil {
		slog.WarnContext(ctx, "flow failed", "operation", op, "kind", KindOf(err), "error", err)
		return nil, err
	}
	slog.InfoContext(ctx, "flow completed", "operation", op, "duration", time.Since(start))
	return out, nil
}

func (d *Dispatcher) run(ctx context.Context, op Operation, uid string, p Payload) (any, error) {
	var (
		out any
		err error
	)
	switch op {
	case OpSummarize:
		out, err = d.flows.Summarize(ctx, SummarizeInput{PageID: p.pageID(), UID: uid})
	case OpAsk:
		out, err = d.flows.Ask(ctx, AskInput{Question: p.Question, UID: uid})
	case OpCompose:
		out, err = d.flows.Compose(ctx, ComposeInput{Question: p.Question, PageID: p.pageID(), UID: uid})
	case OpEdit:
		out, err = d.flows.Edit(ctx, EditInput{Question: p.Question, PageID: p.pageID(), UID: uid})
	default:
		return nil, newError(KindValidation, nil, "unknown operation %q", op)
	}
	if err != nil && KindOf(err) == "" {
		err = newError(KindGeneration, err, "%s failed", op)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (d *Dispatcher) record(ctx context.Context, op Operation, uid string, start time.Time, err error) {
	if d.recorder == nil {
		return
	}
	ev := RunEvent{
		Operation:     string(op),
		UserID:        uid,
		Status:        StatusOK,
		DurationMs:    time.Since(start).Milliseconds(),
		CorrelationID: middleware.GetCorrelationID(ctx),
		Timestamp:     start.UTC(),
	}
	if err != nil {
		ev.Status = StatusError
		ev.ErrorKind = string(KindOf(err))
	}
	d.recorder.Record(ctx, ev)
}
