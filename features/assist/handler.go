package assist

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"pagewise/internal/flow"
	"pagewise/internal/middleware"
)

type Dispatcher interface {
	Dispatch(ctx context.Context, op flow.Operation, uid string, p flow.Payload) (any, error)
	DispatchJSON(ctx context.Context, op flow.Operation, uid string, raw []byte) (any, error)
}

// Handler exposes each flow at its own route. GET reads query parameters,
// POST reads a JSON body.
type Handler struct {
	dispatcher Dispatcher
	maxBytes   int64
}

func NewHandler(d Dispatcher, maxBytes int64) *Handler {
	return &Handler{dispatcher: d, maxBytes: maxBytes}
}

// Register mounts the flow routes on mux behind authn.
func (h *Handler) Register(mux *http.ServeMux, authn func(http.Handler) http.Handler) {
	for _, op := range flow.Operations {
		mux.Handle("/"+string(op), authn(h.Flow(op)))
	}
}

func (h *Handler) Flow(op flow.Operation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		uid := middleware.UserID(ctx)

		var (
			out any
			err error
		)
		switch r.Method {
		case http.MethodGet:
			q := r.URL.Query()
			out, err = h.dispatcher.Dispatch(ctx, op, uid, flow.Payload{
				PageID:    q.Get("pageId"),
				PageIDAlt: q.Get("page_id"),
				Question:  q.Get("question"),
			})
		case http.MethodPost:
			body, readErr := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBytes))
			if readErr != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(readErr, &tooLarge) {
					h.writeError(ctx, w, "PAYLOAD_TOO_LARGE", "request body too large", http.StatusRequestEntityTooLarge)
					return
				}
				h.writeError(ctx, w, "VALIDATION", "failed to read request body", http.StatusBadRequest)
				return
			}
			out, err = h.dispatcher.DispatchJSON(ctx, op, uid, body)
		default:
			w.Header().Set("Allow", "GET, POST")
			h.writeError(ctx, w, "METHOD_NOT_ALLOWED", "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		if err != nil {
			res := flow.Public(err)
			h.writeError(ctx, w, strings.ToUpper(string(res.Kind)), res.Message, statusFor(res.Kind))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]interface{}{"data": out}); err != nil {
			slog.ErrorContext(ctx, "failed to encode response", "error", err)
		}
	}
}

func statusFor(kind flow.Kind) int {
	switch kind {
	case flow.KindValidation:
		return http.StatusBadRequest
	case flow.KindNotFound, flow.KindNotAuthorized:
		return http.StatusNotFound
	case flow.KindEmptyContent:
		return http.StatusUnprocessableEntity
	case flow.KindGeneration:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, code, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
		"correlationId": middleware.GetCorrelationID(ctx),
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}
