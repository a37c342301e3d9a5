package stats

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRunRepo struct{ mock.Mock }

func (m *MockRunRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockRunRepo) CountFailed(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func TestHandler_GetStats_Table(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(*MockRunRepo)
		wantStatus int
		checkBody  func(*testing.T, map[string]interface{})
	}{
		{
			name: "Success",
			setupMocks: func(r *MockRunRepo) {
				r.On("Count", mock.Anything).Return(10, nil)
				r.On("CountFailed", mock.Anything).Return(3, nil)
			},
			wantStatus: http.StatusOK,
			checkBody: func(t *testing.T, body map[string]interface{}) {
				data := body["data"].(map[string]interface{})
				assert.Equal(t, float64(10), data["runs"])
				assert.Equal(t, float64(3), data["failed_runs"])
			},
		},
		{
			name: "Count Error",
			setupMocks: func(r *MockRunRepo) {
				r.On("Count", mock.Anything).Return(0, errors.New("db error"))
			},
			wantStatus: http.StatusInternalServerError,
			checkBody: func(t *testing.T, body map[string]interface{}) {
				errObj := body["error"].(map[string]interface{})
				assert.Equal(t, "INTERNAL_ERROR", errObj["code"])
			},
		},
		{
			name: "Failed Count Error",
			setupMocks: func(r *MockRunRepo) {
				r.On("Count", mock.Anything).Return(10, nil)
				r.On("CountFailed", mock.Anything).Return(0, errors.New("db error"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := new(MockRunRepo)
			tt.setupMocks(r)

			h := NewHandler(r)
			req := httptest.NewRequest("GET", "/stats", nil)
			w := httptest.NewRecorder()

			h.GetStats(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.checkBody != nil {
				var body map[string]interface{}
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				tt.checkBody(t, body)
			}
		})
	}
}
