package app_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagewise/internal/app"
	"pagewise/internal/testutils"
)

type echoGenerator struct{}

func (echoGenerator) Generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	return "ok", nil
}

func TestApp_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	suite := testutils.NewIntegrationSuite(t)
	suite.Setup()
	defer suite.Teardown()

	cfg := suite.GetAppConfig()
	a, err := app.New(cfg, suite.DB, echoGenerator{}, suite.NSQ, suite.Logger())
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	a.Handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBootstrap_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	suite := testutils.NewIntegrationSuite(t)
	suite.Setup()
	defer suite.Teardown()

	deps, err := app.Bootstrap(context.Background(), suite.GetAppConfig())
	require.NoError(t, err)
	defer deps.Close()

	assert.NotNil(t, deps.DB)
	assert.NotNil(t, deps.NSQProducer)
	assert.NotNil(t, deps.Generator)
	assert.NoError(t, deps.DB.Ping())
}
