package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"playtube/config"
	"playtube/internal/handler"
	"playtube/internal/repository"
	"playtube/internal/services"
	"playtube/internal/staging"
	"playtube/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		AppPort:           "8080",
		AppMode:           TestMode,
		JWTSecret:         "test-secret",
		AccessExpiryMin:   15,
		RefreshExpiryDays: 10,
		CORSOrigin:        "*",
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := testConfig()
	var userRepo repository.UserRepository // db-less: /health reports unhealthy
	issuer := services.NewTokenIssuer(cfg)
	authService := services.NewAuthService(userRepo, nil, issuer)

	srv := New(cfg, logger.Nop(), nil)
	srv.SetupRoutes(&Handlers{
		Auth: handler.NewAuthHandler(authService, staging.NewDiskStager(t.TempDir())),
	}, authService)
	return srv
}

func TestSetupRoutes_RegistersAllRoutes(t *testing.T) {
	srv := newTestServer(t)

	// Auth middleware answers 401 (not 404/405) on the guarded route,
	// bad bodies answer 400; either proves the route is wired.
	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/v1/auth/register"},
		{http.MethodPost, "/v1/auth/login"},
		{http.MethodPost, "/v1/auth/logout"},
		{http.MethodGet, "/ping"},
		{http.MethodGet, "/health"},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			rec := httptest.NewRecorder()
			srv.Engine().ServeHTTP(rec, req)

			assert.NotEqual(t, http.StatusNotFound, rec.Code)
			assert.NotEqual(t, http.StatusMethodNotAllowed, rec.Code)
		})
	}
}

func TestPing(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pong")
}

func TestHealth_WithoutDatabase(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/v1/auth/login", nil)
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
