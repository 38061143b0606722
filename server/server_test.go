package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ray-remotestate/tableside/config"
	"github.com/ray-remotestate/tableside/handlers"
	"github.com/ray-remotestate/tableside/notify"
)

func testServer() *Server {
	cfg := &config.Config{
		AllowedOrigins: []string{"http://localhost:3000"},
		StorefrontURL:  "http://localhost:3000",
		TableCount:     2,
	}
	hub := notify.NewHub(cfg.AllowedOrigins)
	h := handlers.New(cfg, nil, hub)
	return SetupRoutes(cfg, h, hub)
}

func TestPreflightAnsweredWithCORSHeaders(t *testing.T) {
	svr := testServer()

	paths := []string{"/api/orders", "/api/menu", "/api/orders/some-id/status", "/login"}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodOptions, path, nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		svr.Router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code, "preflight %s", path)
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"), "preflight %s", path)
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST", "preflight %s", path)
	}
}

func TestPreflightFromUnknownOriginGetsNoCORSHeaders(t *testing.T) {
	svr := testServer()

	req := httptest.NewRequest(http.MethodOptions, "/api/orders", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	svr.Router.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMatchedRequestCarriesCORSHeaders(t *testing.T) {
	svr := testServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	svr.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealthReportsConnectedAdminClients(t *testing.T) {
	svr := testServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	svr.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"alive":true`)
	assert.Contains(t, rec.Body.String(), `"adminClients":0`)
}
