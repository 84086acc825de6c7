package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_RegistersAllRoutes(t *testing.T) {
	router := newTestEnv(t).handler.Init()

	tests := []struct {
		method     string
		path       string
		wantStatus int
	}{
		// public
		{http.MethodGet, "/api/version", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		// empty body is rejected by the handler, which proves the route exists
		{http.MethodPost, "/api/user/login", http.StatusBadRequest},
		{http.MethodPost, "/api/user/register", http.StatusBadRequest},
		// protected routes answer 401 without a token
		{http.MethodGet, "/api/user/profile/some-id", http.StatusUnauthorized},
		{http.MethodGet, "/api/user/list", http.StatusUnauthorized},
		{http.MethodGet, "/api/user/list/2", http.StatusUnauthorized},
		{http.MethodPut, "/api/user/update", http.StatusUnauthorized},
		{http.MethodPost, "/api/user/upload", http.StatusUnauthorized},
		{http.MethodDelete, "/api/user/some-id", http.StatusUnauthorized},
		{http.MethodGet, "/api/user/all", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestInit_UnknownRouteReturns404(t *testing.T) {
	router := newTestEnv(t).handler.Init()

	req := httptest.NewRequest(http.MethodGet, "/api/nonexistent", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInit_WrongMethodReturns404(t *testing.T) {
	router := newTestEnv(t).handler.Init()

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/version"},
		{http.MethodGet, "/api/user/login"},
		{http.MethodGet, "/api/user/upload"},
		{http.MethodPatch, "/api/user/update"},
		{http.MethodPost, "/api/user/all"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.NotEqual(t, http.StatusMethodNotAllowed, rec.Code)
		})
	}
}

func TestInit_AvatarRouteIsPublic(t *testing.T) {
	router := newTestEnv(t).handler.Init()

	req := httptest.NewRequest(http.MethodGet, "/api/user/avatar/missing.png", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"status":"error","message":"image does not exist"}`, rec.Body.String())
}

func TestInit_EchoesTraceID(t *testing.T) {
	router := newTestEnv(t).handler.Init()

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	_, err := uuid.Parse(rec.Header().Get(traceIDHeader))
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set(traceIDHeader, "caller-trace")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "caller-trace", rec.Header().Get(traceIDHeader))
}

func TestInit_RecoversFromPanics(t *testing.T) {
	h := newTestEnv(t).handler
	h.services.AppInfoService = nil
	router := h.Init()

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()

	assert.NotPanics(t, func() { router.ServeHTTP(rec, req) })
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
