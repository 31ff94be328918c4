package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/warehouse-inventory/pkg/auth"
	"github.com/tair/warehouse-inventory/pkg/logger"
)

func newRouter(h http.HandlerFunc) *mux.Router {
	router := mux.NewRouter()
	cfg := DefaultConfig("inventory-test")
	cfg.EnableTracing = false
	Register(router, cfg)
	router.HandleFunc("/api/inventory/{id}", h).Methods(http.MethodGet)
	return router
}

func TestRequestIDPropagation(t *testing.T) {
	var seen string
	router := newRouter(func(w http.ResponseWriter, r *http.Request) {
		seen = logger.RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/inventory/1", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/inventory/1", nil))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestRecovery(t *testing.T) {
	router := newRouter(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/inventory/1", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestTimeoutSetsDeadline(t *testing.T) {
	var deadline time.Time
	var ok bool
	router := newRouter(func(w http.ResponseWriter, r *http.Request) {
		deadline, ok = r.Context().Deadline()
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/inventory/1", nil))
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(30*time.Second), deadline, 5*time.Second)
}

func TestMetricsUseRouteTemplate(t *testing.T) {
	router := newRouter(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	counter := httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/inventory/{id}", "404")
	before := testutil.ToFloat64(counter)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/inventory/77", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/inventory/78", nil))

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestAdminOnly(t *testing.T) {
	const secret = "test-secret"
	protect := AdminOnly(secret)

	var claimsSeen *auth.Claims
	handler := protect(func(w http.ResponseWriter, r *http.Request) {
		claimsSeen, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	adminToken, err := auth.GenerateToken(secret, 1, "root", auth.RoleAdmin, time.Hour)
	require.NoError(t, err)
	userToken, err := auth.GenerateToken(secret, 2, "bob", "user", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"bad scheme", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"not admin", "Bearer " + userToken, http.StatusForbidden},
		{"admin", "Bearer " + adminToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/inventory", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}

	require.NotNil(t, claimsSeen)
	assert.Equal(t, "root", claimsSeen.Username)
}

func TestAdminOnlyDisabledWithoutSecret(t *testing.T) {
	called := false
	handler := AdminOnly("")(func(w http.ResponseWriter, r *http.Request) { called = true })

	handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil).WithContext(context.Background()))
	assert.True(t, called)
}
