// AngelaMos | 2026
// handler_test.go

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	err error
}

func (s *stubChecker) Ping(_ context.Context) error {
	return s.err
}

func newTestHandler(dbErr, redisErr error) http.Handler {
	h := NewHandler("test")
	h.AddDependency("database", &stubChecker{err: dbErr})
	h.AddDependency("redis", &stubChecker{err: redisErr})

	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func get(handler http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestLiveness(t *testing.T) {
	rec := get(newTestHandler(nil, nil), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body statusResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "test", body.Version)
}

func TestReadinessAllHealthy(t *testing.T) {
	rec := get(newTestHandler(nil, nil), "/readyz")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body readinessResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.Len(t, body.Checks, 2)
	for _, check := range body.Checks {
		assert.True(t, check.Healthy, check.Name)
	}
}

func TestReadinessDegraded(t *testing.T) {
	rec := get(newTestHandler(errors.New("down"), nil), "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body readinessResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "degraded", body.Status)
}

func TestReadinessDuringShutdown(t *testing.T) {
	h := NewHandler("test")
	h.SetShutdown(true)

	r := chi.NewRouter()
	h.RegisterRoutes(r)

	rec := get(r, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body statusResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "shutting_down", body.Status)
}

func TestReadinessNotReady(t *testing.T) {
	h := NewHandler("test")
	h.SetReady(false)

	r := chi.NewRouter()
	h.RegisterRoutes(r)

	rec := get(r, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
