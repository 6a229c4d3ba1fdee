// AngelaMos | 2026
// ratelimit_test.go

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsboard/opsboard/internal/core"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiterAllowsWithinLimit(t *testing.T) {
	limiter := NewRateLimiter(newTestRedis(t), RateLimitConfig{
		Limit: PerMinute(10, 10),
	})

	handler := limiter.Handler(okHandler())

	for range 5 {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimiterBlocksOverLimit(t *testing.T) {
	limiter := NewRateLimiter(newTestRedis(t), RateLimitConfig{
		Limit: PerMinute(2, 2),
	})

	handler := limiter.Handler(okHandler())

	var last *httptest.ResponseRecorder
	for range 5 {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.2:1234"

		last = httptest.NewRecorder()
		handler.ServeHTTP(last, req)
	}

	require.NotNil(t, last)
	assert.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.Equal(t, core.CodeRateLimited, decodeErrorBody(t, last).ErrorCode)
	assert.NotEmpty(t, last.Header().Get("Retry-After"))
}

func TestRateLimiterSeparateKeys(t *testing.T) {
	limiter := NewRateLimiter(newTestRedis(t), RateLimitConfig{
		Limit: PerMinute(1, 1),
	})

	handler := limiter.Handler(okHandler())

	first := httptest.NewRequest(http.MethodGet, "/", nil)
	first.RemoteAddr = "10.0.0.3:1234"
	firstRec := httptest.NewRecorder()
	handler.ServeHTTP(firstRec, first)

	// Different client IP gets its own bucket.
	second := httptest.NewRequest(http.MethodGet, "/", nil)
	second.RemoteAddr = "10.0.0.4:1234"
	secondRec := httptest.NewRecorder()
	handler.ServeHTTP(secondRec, second)

	assert.Equal(t, http.StatusOK, firstRec.Code)
	assert.Equal(t, http.StatusOK, secondRec.Code)
}

func TestRateLimiterBypass(t *testing.T) {
	limiter := NewRateLimiter(newTestRedis(t), RateLimitConfig{
		Limit:      PerMinute(1, 1),
		BypassFunc: func(r *http.Request) bool { return true },
	})

	handler := limiter.Handler(okHandler())

	for range 10 {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.5:1234"

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimiterLocalFallback(t *testing.T) {
	// Redis is unreachable; the in-process limiter takes over instead
	// of letting requests through unchecked.
	dead := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	limiter := NewRateLimiter(dead, RateLimitConfig{
		Limit: PerMinute(2, 2),
	})

	handler := limiter.Handler(okHandler())

	var blocked bool
	for range 10 {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.6:1234"

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code == http.StatusTooManyRequests {
			blocked = true
		}
	}

	assert.True(t, blocked)
}

func TestKeyByLogin(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil)
	req.RemoteAddr = "10.0.0.7:9999"

	key := KeyByLogin(req)
	assert.Contains(t, key, "login")
	assert.Contains(t, key, "10.0.0.7")
}
