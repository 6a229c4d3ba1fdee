// AngelaMos | 2026
// handler_test.go

package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsboard/opsboard/internal/core"
	"github.com/opsboard/opsboard/internal/middleware"
)

func newTestRouter(t *testing.T, users *fakeUserProvider) chi.Router {
	t.Helper()

	svc, _ := newTestService(t, users)
	handler := NewHandler(svc)

	r := chi.NewRouter()
	handler.RegisterRoutes(r, middleware.Authenticator(svc), nil)
	return r
}

func postJSON(router http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestLoginEndpointSuccess(t *testing.T) {
	user := testUser(t, "hunter2hunter2")
	router := newTestRouter(t, newFakeUserProvider(user))

	rec := postJSON(
		router,
		"/auth/login",
		`{"username": "Alice", "password": "hunter2hunter2"}`,
	)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp LoginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "u-1", resp.UserID)
}

func TestLoginEndpointWrongPassword(t *testing.T) {
	user := testUser(t, "hunter2hunter2")
	router := newTestRouter(t, newFakeUserProvider(user))

	rec := postJSON(
		router,
		"/auth/login",
		`{"username": "alice", "password": "nope"}`,
	)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body core.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, core.CodeInvalidCredentials, body.ErrorCode)
	assert.NotEmpty(t, body.Detail)
}

func TestLoginEndpointUnknownUserIdenticalShape(t *testing.T) {
	user := testUser(t, "hunter2hunter2")
	router := newTestRouter(t, newFakeUserProvider(user))

	unknown := postJSON(
		router,
		"/auth/login",
		`{"username": "nobody", "password": "whatever"}`,
	)
	wrong := postJSON(
		router,
		"/auth/login",
		`{"username": "alice", "password": "whatever"}`,
	)

	assert.Equal(t, wrong.Code, unknown.Code)
	assert.JSONEq(t, wrong.Body.String(), unknown.Body.String())
}

func TestLoginEndpointInactiveAccount(t *testing.T) {
	user := testUser(t, "hunter2hunter2")
	user.IsActive = false
	router := newTestRouter(t, newFakeUserProvider(user))

	rec := postJSON(
		router,
		"/auth/login",
		`{"username": "alice", "password": "hunter2hunter2"}`,
	)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body core.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, core.CodeAccountInactive, body.ErrorCode)
}

func TestLoginEndpointValidation(t *testing.T) {
	router := newTestRouter(t, newFakeUserProvider())

	rec := postJSON(router, "/auth/login", `{"username": "alice"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body core.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, core.CodeValidationError, body.ErrorCode)
}

func TestMeEndpoint(t *testing.T) {
	user := testUser(t, "hunter2hunter2")
	router := newTestRouter(t, newFakeUserProvider(user))

	login := postJSON(
		router,
		"/auth/login",
		`{"username": "alice", "password": "hunter2hunter2"}`,
	)
	require.Equal(t, http.StatusOK, login.Code)

	var resp LoginResponse
	require.NoError(t, json.NewDecoder(login.Body).Decode(&resp))

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+resp.AccessToken)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var me MeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&me))
	assert.Equal(t, "alice", me.Username)
	assert.Equal(t, "u-1", me.UserID)
}

func TestMeEndpointRequiresAuth(t *testing.T) {
	router := newTestRouter(t, newFakeUserProvider())

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body core.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, core.CodeAuthenticationRequired, body.ErrorCode)
}
