package api_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avezina/todostack/internal/api"
	"github.com/avezina/todostack/internal/auth"
	"github.com/avezina/todostack/internal/services"
	"github.com/avezina/todostack/internal/testutil"
)

// setupRouters wires both services against one shared test database, the
// way a single-node deployment runs them.
func setupRouters(t *testing.T) (*sql.DB, *chi.Mux, *chi.Mux, *auth.TokenManager) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	tokens := auth.NewTokenManager(testutil.TestSecret)
	userRouter := api.NewUserRouter(db, services.NewUserService(db), tokens, "http://localhost:3000")
	todoRouter := api.NewTodoRouter(db, services.NewTodoService(db), tokens, "http://localhost:3000")
	return db, userRouter, todoRouter, tokens
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(payload)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func credentials(email, password string) map[string]string {
	return map[string]string{"email": email, "password": password}
}

func TestRegisterSuccess(t *testing.T) {
	_, userRouter, _, _ := setupRouters(t)

	w := doJSON(t, userRouter, "POST", "/api/users/register", "", credentials("a@x.com", "secret1"))
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["uuid"])
	assert.Equal(t, "a@x.com", resp["email"])
	assert.NotContains(t, w.Body.String(), "password", "Register must not echo the password or digest")
}

func TestRegisterValidation(t *testing.T) {
	_, userRouter, _, _ := setupRouters(t)

	cases := []struct {
		name string
		body map[string]string
	}{
		{"invalid email", credentials("invalid", "secret1")},
		{"missing domain dot", credentials("a@x", "secret1")},
		{"whitespace in email", credentials("a b@x.com", "secret1")},
		{"short password", credentials("ok@x.com", "12345")},
		{"missing password", map[string]string{"email": "ok@x.com"}},
		{"missing email", map[string]string{"password": "secret1"}},
	}
	for _, tc := range cases {
		w := doJSON(t, userRouter, "POST", "/api/users/register", "", tc.body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "case %q", tc.name)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	_, userRouter, _, _ := setupRouters(t)

	w := doJSON(t, userRouter, "POST", "/api/users/register", "", credentials("a@x.com", "secret1"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, userRouter, "POST", "/api/users/register", "", credentials("a@x.com", "different-pass"))
	assert.Equal(t, http.StatusConflict, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Email already registered", resp["message"])
}

func TestLoginSuccessReturnsToken(t *testing.T) {
	_, userRouter, _, tokens := setupRouters(t)

	w := doJSON(t, userRouter, "POST", "/api/users/register", "", credentials("a@x.com", "secret1"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, userRouter, "POST", "/api/users/login", "", credentials("a@x.com", "secret1"))
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["token"])

	claims, err := tokens.Validate(resp["token"])
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.NotEmpty(t, claims.UUID)
}

func TestLoginFailuresAreIdentical(t *testing.T) {
	_, userRouter, _, _ := setupRouters(t)

	w := doJSON(t, userRouter, "POST", "/api/users/register", "", credentials("a@x.com", "secret1"))
	require.Equal(t, http.StatusCreated, w.Code)

	unknown := doJSON(t, userRouter, "POST", "/api/users/login", "", credentials("nobody@x.com", "secret1"))
	wrongPass := doJSON(t, userRouter, "POST", "/api/users/login", "", credentials("a@x.com", "wrongpass"))

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.JSONEq(t, unknown.Body.String(), wrongPass.Body.String(),
		"Unknown email and wrong password must produce identical responses")
	assert.Contains(t, unknown.Body.String(), "Invalid credentials")
}

func TestLoginNeverLeaksDigest(t *testing.T) {
	_, userRouter, _, _ := setupRouters(t)

	w := doJSON(t, userRouter, "POST", "/api/users/register", "", credentials("a@x.com", "secret1"))
	require.Equal(t, http.StatusCreated, w.Code)

	success := doJSON(t, userRouter, "POST", "/api/users/login", "", credentials("a@x.com", "secret1"))
	failure := doJSON(t, userRouter, "POST", "/api/users/login", "", credentials("a@x.com", "wrongpass"))

	for _, body := range []string{success.Body.String(), failure.Body.String()} {
		lower := strings.ToLower(body)
		assert.NotContains(t, lower, "password")
		assert.NotContains(t, lower, "secret1")
		assert.NotContains(t, lower, "$2a$", "bcrypt digests must never reach the client")
	}
}

func TestUserServiceHealth(t *testing.T) {
	_, userRouter, _, _ := setupRouters(t)

	w := doJSON(t, userRouter, "GET", "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
