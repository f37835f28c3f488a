package main

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userBody struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	DateJoined time.Time `json:"date_joined"`
	IsActive   bool      `json:"is_active"`
}

func registerBody(username, email, password, password2 string) string {
	return fmt.Sprintf(`{"username": %q, "email": %q, "password": %q, "password2": %q}`,
		username, email, password, password2)
}

func TestRegisterUser(t *testing.T) {
	server := newTestServer(t, newTestApplication(t))

	// When we register a new user
	resp, body := doRequest(t, http.MethodPost, server.URL+"/api/register/",
		registerBody("alice", " alice@example.com ", "s3cret-pass", "s3cret-pass"))

	// Then it succeeds
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	// And we get the created user without the password
	got := decode[userBody](t, body)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.True(t, got.IsActive)
	assert.False(t, got.DateJoined.IsZero())
	assert.NotContains(t, string(body), "password")
	assert.NotContains(t, string(body), "s3cret-pass")
}

func TestRegisterUser_Validation(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		fields []string
	}{
		{"missing everything", `{}`, []string{"username", "email", "password", "password2"}},
		{"bad email", registerBody("alice", "alice-at-example", "s3cret-pass", "s3cret-pass"), []string{"email"}},
		{"short password", registerBody("alice", "alice@example.com", "short", "short"), []string{"password"}},
		{"passwords differ", registerBody("alice", "alice@example.com", "s3cret-pass", "s3cret-pas"), []string{"password2"}},
		{"bad username characters", registerBody("alice smith", "alice@example.com", "s3cret-pass", "s3cret-pass"), []string{"username"}},
		{"long username", registerBody(strings.Repeat("a", 151), "alice@example.com", "s3cret-pass", "s3cret-pass"), []string{"username"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t, newTestApplication(t))

			resp, body := doRequest(t, http.MethodPost, server.URL+"/api/register/", tt.body)

			require.Equal(t, http.StatusBadRequest, resp.StatusCode, string(body))
			got := decode[errorBody](t, body)
			for _, field := range tt.fields {
				assert.Contains(t, got.ErrorDetails, field)
			}
			assert.Len(t, got.ErrorDetails, len(tt.fields))
		})
	}
}

func TestRegisterUser_Duplicates(t *testing.T) {
	server := newTestServer(t, newTestApplication(t))

	resp, body := doRequest(t, http.MethodPost, server.URL+"/api/register/",
		registerBody("alice", "alice@example.com", "s3cret-pass", "s3cret-pass"))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	// When we reuse the username
	resp, body = doRequest(t, http.MethodPost, server.URL+"/api/register/",
		registerBody("alice", "other@example.com", "s3cret-pass", "s3cret-pass"))

	// Then the username is reported
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	got := decode[errorBody](t, body)
	assert.Contains(t, got.ErrorDetails, "username")

	// When we reuse the email
	resp, body = doRequest(t, http.MethodPost, server.URL+"/api/register/",
		registerBody("alice2", "alice@example.com", "s3cret-pass", "s3cret-pass"))

	// Then the email is reported
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	got = decode[errorBody](t, body)
	assert.Contains(t, got.ErrorDetails, "email")
}

func TestRegisterUser_BadJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"empty body", "", "body must not be empty"},
		{"malformed", `{"username": "alice"`, "badly-formed JSON"},
		{"syntax error", `{"username" "alice"}`, "badly-formed JSON"},
		{"wrong type", `{"username": 42}`, `incorrect JSON type for field "username"`},
		{"unknown field", `{"name": "alice"}`, `unknown key "name"`},
		{"two values", `{} {}`, "single JSON value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t, newTestApplication(t))

			resp, body := doRequest(t, http.MethodPost, server.URL+"/api/register/", tt.body)

			require.Equal(t, http.StatusBadRequest, resp.StatusCode, string(body))
			got := decode[errorBody](t, body)
			assert.Contains(t, got.ErrorMessage, tt.message)
		})
	}
}

func TestRegisterUser_BodyTooLarge(t *testing.T) {
	app := newTestApplication(t)
	app.config.Server.MaxBodySize = "64B"
	require.NoError(t, app.config.Server.Finalize())
	server := newTestServer(t, app)

	resp, body := doRequest(t, http.MethodPost, server.URL+"/api/register/",
		registerBody("alice", "alice@example.com", strings.Repeat("x", 100), strings.Repeat("x", 100)))

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	got := decode[errorBody](t, body)
	assert.Contains(t, got.ErrorMessage, "must not be larger than 64 bytes")
}

func TestGetAllUsers(t *testing.T) {
	server := newTestServer(t, newTestApplication(t))

	// Given no users
	resp, body := doRequest(t, http.MethodGet, server.URL+"/api/users/", "")

	// Then we get an empty list
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]userBody](t, body))

	// Given two registered users
	for _, name := range []string{"alice", "bob"} {
		resp, body := doRequest(t, http.MethodPost, server.URL+"/api/register/",
			registerBody(name, name+"@example.com", "s3cret-pass", "s3cret-pass"))
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	}

	// When we list users
	resp, body = doRequest(t, http.MethodGet, server.URL+"/api/users/", "")

	// Then both come back in registration order
	require.Equal(t, http.StatusOK, resp.StatusCode)
	users := decode[[]userBody](t, body)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
	assert.NotContains(t, string(body), "password")
}

func TestUserHandlers_StoreFailure(t *testing.T) {
	app := newTestApplication(t)
	app.users = failingStore{err: errStoreDown}
	server := newTestServer(t, app)

	resp, body := doRequest(t, http.MethodGet, server.URL+"/api/users/", "")
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	got := decode[errorBody](t, body)
	assert.Equal(t, "An internal server error occurred.", got.ErrorMessage)
	assert.NotContains(t, string(body), "store is down")

	resp, _ = doRequest(t, http.MethodPost, server.URL+"/api/register/",
		registerBody("alice", "alice@example.com", "s3cret-pass", "s3cret-pass"))
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
