package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/userdirectory/internal/config"
	"github.com/siahsang/userdirectory/internal/core"
	"github.com/siahsang/userdirectory/internal/data"
	"github.com/stretchr/testify/require"
)

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{
		Database: config.DatabaseConfig{Driver: config.DriverMemory},
	}
	require.NoError(t, cfg.Finalize())
	return cfg
}

func newTestApplication(t *testing.T) *application {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &application{
		config: newTestConfig(t),
		logger: logger,
		users:  core.NewMemoryCore(logger),
	}
}

func newTestServer(t *testing.T, app *application) *httptest.Server {
	t.Helper()
	handler, err := app.routes()
	require.NoError(t, err)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func doRequest(t *testing.T, method, url string, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, respBody
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	return v
}

type errorBody struct {
	ErrorMessage string            `json:"errorMessage"`
	ErrorDetails map[string]string `json:"errorDetails"`
}

// failingStore answers every call with err.
type failingStore struct {
	err error
}

func (s failingStore) CreateNewUser(context.Context, *data.User) error {
	return s.err
}

func (s failingStore) GetAllUsers(context.Context) ([]*data.User, error) {
	return nil, s.err
}

var errStoreDown = xerrors.Message("store is down")
