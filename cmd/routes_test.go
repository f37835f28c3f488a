package main

import (
	"net/http"
	"testing"

	"github.com/siahsang/userdirectory/internal/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteTable(t *testing.T) {
	app := newTestApplication(t)
	table, err := app.routeTable()
	require.NoError(t, err)

	m, err := table.Resolve(http.MethodPost, "/api/register/")
	require.NoError(t, err)
	assert.Equal(t, routeRegisterUser, m.Route.Name)

	m, err = table.Resolve(http.MethodGet, "/api/users/")
	require.NoError(t, err)
	assert.Equal(t, routeGetAllUsers, m.Route.Name)

	_, err = table.Resolve(http.MethodGet, "/api/unknown/")
	require.ErrorIs(t, err, router.ErrNotFound)

	path, err := table.Reverse(routeRegisterUser)
	require.NoError(t, err)
	assert.Equal(t, "/api/register/", path)

	path, err = table.Reverse(routeGetAllUsers)
	require.NoError(t, err)
	assert.Equal(t, "/api/users/", path)

	// Sealed after startup
	err = table.GET("/api/late/", "late", app.getAllUsersHandler)
	require.ErrorIs(t, err, router.ErrSealed)
}

func TestRoutes_NotFound(t *testing.T) {
	server := newTestServer(t, newTestApplication(t))

	// When we request an unknown path
	resp, body := doRequest(t, http.MethodGet, server.URL+"/api/unknown/", "")

	// Then it fails with a JSON 404
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "application/json; charset=utf-8", resp.Header.Get("Content-Type"))
	got := decode[errorBody](t, body)
	assert.Equal(t, "The requested resource could not be found.", got.ErrorMessage)
}

func TestRoutes_MethodNotAllowed(t *testing.T) {
	server := newTestServer(t, newTestApplication(t))

	// When we call the users endpoint with an unsupported method
	resp, body := doRequest(t, http.MethodDelete, server.URL+"/api/users/", "")

	// Then it fails with 405 and tells us what is allowed
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, "GET, OPTIONS", resp.Header.Get("Allow"))
	got := decode[errorBody](t, body)
	assert.Contains(t, got.ErrorMessage, "DELETE")
}

func TestRoutes_TrailingSlashRedirect(t *testing.T) {
	server := newTestServer(t, newTestApplication(t))

	resp, _ := doRequest(t, http.MethodGet, server.URL+"/api/users", "")
	require.Equal(t, http.StatusMovedPermanently, resp.StatusCode)
	assert.Equal(t, "/api/users/", resp.Header.Get("Location"))

	resp, _ = doRequest(t, http.MethodPost, server.URL+"/api/register", `{}`)
	require.Equal(t, http.StatusPermanentRedirect, resp.StatusCode)
	assert.Equal(t, "/api/register/", resp.Header.Get("Location"))
}
