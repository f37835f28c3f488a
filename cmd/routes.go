package main

import (
	"net/http"

	"github.com/siahsang/userdirectory/internal/router"
)

const (
	routeRegisterUser = "register_user"
	routeGetAllUsers  = "get_all_users"
)

// routeTable builds the sealed route table. Any registration error means the
// table is ambiguous or malformed and the process must not start.
func (app *application) routeTable() (*router.Table, error) {
	table := router.New()

	table.NotFound = http.HandlerFunc(app.notFoundResponse)
	table.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	if err := table.POST("/api/register/", routeRegisterUser, app.registerUserHandler); err != nil {
		return nil, err
	}
	if err := table.GET("/api/users/", routeGetAllUsers, app.getAllUsersHandler); err != nil {
		return nil, err
	}

	table.Seal()

	for _, route := range table.Routes() {
		app.logger.Debug("Route registered", "method", route.Method, "path", route.Path, "name", route.Name)
	}

	return table, nil
}

func (app *application) routes() (http.Handler, error) {
	table, err := app.routeTable()
	if err != nil {
		return nil, err
	}

	return app.logRequest(app.recoverPanic(app.enableCORS(table))), nil
}
