package router

import "github.com/mdobak/go-xerrors"

var (
	// ErrNotFound is returned by Resolve when no route matches the method and path.
	ErrNotFound = xerrors.Message("route not found")

	// ErrDuplicateRoute is returned by Register when the method and path, or the
	// route name, is already taken. A table with a duplicate must not be served.
	ErrDuplicateRoute = xerrors.Message("duplicate route")

	// ErrUnknownName is returned by Reverse and URL for names that were never registered.
	ErrUnknownName = xerrors.Message("unknown route name")

	ErrInvalidRoute = xerrors.Message("invalid route")
	ErrSealed       = xerrors.Message("route table is sealed")
)
