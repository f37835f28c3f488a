// Package router provides an explicit, ordered HTTP route table.
//
// Routes are registered once at startup, the table is sealed, and from then on
// it is only read, so any number of goroutines may resolve and serve through it
// without locking.
package router

import (
	"context"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/mdobak/go-xerrors"
)

// Route binds a method and path pattern to a handler. Name is used for reverse
// lookup and may be empty.
type Route struct {
	Method  string
	Path    string
	Name    string
	Handler http.Handler

	segments []segment
}

// Match is the result of a successful Resolve.
type Match struct {
	Route  Route
	Params httprouter.Params
}

// Table is an ordered route table. The first registered route whose method and
// pattern match a request wins.
type Table struct {
	// NotFound is called when no route matches. Defaults to http.NotFound.
	NotFound http.Handler

	// MethodNotAllowed is called when the path matches a route under another
	// method and HandleMethodNotAllowed is set. The Allow header is already set.
	MethodNotAllowed http.Handler

	// RedirectTrailingSlash redirects to the path with the trailing slash added
	// or removed when only that variant matches.
	RedirectTrailingSlash bool

	// RedirectFixedPath redirects to the cleaned path (see httprouter.CleanPath)
	// when the request path has superfluous elements like ../ or //.
	RedirectFixedPath bool

	HandleMethodNotAllowed bool
	HandleOPTIONS          bool

	routes   []Route
	byMethod map[string][]int
	byShape  map[string]int
	byName   map[string]int
	sealed   bool
}

// New returns an empty table with the same defaults httprouter.New uses.
func New() *Table {
	return &Table{
		RedirectTrailingSlash:  true,
		RedirectFixedPath:      true,
		HandleMethodNotAllowed: true,
		HandleOPTIONS:          true,
		byMethod:               make(map[string][]int),
		byShape:                make(map[string]int),
		byName:                 make(map[string]int),
	}
}

// Register appends a route to the table.
func (t *Table) Register(method, path, name string, handler http.Handler) error {
	if t.sealed {
		return xerrors.Newf("register %s %s: %w", method, path, ErrSealed)
	}
	if method == "" || strings.ContainsAny(method, " \t/") {
		return xerrors.Newf("register %q %s: bad method: %w", method, path, ErrInvalidRoute)
	}
	if handler == nil {
		return xerrors.Newf("register %s %s: nil handler: %w", method, path, ErrInvalidRoute)
	}

	segments, err := parsePattern(path)
	if err != nil {
		return err
	}

	key := method + " " + shape(segments)
	if i, exists := t.byShape[key]; exists {
		return xerrors.Newf("register %s %s: conflicts with %s: %w", method, path, t.routes[i].Path, ErrDuplicateRoute)
	}
	if name != "" {
		if i, exists := t.byName[name]; exists {
			return xerrors.Newf("register %s %s: name %q already used by %s %s: %w",
				method, path, name, t.routes[i].Method, t.routes[i].Path, ErrDuplicateRoute)
		}
	}

	idx := len(t.routes)
	t.routes = append(t.routes, Route{
		Method:   method,
		Path:     path,
		Name:     name,
		Handler:  handler,
		segments: segments,
	})
	t.byMethod[method] = append(t.byMethod[method], idx)
	t.byShape[key] = idx
	if name != "" {
		t.byName[name] = idx
	}

	return nil
}

// HandlerFunc is an adapter to register an ordinary function as a handler.
func (t *Table) HandlerFunc(method, path, name string, handler http.HandlerFunc) error {
	if handler == nil {
		return t.Register(method, path, name, nil)
	}
	return t.Register(method, path, name, handler)
}

// GET is a shortcut for t.HandlerFunc(http.MethodGet, path, name, handler).
func (t *Table) GET(path, name string, handler http.HandlerFunc) error {
	return t.HandlerFunc(http.MethodGet, path, name, handler)
}

// POST is a shortcut for t.HandlerFunc(http.MethodPost, path, name, handler).
func (t *Table) POST(path, name string, handler http.HandlerFunc) error {
	return t.HandlerFunc(http.MethodPost, path, name, handler)
}

// Seal makes the table read-only. Register fails afterwards.
func (t *Table) Seal() {
	t.sealed = true
}

// Routes returns the registered routes in insertion order.
func (t *Table) Routes() []Route {
	return slices.Clone(t.routes)
}

// Resolve returns the first route registered under method whose pattern
// matches path.
func (t *Table) Resolve(method, path string) (Match, error) {
	if strings.HasPrefix(path, "/") {
		parts := splitPath(path)
		for _, i := range t.byMethod[method] {
			route := t.routes[i]
			if params, ok := match(route.segments, parts); ok {
				return Match{Route: route, Params: params}, nil
			}
		}
	}

	return Match{}, xerrors.Newf("resolve %s %s: %w", method, path, ErrNotFound)
}

// Allowed lists, sorted, the methods that have a route matching path.
func (t *Table) Allowed(path string) []string {
	if !strings.HasPrefix(path, "/") {
		return nil
	}

	parts := splitPath(path)
	var allowed []string
	for method, indexes := range t.byMethod {
		for _, i := range indexes {
			if _, ok := match(t.routes[i].segments, parts); ok {
				allowed = append(allowed, method)
				break
			}
		}
	}
	slices.Sort(allowed)

	return allowed
}

// Reverse returns the path pattern registered under name.
func (t *Table) Reverse(name string) (string, error) {
	i, ok := t.byName[name]
	if !ok {
		return "", xerrors.Newf("reverse %q: %w", name, ErrUnknownName)
	}
	return t.routes[i].Path, nil
}

// URL builds a path for the named route, filling parameters from key/value pairs:
//
//	t.URL("user", "id", "42") // "/api/users/42/" for "/api/users/:id/"
func (t *Table) URL(name string, params ...string) (string, error) {
	i, ok := t.byName[name]
	if !ok {
		return "", xerrors.Newf("url %q: %w", name, ErrUnknownName)
	}
	if len(params)%2 != 0 {
		return "", xerrors.Newf("url %q: params must be key/value pairs, got %d values", name, len(params))
	}

	values := make(map[string]string, len(params)/2)
	for j := 0; j < len(params); j += 2 {
		values[params[j]] = params[j+1]
	}

	var b strings.Builder
	for _, s := range t.routes[i].segments {
		b.WriteByte('/')
		switch s.kind {
		case param:
			v, ok := values[s.value]
			if !ok || v == "" {
				return "", xerrors.Newf("url %q: missing parameter %q", name, s.value)
			}
			b.WriteString(url.PathEscape(v))
		case catchAll:
			v, ok := values[s.value]
			if !ok {
				return "", xerrors.Newf("url %q: missing parameter %q", name, s.value)
			}
			b.WriteString(strings.TrimPrefix(v, "/"))
		default:
			b.WriteString(s.value)
		}
	}

	return b.String(), nil
}

// ServeHTTP dispatches the request to the matching route's handler. Captured
// parameters are available through httprouter.ParamsFromContext.
func (t *Table) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path

	if m, err := t.Resolve(req.Method, path); err == nil {
		if len(m.Params) > 0 {
			ctx := context.WithValue(req.Context(), httprouter.ParamsKey, m.Params)
			req = req.WithContext(ctx)
		}
		m.Route.Handler.ServeHTTP(w, req)
		return
	}

	if req.Method != http.MethodConnect && path != "/" {
		code := http.StatusMovedPermanently
		if req.Method != http.MethodGet {
			code = http.StatusPermanentRedirect
		}

		if t.RedirectTrailingSlash {
			alt := path + "/"
			if strings.HasSuffix(path, "/") {
				alt = path[:len(path)-1]
			}
			if t.matches(req.Method, alt) {
				redirect(w, req, alt, code)
				return
			}
		}

		if t.RedirectFixedPath {
			fixed := httprouter.CleanPath(path)
			if fixed != path && t.matches(req.Method, fixed) {
				redirect(w, req, fixed, code)
				return
			}
		}
	}

	if req.Method == http.MethodOptions && t.HandleOPTIONS {
		if allowed := t.Allowed(path); len(allowed) > 0 {
			w.Header().Set("Allow", allowHeader(allowed))
			w.WriteHeader(http.StatusNoContent)
			return
		}
	} else if t.HandleMethodNotAllowed {
		if allowed := t.Allowed(path); len(allowed) > 0 {
			w.Header().Set("Allow", allowHeader(allowed))
			if t.MethodNotAllowed != nil {
				t.MethodNotAllowed.ServeHTTP(w, req)
			} else {
				http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			}
			return
		}
	}

	if t.NotFound != nil {
		t.NotFound.ServeHTTP(w, req)
	} else {
		http.NotFound(w, req)
	}
}

// Params returns the path parameters captured for the request.
func Params(r *http.Request) httprouter.Params {
	return httprouter.ParamsFromContext(r.Context())
}

func (t *Table) matches(method, path string) bool {
	_, err := t.Resolve(method, path)
	return err == nil
}

func allowHeader(allowed []string) string {
	if !slices.Contains(allowed, http.MethodOptions) {
		allowed = append(allowed, http.MethodOptions)
		slices.Sort(allowed)
	}
	return strings.Join(allowed, ", ")
}

func redirect(w http.ResponseWriter, req *http.Request, path string, code int) {
	target := *req.URL
	target.Path = path
	target.RawPath = ""
	http.Redirect(w, req, target.String(), code)
}
