package router

import (
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/mdobak/go-xerrors"
)

type segmentKind uint8

const (
	literal segmentKind = iota
	param
	catchAll
)

type segment struct {
	kind  segmentKind
	value string
}

// parsePattern splits a path pattern into segments. The syntax is httprouter's:
// ":name" captures one non-empty segment, "*name" captures the rest of the path
// and is only allowed as the final segment.
func parsePattern(path string) ([]segment, error) {
	if !strings.HasPrefix(path, "/") {
		return nil, xerrors.Newf("path %q must begin with '/': %w", path, ErrInvalidRoute)
	}

	parts := splitPath(path)
	segments := make([]segment, 0, len(parts))
	for i, part := range parts {
		switch {
		case strings.HasPrefix(part, ":"):
			name := part[1:]
			if name == "" || strings.ContainsAny(name, ":*") {
				return nil, xerrors.Newf("path %q: bad parameter %q: %w", path, part, ErrInvalidRoute)
			}
			segments = append(segments, segment{kind: param, value: name})

		case strings.HasPrefix(part, "*"):
			name := part[1:]
			if name == "" || strings.ContainsAny(name, ":*") {
				return nil, xerrors.Newf("path %q: bad catch-all %q: %w", path, part, ErrInvalidRoute)
			}
			if i != len(parts)-1 {
				return nil, xerrors.Newf("path %q: catch-all must be the last segment: %w", path, ErrInvalidRoute)
			}
			segments = append(segments, segment{kind: catchAll, value: name})

		default:
			segments = append(segments, segment{kind: literal, value: part})
		}
	}

	return segments, nil
}

// splitPath drops the leading slash and splits on the rest, so a trailing slash
// shows up as an empty last segment and stays significant when matching.
func splitPath(path string) []string {
	return strings.Split(strings.TrimPrefix(path, "/"), "/")
}

// shape is the pattern with parameter names erased. Two routes with the same
// method and shape can never both be reached.
func shape(segments []segment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		switch s.kind {
		case param:
			b.WriteByte(':')
		case catchAll:
			b.WriteByte('*')
		default:
			b.WriteString(s.value)
		}
	}
	return b.String()
}

func match(segments []segment, parts []string) (httprouter.Params, bool) {
	var params httprouter.Params

	for i, s := range segments {
		if s.kind == catchAll {
			if i >= len(parts) {
				return nil, false
			}
			params = append(params, httprouter.Param{Key: s.value, Value: "/" + strings.Join(parts[i:], "/")})
			return params, true
		}

		if i >= len(parts) {
			return nil, false
		}

		switch s.kind {
		case param:
			if parts[i] == "" {
				return nil, false
			}
			params = append(params, httprouter.Param{Key: s.value, Value: parts[i]})
		default:
			if parts[i] != s.value {
				return nil, false
			}
		}
	}

	if len(parts) != len(segments) {
		return nil, false
	}
	return params, true
}
