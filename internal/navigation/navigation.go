// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package navigation models the explorer's navigable location: a route path
// plus query parameters. A State is an immutable snapshot; History keeps the
// back/forward stack that produces them.
package navigation

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Path identifies which surface a location routes to.
type Path int

const (
	Home Path = iota
	Search
	Article
)

func (p Path) String() string {
	switch p {
	case Home:
		return "home"
	case Search:
		return "search"
	case Article:
		return "article"
	default:
		return fmt.Sprintf("path(%d)", int(p))
	}
}

// Route parameter names. ParamQuery holds the :query segment of
// /search/:query and ParamID the :id segment of /article/:id.
const (
	ParamQuery = "query"
	ParamID    = "id"
)

// State is a navigation snapshot. Params merges route segments with the
// query string; when a key repeats, the first query value wins.
type State struct {
	Path   Path
	Params map[string]string
}

// Param returns the named parameter, or "" when absent.
func (s State) Param(name string) string {
	return s.Params[name]
}

// Key returns a stable identity for the state. Two states with equal keys
// describe the same logical navigation.
func (s State) Key() string {
	names := make([]string, 0, len(s.Params))
	for k := range s.Params {
		names = append(names, k)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(s.Path.String())
	for _, k := range names {
		b.WriteByte('|')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(s.Params[k])
	}
	return b.String()
}

// Parse converts a location ("/search/x?title=x") into a State. Unknown
// paths are an error. Routes match on the escaped path, so an escaped "/"
// inside a segment stays part of the segment; the captured segment is then
// unescaped.
func Parse(location string) (State, error) {
	u, err := url.Parse(location)
	if err != nil {
		return State{}, fmt.Errorf("parsing location %q: %w", location, err)
	}

	params := make(map[string]string)
	for k, vs := range u.Query() {
		if len(vs) > 0 {
			params[k] = vs[0]
		}
	}

	p := strings.TrimSuffix(u.EscapedPath(), "/")
	switch {
	case p == "":
		return State{Path: Home, Params: params}, nil
	case p == "/search":
		return State{Path: Search, Params: params}, nil
	case strings.HasPrefix(p, "/search/"):
		q, err := segment(location, strings.TrimPrefix(p, "/search/"))
		if err != nil {
			return State{}, err
		}
		params[ParamQuery] = q
		return State{Path: Search, Params: params}, nil
	case strings.HasPrefix(p, "/article/"):
		id, err := segment(location, strings.TrimPrefix(p, "/article/"))
		if err != nil {
			return State{}, err
		}
		if id == "" {
			return State{}, fmt.Errorf("location %q: empty article id", location)
		}
		params[ParamID] = id
		return State{Path: Article, Params: params}, nil
	default:
		return State{}, fmt.Errorf("location %q: unknown path", location)
	}
}

func segment(location, escaped string) (string, error) {
	s, err := url.PathUnescape(escaped)
	if err != nil {
		return "", fmt.Errorf("location %q: %w", location, err)
	}
	return s, nil
}
