// Package routes provides grouped route registration over the standard mux.
package routes

import (
	"fmt"
	"net/http"
	"strings"
)

// Route binds an HTTP method and pattern to a handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Group represents a collection of routes under a common URL prefix.
type Group struct {
	Prefix      string
	Description string
	Routes      []Route
}

// Register adds every route in the group to the mux, joining the group prefix
// with each route pattern.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, g := range groups {
		for _, r := range g.Routes {
			mux.HandleFunc(fmt.Sprintf("%s %s", r.Method, join(g.Prefix, r.Pattern)), r.Handler)
		}
	}
}

func join(prefix, pattern string) string {
	if pattern == "" {
		return prefix
	}
	return strings.TrimSuffix(prefix, "/") + pattern
}
