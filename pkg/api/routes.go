package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

// Route declares a single endpoint: the method and path it serves,
// whether the bearer token is required, and the handler invoked once
// all middleware has passed. Declarations are static; nothing about a
// route is computed at request time.
type Route struct {
	Method       string
	Path         string
	AuthRequired bool
	Handler      http.HandlerFunc
}

// rowRoutes is the registry of row endpoints, registered in order at
// startup.
func (s *Server) rowRoutes() []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/api/v1/rows", Handler: s.listRows},
		{Method: http.MethodGet, Path: "/api/v1/rows/{id}", Handler: s.getRow},
		{Method: http.MethodPost, Path: "/api/v1/rows", AuthRequired: true, Handler: s.createRow},
		{Method: http.MethodPut, Path: "/api/v1/rows/{id}", AuthRequired: true, Handler: s.updateRow},
		{Method: http.MethodDelete, Path: "/api/v1/rows/{id}", AuthRequired: true, Handler: s.deleteRow},
	}
}

// registerRoutes installs the route declarations into the router,
// wrapping protected routes with the auth middleware. Two declarations
// for the same method and path are a configuration mistake, caught
// here at startup rather than resolved by registration order.
func (s *Server) registerRoutes(routes []Route) error {
	seen := make(map[string]bool)
	for _, route := range routes {
		key := route.Method + " " + route.Path
		if seen[key] {
			return fmt.Errorf("duplicate route declaration: %s", key)
		}
		seen[key] = true

		var handler http.Handler = route.Handler
		if route.AuthRequired {
			handler = s.auth.Handler(handler)
		}
		s.router.Handle(route.Path, handler).Methods(route.Method)
	}
	return nil
}

// RouteRegistrar is an interface for types that can register routes
type RouteRegistrar interface {
	RegisterRoutes(router *mux.Router)
}

// RegisterRoutes registers additional routes from a RouteRegistrar
// (health probes, metrics, API docs).
func (s *Server) RegisterRoutes(registrar RouteRegistrar) {
	registrar.RegisterRoutes(s.router)
}
