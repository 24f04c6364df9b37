// Package middleware provides per-route HTTP middleware for the rows API.
//
// Authorization is deliberately minimal: one process-wide bearer token,
// compared against the Authorization header before the request body is
// touched, so unauthenticated callers see 401 before any 400. Routes
// that do not require auth are simply not wrapped.
package middleware
