// Package httputil provides shared HTTP plumbing for the rows API.
//
// # Overview
//
// Response helpers keep every body on the API JSON-shaped: errors are
// always {"error": ...} (optionally with per-field details) and status
// messages are {"message": ...}. Request helpers read bodies and path
// parameters without leaking gorilla/mux into handler logic.
//
// # Middleware
//
// The middleware here is global: it wraps the router itself so its
// behavior also applies to unmatched routes.
//
//   - CORSMiddleware: permissive headers on every response, preflight
//     answered with 200
//   - RequestIDMiddleware: UUID per request, echoed in X-Request-ID
//   - LoggingMiddleware: one structured log line per request
//   - RecoveryMiddleware: panics become request-scoped 500s
//   - MaxBytesMiddleware: request body size cap
//
// Chain composes them in declaration order.
package httputil
