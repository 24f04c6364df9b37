// Package api implements the HTTP surface of the rows service.
//
// # Overview
//
// The service exposes one resource, data rows, under /api/v1/rows with
// the usual five operations. Each endpoint is declared as a static
// Route value — method, path, auth requirement, handler — and the
// server composes those declarations into a gorilla/mux dispatcher at
// startup. Cross-cutting behavior (CORS on every response, request
// logging, panic recovery, request ids, body size caps) wraps the
// router itself so it also applies to unmatched paths.
//
// # Request flow
//
// router match -> bearer-token auth (protected routes only) ->
// body validation -> store call -> JSON response. Auth runs before the
// body is even read, so an unauthenticated caller always sees 401, not
// 400. Mutating endpoints return the full entity; DELETE returns a
// JSON status message.
//
// # Errors
//
// Expected conditions (validation failure, missing row) are structured
// responses, never error values escaping the handler. Store failures
// and corrupt stored rows are logged with method, path and request id
// and surface as a generic 500 fatal only to that request.
package api
