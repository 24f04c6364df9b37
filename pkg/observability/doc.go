// Package observability bundles the service's operational concerns:
// structured logging (logrus), Prometheus metrics with an HTTP
// middleware and an instrumented RowStore decorator, liveness and
// readiness probes, and graceful shutdown on SIGINT/SIGTERM.
package observability
