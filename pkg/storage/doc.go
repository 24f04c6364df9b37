// Package storage persists data rows in a single SQLite table.
//
// # Overview
//
// The table mirrors the API's row shape directly: tags, links and data
// are JSON-encoded text columns, decoded into real slices and values on
// every read. A row whose stored JSON no longer parses is reported as
// api.ErrCorrupt, which the API layer turns into a logged 500 — it is
// never silently coerced.
//
// # Concurrency
//
// SQLite provides the only coordination: WAL journal mode plus a
// single pooled connection keep writers serialized. The store performs
// no in-memory caching and no multi-statement transactions; each
// operation is one self-contained unit of work.
package storage
