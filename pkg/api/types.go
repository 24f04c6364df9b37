package api

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// DataRow represents a single stored row with its metadata
type DataRow struct {
	ID        int64           `json:"id"`
	Title     *string         `json:"title"`
	Tags      []string        `json:"tags"`
	Links     []string        `json:"links"`
	Image     *string         `json:"image"`
	Content   *string         `json:"content"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewRow holds the validated, defaulted fields for an insert.
// Tags and Links are never nil; Data is nil when the caller omitted it.
type NewRow struct {
	Title   *string
	Tags    []string
	Links   []string
	Image   *string
	Content *string
	Data    json.RawMessage
}

// Optional wraps an updatable field so that a field absent from a
// request body can be told apart from one explicitly set, including an
// explicit null (Set true, zero Value).
type Optional[T any] struct {
	Set   bool
	Value T
}

// Some returns an Optional holding the given value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// UnmarshalJSON implements json.Unmarshaler. It only runs when the
// field is present in the payload, so Set is always true afterwards.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		var zero T
		o.Value = zero
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// RowPatch describes a partial update. Only fields with Set true are
// written; everything else keeps its stored value.
type RowPatch struct {
	Title   Optional[*string]
	Tags    Optional[[]string]
	Links   Optional[[]string]
	Image   Optional[*string]
	Content Optional[*string]
	Data    Optional[json.RawMessage]
}

// IsEmpty reports whether the patch touches no fields at all.
func (p RowPatch) IsEmpty() bool {
	return !p.Title.Set && !p.Tags.Set && !p.Links.Set &&
		!p.Image.Set && !p.Content.Set && !p.Data.Set
}

// RowStore defines the persistence operations for data rows
type RowStore interface {
	// ListRows returns every stored row. An empty table yields an
	// empty slice, not an error.
	ListRows(ctx context.Context) ([]*DataRow, error)

	// GetRow returns the row with the given id or ErrNotFound.
	GetRow(ctx context.Context, id int64) (*DataRow, error)

	// InsertRow persists a new row, assigning id and created_at, and
	// returns the fully materialized row.
	InsertRow(ctx context.Context, row NewRow) (*DataRow, error)

	// UpdateRow merges the patch over the stored row. The boolean
	// reports whether anything was written; an empty patch returns
	// the stored row unchanged with modified false.
	UpdateRow(ctx context.Context, id int64, patch RowPatch) (*DataRow, bool, error)

	// DeleteRow removes the row and reports whether one matched.
	DeleteRow(ctx context.Context, id int64) (bool, error)
}

// ErrNotFound is returned by RowStore when no row matches the id.
var ErrNotFound = errors.New("row not found")

// ErrCorrupt indicates that a stored JSON column failed to parse on
// read. This is a data-integrity failure, never a caller error.
var ErrCorrupt = errors.New("corrupt stored row")
