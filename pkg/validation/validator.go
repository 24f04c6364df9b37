// Package validation forwards to the validator implementation, which
// lives in pkg/api alongside the request/row types it produces. The
// public surface here is unchanged: ParseCreate, ParsePatch, and the
// Errors type they return.
package validation

import (
	"github.com/rowsd/rowsd/pkg/api"
)

// Errors collects per-field validation failures for one request body.
type Errors = api.Errors

// ParseCreate validates a POST body and produces a defaulted NewRow:
// absent tags/links become empty slices and absent content becomes the
// empty string. Returns field-level errors on any constraint violation.
func ParseCreate(body []byte) (api.NewRow, *Errors) {
	return api.ParseCreate(body)
}

// ParsePatch validates a PUT body. All fields are optional; present
// fields obey the same constraints as on create. An empty object is
// valid and yields an empty patch.
func ParsePatch(body []byte) (api.RowPatch, *Errors) {
	return api.ParsePatch(body)
}
