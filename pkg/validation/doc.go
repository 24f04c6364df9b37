// Package validation checks request bodies for the rows API before any
// storage access happens.
//
// # Overview
//
// Each endpoint's body shape is expressed as explicit per-field checks
// rather than a schema document: title must be non-empty when present,
// image and every links element must be absolute URLs, tags and links
// must be string arrays, and data may be any JSON value. Violations are
// collected into an Errors value keyed by field name so handlers can
// return a single 400 response enumerating everything that failed.
//
// # Usage Example
//
//	row, errs := validation.ParseCreate(body)
//	if errs != nil {
//		httputil.WriteDetailedError(w, http.StatusBadRequest, errs, errs.Fields)
//		return
//	}
//
// ParsePatch does the same for partial updates, preserving the
// distinction between a field that is absent and one explicitly set to
// null via the api.Optional wrapper.
package validation
