package api

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/rowsd/rowsd/pkg/httputil"
)

// rowNotFoundMessage is the fixed body for any operation targeting a
// nonexistent id.
const rowNotFoundMessage = "Row not found"

// parseRowID extracts the id path parameter. A non-numeric id cannot
// match any stored row, so it gets the same 404 as an absent one.
func parseRowID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := httputil.ParsePathInt64(r, "id")
	if err != nil {
		httputil.WriteNotFoundError(w, rowNotFoundMessage)
		return 0, false
	}
	return id, true
}

// internalError logs a store failure with request context and returns
// a generic 500. Corrupt stored rows land here too; they must be loud
// in the logs but opaque to the caller.
func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.WithFields(logrus.Fields{
		"method":     r.Method,
		"path":       r.URL.Path,
		"request_id": r.Header.Get("X-Request-ID"),
		"corrupt":    errors.Is(err, ErrCorrupt),
	}).WithError(err).Error("store operation failed")
	httputil.WriteInternalError(w)
}

// listRows handles GET /api/v1/rows
func (s *Server) listRows(w http.ResponseWriter, r *http.Request) {
	rows, err := s.store.ListRows(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	httputil.WriteSuccess(w, rows)
}

// getRow handles GET /api/v1/rows/{id}
func (s *Server) getRow(w http.ResponseWriter, r *http.Request) {
	id, ok := parseRowID(w, r)
	if !ok {
		return
	}

	row, err := s.store.GetRow(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		httputil.WriteNotFoundError(w, rowNotFoundMessage)
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	httputil.WriteSuccess(w, row)
}

// createRow handles POST /api/v1/rows
func (s *Server) createRow(w http.ResponseWriter, r *http.Request) {
	body, ok := httputil.ReadBodyOrError(w, r)
	if !ok {
		return
	}

	fields, verrs := ParseCreate(body)
	if verrs != nil {
		httputil.WriteDetailedError(w, http.StatusBadRequest, "Validation failed", verrs.Fields)
		return
	}

	row, err := s.store.InsertRow(r.Context(), fields)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	httputil.WriteCreated(w, row)
}

// updateRow handles PUT /api/v1/rows/{id}
func (s *Server) updateRow(w http.ResponseWriter, r *http.Request) {
	id, ok := parseRowID(w, r)
	if !ok {
		return
	}

	body, ok := httputil.ReadBodyOrError(w, r)
	if !ok {
		return
	}

	patch, verrs := ParsePatch(body)
	if verrs != nil {
		httputil.WriteDetailedError(w, http.StatusBadRequest, "Validation failed", verrs.Fields)
		return
	}

	row, _, err := s.store.UpdateRow(r.Context(), id, patch)
	if errors.Is(err, ErrNotFound) {
		httputil.WriteNotFoundError(w, rowNotFoundMessage)
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	httputil.WriteSuccess(w, row)
}

// deleteRow handles DELETE /api/v1/rows/{id}
func (s *Server) deleteRow(w http.ResponseWriter, r *http.Request) {
	id, ok := parseRowID(w, r)
	if !ok {
		return
	}

	deleted, err := s.store.DeleteRow(r.Context(), id)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if !deleted {
		httputil.WriteNotFoundError(w, rowNotFoundMessage)
		return
	}

	httputil.WriteMessage(w, "Row deleted successfully")
}
