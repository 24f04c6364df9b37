package observability

import (
	"context"
	"errors"

	"github.com/rowsd/rowsd/pkg/api"
)

// InstrumentedStore decorates a RowStore with operation counters.
// Not-found outcomes count as "miss" rather than errors; they are a
// normal part of the API's contract.
type InstrumentedStore struct {
	store   api.RowStore
	metrics *Metrics
}

// NewInstrumentedStore wraps the given store with metrics recording
func NewInstrumentedStore(store api.RowStore, metrics *Metrics) *InstrumentedStore {
	return &InstrumentedStore{store: store, metrics: metrics}
}

func (s *InstrumentedStore) record(operation string, err error) {
	switch {
	case err == nil:
		s.metrics.StoreOperationsTotal.WithLabelValues(operation, "ok").Inc()
	case errors.Is(err, api.ErrNotFound):
		s.metrics.StoreOperationsTotal.WithLabelValues(operation, "miss").Inc()
	default:
		s.metrics.StoreOperationsTotal.WithLabelValues(operation, "error").Inc()
		s.metrics.StoreErrorsTotal.WithLabelValues(operation).Inc()
	}
}

func (s *InstrumentedStore) ListRows(ctx context.Context) ([]*api.DataRow, error) {
	rows, err := s.store.ListRows(ctx)
	s.record("list", err)
	return rows, err
}

func (s *InstrumentedStore) GetRow(ctx context.Context, id int64) (*api.DataRow, error) {
	row, err := s.store.GetRow(ctx, id)
	s.record("get", err)
	return row, err
}

func (s *InstrumentedStore) InsertRow(ctx context.Context, row api.NewRow) (*api.DataRow, error) {
	created, err := s.store.InsertRow(ctx, row)
	s.record("insert", err)
	return created, err
}

func (s *InstrumentedStore) UpdateRow(ctx context.Context, id int64, patch api.RowPatch) (*api.DataRow, bool, error) {
	row, modified, err := s.store.UpdateRow(ctx, id, patch)
	s.record("update", err)
	return row, modified, err
}

func (s *InstrumentedStore) DeleteRow(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.store.DeleteRow(ctx, id)
	s.record("delete", err)
	return deleted, err
}
