package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/rowsd/rowsd/pkg/api"
)

// fakeStore returns a fixed error from every operation.
type fakeStore struct {
	err error
}

func (f *fakeStore) ListRows(ctx context.Context) ([]*api.DataRow, error) {
	return nil, f.err
}

func (f *fakeStore) GetRow(ctx context.Context, id int64) (*api.DataRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &api.DataRow{ID: id}, nil
}

func (f *fakeStore) InsertRow(ctx context.Context, row api.NewRow) (*api.DataRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &api.DataRow{ID: 1}, nil
}

func (f *fakeStore) UpdateRow(ctx context.Context, id int64, patch api.RowPatch) (*api.DataRow, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	return &api.DataRow{ID: id}, true, nil
}

func (f *fakeStore) DeleteRow(ctx context.Context, id int64) (bool, error) {
	return f.err == nil, f.err
}

func TestInstrumentedStore(t *testing.T) {
	ctx := context.Background()

	t.Run("successful operations count as ok", func(t *testing.T) {
		metrics := NewMetrics(prometheus.NewRegistry())
		store := NewInstrumentedStore(&fakeStore{}, metrics)

		_, err := store.GetRow(ctx, 1)
		assert.NoError(t, err)
		_, err = store.InsertRow(ctx, api.NewRow{})
		assert.NoError(t, err)

		assert.Equal(t, float64(1), testutil.ToFloat64(metrics.StoreOperationsTotal.WithLabelValues("get", "ok")))
		assert.Equal(t, float64(1), testutil.ToFloat64(metrics.StoreOperationsTotal.WithLabelValues("insert", "ok")))
	})

	t.Run("not found counts as a miss, not an error", func(t *testing.T) {
		metrics := NewMetrics(prometheus.NewRegistry())
		store := NewInstrumentedStore(&fakeStore{err: api.ErrNotFound}, metrics)

		_, err := store.GetRow(ctx, 99)
		assert.ErrorIs(t, err, api.ErrNotFound)

		assert.Equal(t, float64(1), testutil.ToFloat64(metrics.StoreOperationsTotal.WithLabelValues("get", "miss")))
		assert.Equal(t, float64(0), testutil.ToFloat64(metrics.StoreErrorsTotal.WithLabelValues("get")))
	})

	t.Run("other failures count as errors", func(t *testing.T) {
		metrics := NewMetrics(prometheus.NewRegistry())
		store := NewInstrumentedStore(&fakeStore{err: errors.New("disk full")}, metrics)

		_, err := store.ListRows(ctx)
		assert.Error(t, err)
		_, err = store.DeleteRow(ctx, 1)
		assert.Error(t, err)

		assert.Equal(t, float64(1), testutil.ToFloat64(metrics.StoreOperationsTotal.WithLabelValues("list", "error")))
		assert.Equal(t, float64(1), testutil.ToFloat64(metrics.StoreErrorsTotal.WithLabelValues("list")))
		assert.Equal(t, float64(1), testutil.ToFloat64(metrics.StoreErrorsTotal.WithLabelValues("delete")))
	})

	t.Run("results pass through unchanged", func(t *testing.T) {
		metrics := NewMetrics(prometheus.NewRegistry())
		store := NewInstrumentedStore(&fakeStore{}, metrics)

		row, modified, err := store.UpdateRow(ctx, 7, api.RowPatch{})
		assert.NoError(t, err)
		assert.True(t, modified)
		assert.Equal(t, int64(7), row.ID)
	})
}
