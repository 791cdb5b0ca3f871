package sheetstore

import (
	"context"
	"time"

	"github.com/beautybox/salon-api/pkg/metrics"
)

// WithMetrics wraps a TableStore so every operation is counted and timed.
func WithMetrics(store TableStore, m *metrics.Metrics) TableStore {
	return &instrumentedStore{store: store, m: m}
}

type instrumentedStore struct {
	store TableStore
	m     *metrics.Metrics
}

func (s *instrumentedStore) observe(op, table string, start time.Time, err error) {
	s.m.StoreOperations.WithLabelValues(op, table).Inc()
	s.m.StoreLatency.WithLabelValues(op, table).Observe(time.Since(start).Seconds())
	if err != nil {
		s.m.StoreErrors.WithLabelValues(op, table).Inc()
	}
}

func (s *instrumentedStore) GetOrCreateTable(ctx context.Context, name string, header []string) error {
	start := time.Now()
	err := s.store.GetOrCreateTable(ctx, name, header)
	s.observe("get_or_create", name, start, err)
	return err
}

func (s *instrumentedStore) ReadAll(ctx context.Context, name string) ([]Row, error) {
	start := time.Now()
	rows, err := s.store.ReadAll(ctx, name)
	s.observe("read_all", name, start, err)
	return rows, err
}

func (s *instrumentedStore) Append(ctx context.Context, name string, values []string) error {
	start := time.Now()
	err := s.store.Append(ctx, name, values)
	s.observe("append", name, start, err)
	return err
}

func (s *instrumentedStore) UpdateRange(ctx context.Context, name string, a1Range string, values [][]string) error {
	start := time.Now()
	err := s.store.UpdateRange(ctx, name, a1Range, values)
	s.observe("update_range", name, start, err)
	return err
}

func (s *instrumentedStore) DeleteRow(ctx context.Context, name string, rowIndex int) error {
	start := time.Now()
	err := s.store.DeleteRow(ctx, name, rowIndex)
	s.observe("delete_row", name, start, err)
	return err
}
