package storage

import (
	"context"
	"ratingd/internal/providers"
	"time"
)

// InstrumentedStore reports the duration and failures of every backend call.
type InstrumentedStore struct {
	inner   StoreInterface
	metrics providers.MetricsProviderInterface
	logger  providers.Logger
}

func NewInstrumentedStore(inner StoreInterface, metrics providers.MetricsProviderInterface, logger providers.Logger) *InstrumentedStore {
	return &InstrumentedStore{inner: inner, metrics: metrics, logger: logger}
}

func (s *InstrumentedStore) observe(op, key string, start time.Time, err error) {
	s.metrics.ObserveStorageDuration(op, time.Since(start))
	if err != nil {
		s.metrics.IncStorageErrors(op)
		s.logger.Errorf(providers.TypeLedger, "storage %s %s failed: %s", op, key, err)
	}
}

func (s *InstrumentedStore) Get(ctx context.Context, key string) (string, bool, error) {
	start := time.Now()
	v, ok, err := s.inner.Get(ctx, key)
	s.observe("get", key, start, err)
	return v, ok, err
}

func (s *InstrumentedStore) Set(ctx context.Context, key, value string) error {
	start := time.Now()
	err := s.inner.Set(ctx, key, value)
	s.observe("set", key, start, err)
	return err
}

func (s *InstrumentedStore) Remove(ctx context.Context, key string) error {
	start := time.Now()
	err := s.inner.Remove(ctx, key)
	s.observe("remove", key, start, err)
	return err
}

// Incr falls back to Get and Set when the inner store has no atomic increment.
// The ledger serializes that path.
func (s *InstrumentedStore) Incr(ctx context.Context, key string, delta int64) (int64, error) {
	inc, ok := s.inner.(Incrementer)
	if !ok {
		return incrBySetGet(ctx, s, key, delta)
	}
	start := time.Now()
	n, err := inc.Incr(ctx, key, delta)
	s.observe("incr", key, start, err)
	return n, err
}

func (s *InstrumentedStore) Close() error {
	return s.inner.Close()
}
