package storage

import (
	"context"
	"fmt"
	"ratingd/internal/providers"
	"ratingd/internal/structures"
	"time"
)

const openTimeout = 5 * time.Second

// NewStoreProvider opens the configured backend and decorates it with
// metrics and the read-through cache. The cleanup func closes the backend.
func NewStoreProvider(conf *structures.Config, logger providers.Logger, cache providers.CacheProviderInterface, metrics providers.MetricsProviderInterface) (StoreInterface, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), openTimeout)
	defer cancel()

	backend, err := openBackend(ctx, conf.Storage, logger)
	if err != nil {
		return nil, nil, err
	}
	logger.Infof(providers.TypeLedger, "Ledger storage opened: driver=%s path=%s", conf.Storage.Driver, conf.Storage.Path)

	var store StoreInterface = NewInstrumentedStore(backend, metrics, logger)
	if conf.Cache.Enabled {
		store = NewCachedStore(store, cache)
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Errorf(providers.TypeLedger, "Closing ledger storage: %s", err)
		}
	}
	return store, cleanup, nil
}

func openBackend(ctx context.Context, conf structures.StorageConfig, logger providers.Logger) (StoreInterface, error) {
	switch conf.Driver {
	case "memory":
		return NewMemoryStore(), nil
	case "file":
		compressor, err := NewZstdCompressor()
		if err != nil {
			return nil, err
		}
		return NewFileStore(conf.Path, compressor, logger)
	case "sqlite":
		return NewSQLiteStore(ctx, conf.Path)
	case "redis":
		store := NewRedisStore(conf.Redis)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, conf.Driver)
	}
}
