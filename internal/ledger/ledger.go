package ledger

import (
	"context"
	"errors"
	"fmt"
	"ratingd/internal/models"
	"ratingd/internal/providers"
	"ratingd/internal/storage"
	"ratingd/internal/structures"
	"strconv"
	"sync"
	"time"

	"github.com/spf13/cast"
)

const DefaultKeyPrefix = "RatingRequester:"

const (
	KeyRatedAt    = "ratedAt"
	KeyDeclinedAt = "declinedAt"
	KeyLastSeenAt = "lastSeenAt"
	KeyUsesCount  = "usesCount"
	KeyEventCount = "eventCount"
)

// Ledger is the persisted record of rating prompt counters and timestamps.
// Absent keys read as unset; backend failures come back wrapped in storage.ErrStorage.
type Ledger struct {
	store  storage.StoreInterface
	prefix string
	now    func() time.Time
	logger providers.Logger
	// serializes counter read-modify-write on stores without atomic increment
	incrMu sync.Mutex
}

type Option func(*Ledger)

func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

func WithKeyPrefix(prefix string) Option {
	return func(l *Ledger) { l.prefix = prefix }
}

func New(store storage.StoreInterface, logger providers.Logger, opts ...Option) *Ledger {
	l := &Ledger{
		store:  store,
		prefix: DefaultKeyPrefix,
		now:    time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewLedgerProvider builds a ledger namespaced by storage.keyPrefix.
func NewLedgerProvider(conf *structures.Config, store storage.StoreInterface, logger providers.Logger) *Ledger {
	prefix := conf.Storage.KeyPrefix
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return New(store, logger, WithKeyPrefix(prefix))
}

func (l *Ledger) key(name string) string {
	return l.prefix + name
}

func (l *Ledger) RecordUse(ctx context.Context) error {
	return l.increment(ctx, KeyUsesCount)
}

func (l *Ledger) RecordPositiveEvent(ctx context.Context) error {
	return l.increment(ctx, KeyEventCount)
}

func (l *Ledger) RecordRatingSeen(ctx context.Context) error {
	return l.stamp(ctx, KeyLastSeenAt)
}

func (l *Ledger) RecordRated(ctx context.Context) error {
	return l.stamp(ctx, KeyRatedAt)
}

func (l *Ledger) RecordDecline(ctx context.Context) error {
	return l.stamp(ctx, KeyDeclinedAt)
}

// ResetCounters zeroes both counters and leaves the timestamps alone.
func (l *Ledger) ResetCounters(ctx context.Context) error {
	l.incrMu.Lock()
	defer l.incrMu.Unlock()

	for _, name := range []string{KeyUsesCount, KeyEventCount} {
		if err := l.store.Set(ctx, l.key(name), "0"); err != nil {
			return asStorageErr(err)
		}
	}
	l.logger.Debugf(providers.TypeLedger, "Counters reset")
	return nil
}

func (l *Ledger) ReadAll(ctx context.Context) (models.LedgerSnapshot, error) {
	var snap models.LedgerSnapshot
	var err error

	if snap.RatedAt, err = l.readTime(ctx, KeyRatedAt); err != nil {
		return models.LedgerSnapshot{}, err
	}
	if snap.DeclinedAt, err = l.readTime(ctx, KeyDeclinedAt); err != nil {
		return models.LedgerSnapshot{}, err
	}
	if snap.LastSeenAt, err = l.readTime(ctx, KeyLastSeenAt); err != nil {
		return models.LedgerSnapshot{}, err
	}
	if snap.UsesCount, err = l.readCount(ctx, KeyUsesCount); err != nil {
		return models.LedgerSnapshot{}, err
	}
	if snap.EventCount, err = l.readCount(ctx, KeyEventCount); err != nil {
		return models.LedgerSnapshot{}, err
	}
	return snap, nil
}

func (l *Ledger) increment(ctx context.Context, name string) error {
	l.incrMu.Lock()
	defer l.incrMu.Unlock()

	n, err := storage.Increment(ctx, l.store, l.key(name), 1)
	if err != nil {
		return asStorageErr(err)
	}
	l.logger.Debugf(providers.TypeLedger, "%s incremented to %d", name, n)
	return nil
}

func (l *Ledger) stamp(ctx context.Context, name string) error {
	ts := l.now()
	if err := l.store.Set(ctx, l.key(name), strconv.FormatInt(ts.UnixMilli(), 10)); err != nil {
		return asStorageErr(err)
	}
	l.logger.Debugf(providers.TypeLedger, "%s set to %s", name, ts.Format(time.RFC3339))
	return nil
}

func (l *Ledger) readRaw(ctx context.Context, name string) (string, bool, error) {
	v, ok, err := l.store.Get(ctx, l.key(name))
	if err != nil {
		return "", false, asStorageErr(err)
	}
	return v, ok, nil
}

func (l *Ledger) readTime(ctx context.Context, name string) (time.Time, error) {
	v, ok, err := l.readRaw(ctx, name)
	if err != nil || !ok {
		return time.Time{}, err
	}
	ms, convErr := cast.ToInt64E(v)
	if convErr != nil || ms <= 0 {
		l.logger.Warnf(providers.TypeLedger, "Ignoring malformed %s value %q", name, v)
		return time.Time{}, nil
	}
	return time.UnixMilli(ms), nil
}

func (l *Ledger) readCount(ctx context.Context, name string) (int64, error) {
	v, ok, err := l.readRaw(ctx, name)
	if err != nil || !ok {
		return 0, err
	}
	n, convErr := cast.ToInt64E(v)
	if convErr != nil || n < 0 {
		l.logger.Warnf(providers.TypeLedger, "Ignoring malformed %s value %q", name, v)
		return 0, nil
	}
	return n, nil
}

func asStorageErr(err error) error {
	if errors.Is(err, storage.ErrStorage) {
		return err
	}
	return fmt.Errorf("%w: %w", storage.ErrStorage, err)
}
