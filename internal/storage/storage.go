package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrStorage marks every failure coming from a key-value backend.
	ErrStorage = errors.New("storage: operation failed")

	ErrUnknownDriver = errors.New("storage: unknown driver")
	ErrClosed        = errors.New("storage: store is closed")
)

// StoreInterface is the persisted key-value storage backing the ledger.
// A missing key is reported with ok == false and a nil error.
type StoreInterface interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Incrementer is implemented by backends that can add to an integer value atomically.
// A missing value counts as zero.
type Incrementer interface {
	Incr(ctx context.Context, key string, delta int64) (int64, error)
}

func wrapErr(op, key string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStorage) {
		return err
	}
	return fmt.Errorf("%w: %s %s: %w", ErrStorage, op, key, err)
}

// incrBySetGet is the read-modify-write fallback for stores without an atomic
// increment. It is not safe for concurrent callers on the same key.
func incrBySetGet(ctx context.Context, s StoreInterface, key string, delta int64) (int64, error) {
	v, _, err := s.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	n, _ := strconv.ParseInt(v, 10, 64)
	n += delta
	if err := s.Set(ctx, key, strconv.FormatInt(n, 10)); err != nil {
		return 0, err
	}
	return n, nil
}

// Increment adds delta to key, atomically when the store supports it.
func Increment(ctx context.Context, s StoreInterface, key string, delta int64) (int64, error) {
	if inc, ok := s.(Incrementer); ok {
		return inc.Incr(ctx, key, delta)
	}
	return incrBySetGet(ctx, s, key, delta)
}
