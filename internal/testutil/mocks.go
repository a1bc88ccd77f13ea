package testutil

import (
	"context"
	"errors"
	"ratingd/internal/models"
	"ratingd/internal/providers"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// MockMetrics implements providers.MetricsProviderInterface and counts prompt metrics.
type MockMetrics struct {
	mu           sync.Mutex
	UsageEvents  map[string]int
	PromptCycles map[string]int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits()                                    {}
func (m *MockMetrics) IncCacheMisses()                                  {}
func (m *MockMetrics) ObserveStorageDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncStorageErrors(_ string)                        {}

func (m *MockMetrics) IncUsageEvents(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UsageEvents == nil {
		m.UsageEvents = make(map[string]int)
	}
	m.UsageEvents[kind]++
}

func (m *MockMetrics) IncPromptCycles(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PromptCycles == nil {
		m.PromptCycles = make(map[string]int)
	}
	m.PromptCycles[outcome]++
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
}

// MockCompressor implements storage.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
	Closed       bool
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() { m.Closed = true }

var ErrInjected = errors.New("injected failure")

// FailingStore implements storage.StoreInterface over a map. An entry in FailOn
// is either an operation ("get", "set", "remove") failing for every key, or a
// key failing for every operation.
type FailingStore struct {
	mu     sync.Mutex
	Data   map[string]string
	FailOn map[string]bool
	Sets   []string
}

func NewFailingStore(failOn ...string) *FailingStore {
	f := &FailingStore{Data: make(map[string]string), FailOn: make(map[string]bool)}
	for _, op := range failOn {
		f.FailOn[op] = true
	}
	return f
}

func (f *FailingStore) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailOn["get"] || f.FailOn[key] {
		return "", false, ErrInjected
	}
	v, ok := f.Data[key]
	return v, ok, nil
}

func (f *FailingStore) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailOn["set"] || f.FailOn[key] {
		return ErrInjected
	}
	f.Data[key] = value
	f.Sets = append(f.Sets, key)
	return nil
}

func (f *FailingStore) Remove(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailOn["remove"] || f.FailOn[key] {
		return ErrInjected
	}
	delete(f.Data, key)
	return nil
}

func (f *FailingStore) Close() error { return nil }

// MockPresenter answers dialogs from a queue and records what it was shown.
type MockPresenter struct {
	mu      sync.Mutex
	Answers []models.Action
	Err     error
	Shown   []models.Dialog
}

func (m *MockPresenter) Present(_ context.Context, d models.Dialog) (models.Action, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Shown = append(m.Shown, d)
	if m.Err != nil {
		return 0, m.Err
	}
	if len(m.Answers) == 0 {
		return 0, models.ErrDismissed
	}
	a := m.Answers[0]
	m.Answers = m.Answers[1:]
	return a, nil
}

// MockReviewFacility implements the native review probe.
type MockReviewFacility struct {
	IsAvailable bool
	Err         error
	Requests    int
}

func (m *MockReviewFacility) Available() bool { return m.IsAvailable }

func (m *MockReviewFacility) RequestReview(_ context.Context) error {
	m.Requests++
	return m.Err
}

// MockOpener records opened URLs.
type MockOpener struct {
	mu     sync.Mutex
	Opened []string
}

func (m *MockOpener) Open(url string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Opened = append(m.Opened, url)
}
