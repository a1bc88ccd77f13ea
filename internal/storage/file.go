package storage

import (
	"context"
	"os"
	"ratingd/internal/providers"
	"strconv"
	"sync"

	json "github.com/goccy/go-json"
)

const fileFormatVersion = 1

type fileSnapshot struct {
	Version int               `json:"version"`
	Entries map[string]string `json:"entries"`
}

// FileStore keeps the whole key space in memory and rewrites the file on
// every mutation. Writes go to a temp file that is synced and renamed over
// the target, so a crash leaves either the old or the new file.
type FileStore struct {
	mu         sync.Mutex
	path       string
	data       map[string]string
	compressor CompressorInterface
	logger     providers.Logger
}

func NewFileStore(path string, compressor CompressorInterface, logger providers.Logger) (*FileStore, error) {
	f := &FileStore{
		path:       path,
		data:       make(map[string]string),
		compressor: compressor,
		logger:     logger,
	}
	if err := f.load(); err != nil {
		return nil, wrapErr("load", path, err)
	}
	return f, nil
}

func (f *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, wrapErr("get", key, err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *FileStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return wrapErr("set", key, err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	prev, existed := f.data[key]
	f.data[key] = value
	if err := f.persist(); err != nil {
		f.restore(key, prev, existed)
		return wrapErr("set", key, err)
	}
	return nil
}

func (f *FileStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return wrapErr("remove", key, err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	prev, existed := f.data[key]
	if !existed {
		return nil
	}
	delete(f.data, key)
	if err := f.persist(); err != nil {
		f.restore(key, prev, existed)
		return wrapErr("remove", key, err)
	}
	return nil
}

func (f *FileStore) Incr(ctx context.Context, key string, delta int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, wrapErr("incr", key, err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	prev, existed := f.data[key]
	cur, _ := strconv.ParseInt(prev, 10, 64)
	cur += delta
	f.data[key] = strconv.FormatInt(cur, 10)
	if err := f.persist(); err != nil {
		f.restore(key, prev, existed)
		return 0, wrapErr("incr", key, err)
	}
	return cur, nil
}

func (f *FileStore) Close() error {
	f.compressor.Close()
	return nil
}

func (f *FileStore) restore(key, prev string, existed bool) {
	if existed {
		f.data[key] = prev
	} else {
		delete(f.data, key)
	}
}

func (f *FileStore) persist() error {
	jsonData, err := json.Marshal(fileSnapshot{Version: fileFormatVersion, Entries: f.data})
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := f.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, f.path)
}

func (f *FileStore) load() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressed, err := f.compressor.Decompress(data)
	if err == nil {
		var snap fileSnapshot
		if err := json.Unmarshal(decompressed, &snap); err != nil {
			return err
		}
		if snap.Entries != nil {
			f.data = snap.Entries
		}
		return nil
	}

	// Uncompressed flat map, as written by hand or exported from another store.
	f.logger.Warnf(providers.TypeLedger, "Ledger file %s is not compressed, trying plain JSON", f.path)
	var plain map[string]string
	if jsonErr := json.Unmarshal(data, &plain); jsonErr != nil {
		f.logger.Warnf(providers.TypeLedger, "Ledger file %s could not be read", f.path)
		return err
	}
	if plain != nil {
		f.data = plain
	}
	f.logger.Warnf(providers.TypeLedger, "Imported %d ledger keys from plain JSON", len(plain))
	return nil
}
