package providers

import (
	"os"
	"path/filepath"
	"ratingd/internal/structures"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogTypeByRequestType_POST(t *testing.T) {
	assert.Equal(t, TypePost, GetLogTypeByRequestType("POST"))
}

func TestGetLogTypeByRequestType_GET(t *testing.T) {
	assert.Equal(t, TypeGet, GetLogTypeByRequestType("GET"))
}

func TestGetLogTypeByRequestType_Other(t *testing.T) {
	assert.Equal(t, TypeGet, GetLogTypeByRequestType("PUT"))
	assert.Equal(t, TypeGet, GetLogTypeByRequestType("DELETE"))
}

func TestNewLogProvider_CreatesLogFiles(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   dir,
		},
	}

	logger, cleanup, err := NewLogProvider(conf)
	require.NoError(t, err)
	require.NotNil(t, cleanup)

	logger.Infof(TypeApp, "test message")
	logger.Debugf(TypeGet, "get message")
	logger.Warnf(TypePost, "post message")
	logger.Infof(TypeLedger, "ledger %s", "write")
	logger.Errorf(TypePrompt, "prompt failed")
	cleanup()

	for _, name := range []string{"app.log", "get.log", "post.log", "ledger.log", "prompt.log"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	data, err := os.ReadFile(filepath.Join(dir, "ledger.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "ledger write")
}

func TestNewLogProvider_LevelFilters(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{
		Logger: structures.LoggerConfig{Level: "warn", Mode: 0644, Dir: dir},
	}

	logger, cleanup, err := NewLogProvider(conf)
	require.NoError(t, err)
	logger.Infof(TypeApp, "hidden")
	logger.Warnf(TypeApp, "visible")
	cleanup()

	data, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(data), "hidden"))
	assert.Contains(t, string(data), "visible")
}

func TestNewLogProvider_InvalidDir(t *testing.T) {
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/nonexistent/directory/path",
		},
	}

	_, cleanup, err := NewLogProvider(conf)
	assert.Error(t, err)
	assert.Nil(t, cleanup)
}

func TestNewLogProvider_InvalidLevel(t *testing.T) {
	conf := &structures.Config{
		Logger: structures.LoggerConfig{Level: "verbose", Mode: 0644, Dir: t.TempDir()},
	}

	_, cleanup, err := NewLogProvider(conf)
	assert.Error(t, err)
	assert.Nil(t, cleanup)
}

func TestNewLogProvider_CleanupClosesFiles(t *testing.T) {
	conf := &structures.Config{
		Logger: structures.LoggerConfig{Level: "info", Mode: 0644, Dir: t.TempDir()},
	}

	logger, cleanup, err := NewLogProvider(conf)
	require.NoError(t, err)
	lp, ok := logger.(*LogProvider)
	require.True(t, ok)
	files := append([]*os.File(nil), lp.files...)
	require.Len(t, files, len(logTypes))

	cleanup()
	assert.Nil(t, lp.files)
	for _, f := range files {
		_, err := f.Write([]byte("x"))
		assert.ErrorIs(t, err, os.ErrClosed, f.Name())
	}
	assert.NotPanics(t, cleanup)
}
