package providers

import (
	"os"
	"path/filepath"
	"ratingd/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
webServer:
  host: 127.0.0.1
  port: 8090
logger:
  level: debug
  mode: 0644
  dir: /tmp
storage:
  driver: sqlite
  path: /tmp/ratingd.db
cache:
  enabled: true
  size: 4
  ttl: 30s
prompt:
  appStoreId: "123456"
  playStoreId: com.example.app
  usesUntilPrompt: 5
  showIsEnjoyingDialog: false
  actionLabels:
    accept: Sure
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestNewConfigProvider_ReadsFile(t *testing.T) {
	path := writeConfig(t, sampleConfig)

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path, DebugMode: true})
	require.NoError(t, err)

	assert.Equal(t, "RatingRequesterDaemon", conf.AppName)
	assert.True(t, conf.Debug)
	assert.Equal(t, path, conf.Path)
	assert.Equal(t, 8090, conf.WebServer.Port)
	assert.Equal(t, "sqlite", conf.Storage.Driver)
	assert.Equal(t, "RatingRequester:", conf.Storage.KeyPrefix)
	assert.Equal(t, 30*time.Second, conf.Cache.TTL)
	assert.Equal(t, "123456", conf.Prompt.AppStoreID)
	assert.Equal(t, "Sure", conf.Prompt.ActionLabels.Accept)
	assert.Empty(t, conf.Prompt.ActionLabels.Delay)

	require.NotNil(t, conf.Prompt.UsesUntilPrompt)
	assert.Equal(t, 5, *conf.Prompt.UsesUntilPrompt)
	assert.Nil(t, conf.Prompt.EventsUntilPrompt)
	require.NotNil(t, conf.Prompt.ShowIsEnjoyingDialog)
	assert.False(t, *conf.Prompt.ShowIsEnjoyingDialog)
	assert.Nil(t, conf.Prompt.Debug)
}

func TestNewConfigProvider_EnvOverride(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	t.Setenv("RATINGD_STORAGE_DRIVER", "memory")
	t.Setenv("RATINGD_LOG_LEVEL", "warn")

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, "memory", conf.Storage.Driver)
	assert.Equal(t, "warn", conf.Logger.Level)
}

func TestNewConfigProvider_MissingFile(t *testing.T) {
	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: filepath.Join(t.TempDir(), "absent.yaml")})
	assert.Error(t, err)
}

func TestNewConfigProvider_InvalidConfig(t *testing.T) {
	path := writeConfig(t, `
webServer:
  host: 127.0.0.1
  port: 8090
logger:
  level: loud
  mode: 0644
  dir: /tmp
`)
	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	assert.Error(t, err)
}
