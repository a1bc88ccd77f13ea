package providers

import (
	"fmt"
	"path/filepath"
	"ratingd/internal/structures"
	"strings"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.keyPrefix", "RatingRequester:")
	v.SetDefault("cache.ttl", "1m")

	_ = v.BindEnv("logger.level", "RATINGD_LOG_LEVEL")
	_ = v.BindEnv("storage.driver", "RATINGD_STORAGE_DRIVER")
	_ = v.BindEnv("storage.path", "RATINGD_STORAGE_PATH")
	_ = v.BindEnv("storage.redis.addr", "RATINGD_REDIS_ADDR")
	_ = v.BindEnv("cache.enabled", "RATINGD_CACHE_ENABLED")
	_ = v.BindEnv("prompt.debug", "RATINGD_DEBUG_PROMPT")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "RatingRequesterDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
