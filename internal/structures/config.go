package structures

import (
	"net/http"
	"time"
)

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Route struct {
	Url     string
	Handler http.Handler
}

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type StorageConfig struct {
	Driver    string      `yaml:"driver" validate:"required|in:memory,file,sqlite,redis"`
	Path      string      `yaml:"path"`
	KeyPrefix string      `yaml:"keyPrefix"`
	Redis     RedisConfig `yaml:"redis"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type EnjoyingActions struct {
	Accept  string `yaml:"accept"`
	Decline string `yaml:"decline"`
}

type ActionLabels struct {
	Accept  string `yaml:"accept"`
	Delay   string `yaml:"delay"`
	Decline string `yaml:"decline"`
}

// PromptConfig is the partial prompt policy read from the config file.
// Unset (empty or nil) fields fall back to the defaults one by one.
type PromptConfig struct {
	AppStoreID           string          `yaml:"appStoreId"`
	PlayStoreID          string          `yaml:"playStoreId"`
	Platform             string          `yaml:"platform" validate:"in:ios,android"`
	EnjoyingMessage      string          `yaml:"enjoyingMessage"`
	EnjoyingActions      EnjoyingActions `yaml:"enjoyingActions"`
	Title                string          `yaml:"title"`
	Message              string          `yaml:"message"`
	ActionLabels         ActionLabels    `yaml:"actionLabels"`
	EventsUntilPrompt    *int            `yaml:"eventsUntilPrompt"`
	UsesUntilPrompt      *int            `yaml:"usesUntilPrompt"`
	DaysBeforeReminding  *int            `yaml:"daysBeforeReminding"`
	ShowIsEnjoyingDialog *bool           `yaml:"showIsEnjoyingDialog"`
	Debug                *bool           `yaml:"debug"`
	NativeReview         bool            `yaml:"nativeReview"`
	OpenCommand          string          `yaml:"openCommand"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server        `yaml:"webServer"`
	Logger    LoggerConfig  `yaml:"logger"`
	Storage   StorageConfig `yaml:"storage"`
	Cache     CacheConfig   `yaml:"cache"`
	Metrics   MetricsConfig `yaml:"metrics"`
	Prompt    PromptConfig  `yaml:"prompt"`
}
