package providers

import (
	"errors"
	"fmt"
	"ratingd/internal/structures"

	"github.com/gookit/validate"
)

type CnfValidatorInterface interface {
	Validate() error
}

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) CnfValidatorInterface {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid config: %s", v.Errors.One())
	}
	if err := cv.validateStorage(); err != nil {
		return err
	}
	return cv.validatePrompt()
}

// validateStorage checks driver specific fields that struct tags cannot express.
func (cv *CnfValidator) validateStorage() error {
	s := cv.conf.Storage
	switch s.Driver {
	case "file", "sqlite":
		if s.Path == "" {
			return fmt.Errorf("invalid config: storage.path is required for the %s driver", s.Driver)
		}
	case "redis":
		if s.Redis.Addr == "" {
			return errors.New("invalid config: storage.redis.addr is required for the redis driver")
		}
	}
	if cv.conf.Cache.Enabled && cv.conf.Cache.Size <= 0 {
		return errors.New("invalid config: cache.size must be positive when the cache is enabled")
	}
	return nil
}

// validatePrompt rejects negative thresholds. Nil means unset and keeps the default.
func (cv *CnfValidator) validatePrompt() error {
	p := cv.conf.Prompt
	for _, f := range []struct {
		name  string
		value *int
	}{
		{"prompt.eventsUntilPrompt", p.EventsUntilPrompt},
		{"prompt.usesUntilPrompt", p.UsesUntilPrompt},
		{"prompt.daysBeforeReminding", p.DaysBeforeReminding},
	} {
		if f.value != nil && *f.value < 0 {
			return fmt.Errorf("invalid config: %s must not be negative, got %d", f.name, *f.value)
		}
	}
	return nil
}
