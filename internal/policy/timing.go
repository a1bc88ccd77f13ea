// Package policy decides whether the rating prompt should be shown.
package policy

import (
	"math"
	"ratingd/internal/models"
	"time"
)

const day = 24 * time.Hour

// Thresholds are the numeric knobs of the timing policy.
type Thresholds struct {
	EventsUntilPrompt   int
	UsesUntilPrompt     int
	DaysBeforeReminding int
	Debug               bool
}

// TimingPolicy turns a ledger snapshot into a prompt decision.
// Implementations must not have side effects.
type TimingPolicy interface {
	ShouldPrompt(t Thresholds, s models.LedgerSnapshot, now time.Time) bool
}

// TimingFunc adapts a plain function to TimingPolicy.
type TimingFunc func(t Thresholds, s models.LedgerSnapshot, now time.Time) bool

func (f TimingFunc) ShouldPrompt(t Thresholds, s models.LedgerSnapshot, now time.Time) bool {
	return f(t, s, now)
}

// DefaultTiming prompts when any counter reaches its threshold or enough days
// have passed since the last prompt, unless the user already rated or declined.
type DefaultTiming struct{}

func (DefaultTiming) ShouldPrompt(t Thresholds, s models.LedgerSnapshot, now time.Time) bool {
	if !t.Debug && s.Suppressed() {
		return false
	}

	return t.Debug ||
		s.UsesCount >= int64(t.UsesUntilPrompt) ||
		s.EventCount >= int64(t.EventsUntilPrompt) ||
		DaysSince(s.LastSeenAt, now) > int64(t.DaysBeforeReminding)
}

// DaysSince returns whole days elapsed since ts. An unset ts counts as
// infinitely long ago, so a never-prompted user passes the days check.
func DaysSince(ts, now time.Time) int64 {
	if ts.IsZero() {
		return math.MaxInt64
	}
	return int64(math.Floor(float64(now.Sub(ts)) / float64(day)))
}
