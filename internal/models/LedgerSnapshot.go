package models

import "time"

// LedgerSnapshot is a point-in-time copy of the rating ledger.
// A zero time means the timestamp was never set.
type LedgerSnapshot struct {
	RatedAt    time.Time `json:"rated_at"`
	DeclinedAt time.Time `json:"declined_at"`
	LastSeenAt time.Time `json:"last_seen_at"`
	UsesCount  int64     `json:"uses_count"`
	EventCount int64     `json:"event_count"`
}

func (s LedgerSnapshot) HasRated() bool    { return !s.RatedAt.IsZero() }
func (s LedgerSnapshot) HasDeclined() bool { return !s.DeclinedAt.IsZero() }
func (s LedgerSnapshot) HasBeenSeen() bool { return !s.LastSeenAt.IsZero() }

// Suppressed reports whether a terminal marker is set.
func (s LedgerSnapshot) Suppressed() bool {
	return s.HasRated() || s.HasDeclined()
}
