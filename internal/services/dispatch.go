package services

import (
	"context"
	"ratingd/internal/models"
	"ratingd/internal/providers"
)

// transition is what happens after the user made a choice.
type transition struct {
	openStore bool
	record    func(LedgerInterface, context.Context) error
	callback  func(Callbacks) func()
}

var outcomeTable = map[models.Outcome]transition{
	models.OutcomeAccepted: {
		openStore: true,
		record:    LedgerInterface.RecordRated,
		callback:  func(c Callbacks) func() { return c.Accept },
	},
	models.OutcomeDelayed: {
		callback: func(c Callbacks) func() { return c.Delay },
	},
	models.OutcomeDeclined: {
		record:   LedgerInterface.RecordDecline,
		callback: func(c Callbacks) func() { return c.Decline },
	},
	models.OutcomeDeclinedAtGate: {
		record:   LedgerInterface.RecordDecline,
		callback: func(c Callbacks) func() { return c.NotEnjoyingApp },
	},
	// The native sheet does not report back, so nothing is recorded.
	models.OutcomeNativeReview: {},
	// Nobody answered. Only lastSeenAt and the counter reset remain.
	models.OutcomeDismissed: {},
}

func (s *PromptService) dispatch(ctx context.Context, outcome models.Outcome) error {
	tr := outcomeTable[outcome]
	if tr.openStore {
		url := s.opts.StoreURL()
		s.deps.Logger.Infof(providers.TypePrompt, "Opening store listing %s", url)
		s.deps.Opener.Open(url)
	}
	if tr.record != nil {
		if err := tr.record(s.deps.Ledger, ctx); err != nil {
			return err
		}
	}
	if tr.callback != nil {
		tr.callback(s.opts.Callbacks)()
	}
	return nil
}
