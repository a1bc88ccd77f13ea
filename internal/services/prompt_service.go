package services

import (
	"context"
	"errors"
	"fmt"
	"ratingd/internal/models"
	"ratingd/internal/providers"
	"time"
)

type PromptServiceInterface interface {
	RecordUsageEvent(ctx context.Context, kind models.UsageKind) (CycleResult, error)
	RecordUse(ctx context.Context) (CycleResult, error)
	RecordPositiveEvent(ctx context.Context) (CycleResult, error)
	CheckAndPrompt(ctx context.Context) (CycleResult, error)
	Eligible(ctx context.Context) (bool, error)
	TriggerPromptFlow(ctx context.Context) (models.Outcome, error)
	RequestReview(ctx context.Context) error
	Snapshot(ctx context.Context) (models.LedgerSnapshot, error)
	WithPresenter(p Presenter) PromptServiceInterface
	Options() Options
}

type Dependencies struct {
	Ledger    LedgerInterface
	Presenter Presenter
	// Review is optional. Nil means no native review module is installed.
	Review  ReviewFacility
	Opener  LinkOpener
	Logger  providers.Logger
	Metrics providers.MetricsProviderInterface
	Clock   func() time.Time
}

// CycleResult is returned by the entry points that may run a prompt cycle.
// Outcome is OutcomeNone when Eligible is false.
type CycleResult struct {
	Eligible bool           `json:"eligible"`
	Outcome  models.Outcome `json:"outcome"`
}

type PromptService struct {
	opts Options
	deps Dependencies
}

func New(appStoreID, playStoreID string, overrides Overrides, deps Dependencies) (*PromptService, error) {
	if appStoreID == "" || playStoreID == "" {
		return nil, fmt.Errorf("%w: you must specify your app's store IDs on construction", ErrConfiguration)
	}
	if deps.Ledger == nil {
		return nil, fmt.Errorf("%w: ledger is required", ErrConfiguration)
	}
	if deps.Presenter == nil {
		return nil, fmt.Errorf("%w: presenter is required", ErrConfiguration)
	}
	if deps.Logger == nil {
		return nil, fmt.Errorf("%w: logger is required", ErrConfiguration)
	}
	if deps.Metrics == nil {
		deps.Metrics = providers.NewNoopMetrics()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.Opener == nil {
		deps.Opener = discardOpener{}
	}

	overrides.AppStoreID = appStoreID
	overrides.PlayStoreID = playStoreID

	return &PromptService{
		opts: MergeOptions(overrides),
		deps: deps,
	}, nil
}

func (s *PromptService) Options() Options {
	return s.opts
}

// WithPresenter returns a copy bound to p. The ledger and the other collaborators are shared.
func (s *PromptService) WithPresenter(p Presenter) PromptServiceInterface {
	c := *s
	c.deps.Presenter = p
	return &c
}

func (s *PromptService) RecordUse(ctx context.Context) (CycleResult, error) {
	return s.RecordUsageEvent(ctx, models.UsageUse)
}

func (s *PromptService) RecordPositiveEvent(ctx context.Context) (CycleResult, error) {
	return s.RecordUsageEvent(ctx, models.UsagePositiveInteraction)
}

func (s *PromptService) RecordUsageEvent(ctx context.Context, kind models.UsageKind) (CycleResult, error) {
	var err error
	switch kind {
	case models.UsageUse:
		err = s.deps.Ledger.RecordUse(ctx)
	case models.UsagePositiveInteraction:
		err = s.deps.Ledger.RecordPositiveEvent(ctx)
	default:
		return CycleResult{}, fmt.Errorf("unknown usage kind %d", kind)
	}
	if err != nil {
		s.deps.Logger.Errorf(providers.TypePrompt, "Unable to record %s: %v", kind, err)
		return CycleResult{}, err
	}
	s.deps.Metrics.IncUsageEvents(kind.String())

	return s.CheckAndPrompt(ctx)
}

func (s *PromptService) Eligible(ctx context.Context) (bool, error) {
	snap, err := s.deps.Ledger.ReadAll(ctx)
	if err != nil {
		return false, err
	}
	return s.opts.Timing.ShouldPrompt(s.opts.Thresholds(), snap, s.deps.Clock()), nil
}

func (s *PromptService) Snapshot(ctx context.Context) (models.LedgerSnapshot, error) {
	return s.deps.Ledger.ReadAll(ctx)
}

func (s *PromptService) CheckAndPrompt(ctx context.Context) (CycleResult, error) {
	eligible, err := s.Eligible(ctx)
	if err != nil || !eligible {
		return CycleResult{Eligible: eligible}, err
	}

	outcome, err := s.TriggerPromptFlow(ctx)
	return CycleResult{Eligible: true, Outcome: outcome}, err
}

// TriggerPromptFlow runs one prompt cycle regardless of eligibility.
// Any error aborts the cycle and leaves the counters as they were.
func (s *PromptService) TriggerPromptFlow(ctx context.Context) (models.Outcome, error) {
	if err := s.deps.Ledger.RecordRatingSeen(ctx); err != nil {
		s.deps.Logger.Errorf(providers.TypePrompt, "Unable to record prompt as seen: %v", err)
		return models.OutcomeNone, err
	}

	outcome, err := s.present(ctx)
	if err != nil {
		s.deps.Logger.Errorf(providers.TypePrompt, "Prompt cycle aborted: %v", err)
		return models.OutcomeNone, err
	}

	if err = s.dispatch(ctx, outcome); err != nil {
		s.deps.Logger.Errorf(providers.TypePrompt, "Unable to apply outcome %s: %v", outcome, err)
		return outcome, err
	}

	if err = s.deps.Ledger.ResetCounters(ctx); err != nil {
		s.deps.Logger.Errorf(providers.TypePrompt, "Unable to reset counters: %v", err)
		return outcome, err
	}

	s.deps.Metrics.IncPromptCycles(outcome.String())
	s.deps.Logger.Infof(providers.TypePrompt, "Prompt cycle finished with outcome %s", outcome)
	if outcome.Suppresses() {
		s.deps.Logger.Infof(providers.TypePrompt, "Rating prompt suppressed from now on")
	}
	return outcome, nil
}

// present walks the dialogs and reports what the user chose. Side effects
// of the final choice are applied by dispatch. A dialog closed without an
// answer ends the cycle as dismissed, never as a decline.
func (s *PromptService) present(ctx context.Context) (models.Outcome, error) {
	if s.opts.ShowIsEnjoyingDialog {
		gate := s.gateDialog()
		action, err := s.ask(ctx, gate)
		if errors.Is(err, models.ErrDismissed) {
			return models.OutcomeDismissed, nil
		}
		if err != nil {
			return models.OutcomeNone, err
		}
		if action == models.ActionDecline {
			return models.OutcomeDeclinedAtGate, nil
		}
		s.opts.Callbacks.EnjoyingApp()
	}

	if s.nativeReviewAvailable() {
		if err := s.deps.Review.RequestReview(ctx); err != nil {
			return models.OutcomeNone, err
		}
		return models.OutcomeNativeReview, nil
	}

	action, err := s.ask(ctx, s.ratingDialog())
	if errors.Is(err, models.ErrDismissed) {
		return models.OutcomeDismissed, nil
	}
	if err != nil {
		return models.OutcomeNone, err
	}
	switch action {
	case models.ActionAccept:
		return models.OutcomeAccepted, nil
	case models.ActionDelay:
		return models.OutcomeDelayed, nil
	default:
		return models.OutcomeDeclined, nil
	}
}

func (s *PromptService) ask(ctx context.Context, d models.Dialog) (models.Action, error) {
	s.deps.Logger.Debugf(providers.TypePrompt, "Presenting %q", d.Title)
	action, err := s.deps.Presenter.Present(ctx, d)
	if err != nil {
		return 0, err
	}
	if !d.Has(action) {
		return 0, fmt.Errorf("%w: %s in %q", ErrInvalidChoice, action, d.Title)
	}
	s.deps.Logger.Debugf(providers.TypePrompt, "User picked %s in %q", action, d.Title)
	return action, nil
}

func (s *PromptService) gateDialog() models.Dialog {
	return models.Dialog{
		Message: s.opts.EnjoyingMessage,
		Choices: []models.Choice{
			{Label: s.opts.EnjoyingActions.Accept, Action: models.ActionAccept},
			{Label: s.opts.EnjoyingActions.Decline, Action: models.ActionDecline, Style: models.StyleCancel},
		},
	}
}

func (s *PromptService) ratingDialog() models.Dialog {
	return models.Dialog{
		Title:   s.opts.Title,
		Message: s.opts.Message,
		Choices: []models.Choice{
			{Label: s.opts.ActionLabels.Accept, Action: models.ActionAccept},
			{Label: s.opts.ActionLabels.Delay, Action: models.ActionDelay},
			{Label: s.opts.ActionLabels.Decline, Action: models.ActionDecline, Style: models.StyleCancel},
		},
	}
}

// nativeReviewAvailable reports whether the cycle should hand off to the
// native sheet. Only iOS has one wired into the cycle.
func (s *PromptService) nativeReviewAvailable() bool {
	return s.opts.Platform == PlatformIOS && s.deps.Review != nil && s.deps.Review.Available()
}

// RequestReview asks the platform for its native review sheet without
// touching the ledger.
func (s *PromptService) RequestReview(ctx context.Context) error {
	if s.deps.Review == nil {
		return fmt.Errorf("%w: native review module not available", ErrCapabilityUnavailable)
	}
	if !s.deps.Review.Available() {
		return fmt.Errorf("%w: native review is not available on this platform version", ErrCapabilityUnavailable)
	}
	return s.deps.Review.RequestReview(ctx)
}

type discardOpener struct{}

func (discardOpener) Open(string) {}
