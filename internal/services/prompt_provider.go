package services

import (
	"ratingd/internal/providers"
	"ratingd/internal/structures"
)

// NewPromptServiceProvider builds the service from the prompt section of the config.
func NewPromptServiceProvider(conf *structures.Config, ledger LedgerInterface, presenter Presenter, review ReviewFacility, opener LinkOpener, logger providers.Logger, metrics providers.MetricsProviderInterface) (PromptServiceInterface, error) {
	svc, err := New(conf.Prompt.AppStoreID, conf.Prompt.PlayStoreID, Overrides{PromptConfig: conf.Prompt}, Dependencies{
		Ledger:    ledger,
		Presenter: presenter,
		Review:    review,
		Opener:    opener,
		Logger:    logger,
		Metrics:   metrics,
	})
	if err != nil {
		return nil, err
	}
	logger.Infof(providers.TypePrompt, "Prompt policy loaded: platform=%s uses=%d events=%d days=%d gate=%t debug=%t",
		svc.opts.Platform, svc.opts.UsesUntilPrompt, svc.opts.EventsUntilPrompt, svc.opts.DaysBeforeReminding,
		svc.opts.ShowIsEnjoyingDialog, svc.opts.Debug)
	return svc, nil
}
