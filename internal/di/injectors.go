//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"ratingd/internal"
	"ratingd/internal/controllers"
	"ratingd/internal/ledger"
	"ratingd/internal/presenters"
	"ratingd/internal/providers"
	"ratingd/internal/services"
	"ratingd/internal/storage"
	"ratingd/internal/structures"
)

var ledgerSet = wire.NewSet(
	providers.NewLogProvider,
	providers.NewMetricsProvider,
	providers.NewInstrumentedCacheProvider,
	storage.NewStoreProvider,
	ledger.NewLedgerProvider,
	wire.Bind(new(services.LedgerInterface), new(*ledger.Ledger)),
)

var promptSet = wire.NewSet(
	ledgerSet,
	presenters.NewReviewProvider,
	presenters.NewOpenerProvider,
	services.NewPromptServiceProvider,
)

func InitApp(cfg *structures.CliFlags) (*internal.App, func(), error) {

	wire.Build(
		providers.NewConfigProvider,
		promptSet,
		presenters.NewDismissingPresenter,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil, nil
}

// InitPromptService wires the service for one-shot CLI commands with a caller supplied presenter.
func InitPromptService(cfg *structures.CliFlags, presenter services.Presenter) (services.PromptServiceInterface, func(), error) {

	wire.Build(
		providers.NewConfigProvider,
		promptSet,
	)

	return nil, nil, nil
}
