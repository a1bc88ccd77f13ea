package internal

import (
	"net/http"
	"ratingd/internal/controllers"
	"ratingd/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/use", http.HandlerFunc(apiController.RecordUse))
	routers.Post("/event", http.HandlerFunc(apiController.RecordEvent))
	routers.Post("/prompt", http.HandlerFunc(apiController.Prompt))
	routers.Get("/eligibility", http.HandlerFunc(apiController.Eligibility))
	routers.Get("/ledger", http.HandlerFunc(apiController.Ledger))
	return routers
}
