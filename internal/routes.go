package internal

import (
	"net/http"
	"puzzlestats/internal/controllers"
	"puzzlestats/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController, reportController *controllers.ReportController, backfillController *controllers.BackfillController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/events", http.HandlerFunc(apiController.ReceiveEvent))
	routers.Post("/mini", http.HandlerFunc(apiController.SubmitMini))
	routers.Get("/stats", http.HandlerFunc(apiController.GetStats))
	routers.Get("/leaderboard", http.HandlerFunc(apiController.GetLeaderboard))
	routers.Get("/chart", http.HandlerFunc(reportController.GetChart))
	routers.Get("/export", http.HandlerFunc(reportController.Export))
	routers.Post("/backfill", http.HandlerFunc(backfillController.Start))
	return routers
}
