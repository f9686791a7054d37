package internal

import (
	"net/http"

	"doorbelld/internal/controllers"
	"doorbelld/internal/providers"
)

func InitRoutes(eventController *controllers.EventController, dashboardController *controllers.DashboardController, motionController *controllers.MotionController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/event/all", http.HandlerFunc(eventController.ListEvents))
	routers.Get("/event/{day}/{id}", http.HandlerFunc(eventController.GetEvent))
	routers.Delete("/event/{day}/{id}", http.HandlerFunc(eventController.DeleteEvent))
	routers.Get("/event/{day}/{id}/video", http.HandlerFunc(eventController.GetVideo))
	routers.Get("/dashboard", http.HandlerFunc(dashboardController.Dashboard))
	routers.Get("/resources", http.HandlerFunc(dashboardController.Resources))
	routers.Post("/motion", http.HandlerFunc(motionController.ReceiveMotion))
	return routers
}
