package controllers

import (
	"net/http"

	"doorbelld/internal/calendar"
	"doorbelld/internal/providers"
	"doorbelld/internal/services"
)

type DashboardController struct {
	logger  providers.Logger
	service services.AggregationServiceInterface
	cache   providers.CacheProviderInterface
	cal     *calendar.Calendar
}

func NewDashboardController(logger providers.Logger, service services.AggregationServiceInterface, cache providers.CacheProviderInterface, cal *calendar.Calendar) *DashboardController {
	return &DashboardController{
		logger:  logger,
		service: service,
		cache:   cache,
		cal:     cal,
	}
}

func (dc *DashboardController) Dashboard(w http.ResponseWriter, r *http.Request) {
	serveFromCache(w, r, dc.cache, dc.logger, "dashboard:"+dc.cal.Today(), func() (any, error) {
		return dc.service.Dashboard()
	})
}

func (dc *DashboardController) Resources(w http.ResponseWriter, r *http.Request) {
	serveFromCache(w, r, dc.cache, dc.logger, "resources:"+dc.cal.Today(), func() (any, error) {
		return dc.service.Resources()
	})
}
