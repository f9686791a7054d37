package controllers

import (
	"net/http"
	"strconv"

	"doorbelld/internal/calendar"
	"doorbelld/internal/models"
	"doorbelld/internal/providers"
	"doorbelld/internal/services"
)

type EventController struct {
	logger  providers.Logger
	service services.EventServiceInterface
	cache   providers.CacheProviderInterface
	cal     *calendar.Calendar
}

func NewEventController(logger providers.Logger, service services.EventServiceInterface, cache providers.CacheProviderInterface, cal *calendar.Calendar) *EventController {
	return &EventController{
		logger:  logger,
		service: service,
		cache:   cache,
		cal:     cal,
	}
}

// ListEvents serves GET /event/all?filter=&order=&includeSnapshots=.
func (ec *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := models.ParseFilter(q.Get("filter"))
	if err != nil {
		respondError(w, r, ec.logger, err)
		return
	}
	order, err := models.ParseOrder(q.Get("order"))
	if err != nil {
		respondError(w, r, ec.logger, err)
		return
	}
	include, _ := strconv.ParseBool(q.Get("includeSnapshots"))

	// keyed by day so windows roll over at local midnight
	key := "events:" + ec.cal.Today() + ":" + string(filter) + ":" + string(order) + ":" + strconv.FormatBool(include)
	serveFromCache(w, r, ec.cache, ec.logger, key, func() (any, error) {
		return ec.service.ListEvents(filter, order, include)
	})
}

func (ec *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := ec.service.GetEvent(r.PathValue("day"), r.PathValue("id"))
	if err != nil {
		respondError(w, r, ec.logger, err)
		return
	}
	respond(w, http.StatusOK, event)
}

func (ec *EventController) GetVideo(w http.ResponseWriter, r *http.Request) {
	video, err := ec.service.GetVideo(r.PathValue("day"), r.PathValue("id"))
	if err != nil {
		respondError(w, r, ec.logger, err)
		return
	}
	respond(w, http.StatusOK, video)
}

func (ec *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := ec.service.DeleteEvent(r.Context(), r.PathValue("day"), r.PathValue("id")); err != nil {
		respondError(w, r, ec.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
