package controllers

import (
	"net/http"

	json "github.com/goccy/go-json"

	"doorbelld/internal/models"
	"doorbelld/internal/providers"
	"doorbelld/internal/services"
)

type MotionController struct {
	logger  providers.Logger
	service services.MotionServiceInterface
}

type motionResponse struct {
	Accepted bool `json:"accepted"`
}

func NewMotionController(logger providers.Logger, service services.MotionServiceInterface) *MotionController {
	return &MotionController{
		logger:  logger,
		service: service,
	}
}

// ReceiveMotion is the webhook for camera notifications. A queued capture
// answers 202; ignored, duplicate and baseline ids answer 200.
func (mc *MotionController) ReceiveMotion(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload models.RawEvent
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respond(w, http.StatusBadRequest, errorResponse{Error: "Bad Request"})
		return
	}

	accepted, err := mc.service.HandleNotification(r.Context(), payload)
	if err != nil {
		respondError(w, r, mc.logger, err)
		return
	}
	status := http.StatusOK
	if accepted {
		status = http.StatusAccepted
	}
	respond(w, status, motionResponse{Accepted: accepted})
}
