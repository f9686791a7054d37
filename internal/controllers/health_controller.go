package controllers

import (
	"fmt"
	"net/http"
	"time"

	"doorbelld/internal/queue"
	"doorbelld/internal/storage"
)

type HealthController struct {
	queue     queue.TaskQueueInterface
	media     storage.MediaStoreInterface
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	QueuePending  int64   `json:"queue_pending"`
	StoreRoot     string  `json:"store_root"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	respond(w, http.StatusOK, healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		QueuePending:  hc.queue.Pending(),
		StoreRoot:     hc.media.Root(),
	})
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(q queue.TaskQueueInterface, media storage.MediaStoreInterface) *HealthController {
	return &HealthController{
		queue:     q,
		media:     media,
		startTime: time.Now(),
	}
}
