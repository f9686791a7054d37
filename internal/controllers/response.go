package controllers

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"

	"doorbelld/internal/models"
	"doorbelld/internal/providers"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps engine errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInvalidKey),
		errors.Is(err, models.ErrInvalidFilter),
		errors.Is(err, models.ErrInvalidOrder):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrQueueFull), errors.Is(err, models.ErrQueueClosed):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func respond(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, status, gson)
}

func respondError(w http.ResponseWriter, r *http.Request, logger providers.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "%s %s: %s", r.Method, r.URL.Path, err)
		respond(w, status, errorResponse{Error: http.StatusText(status)})
		return
	}
	respond(w, status, errorResponse{Error: err.Error()})
}

// serveFromCache answers from the response cache, or computes, encodes and
// stores the result. Failed computations are never cached.
func serveFromCache(w http.ResponseWriter, r *http.Request, cache providers.CacheProviderInterface, logger providers.Logger, cacheKey string, compute func() (any, error)) {
	if data, ok := cache.Get(cacheKey); ok {
		writeJSON(w, http.StatusOK, data)
		return
	}

	result, err := compute()
	if err != nil {
		respondError(w, r, logger, err)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		respondError(w, r, logger, err)
		return
	}

	cache.Set(cacheKey, gson)
	writeJSON(w, http.StatusOK, gson)
}
