package providers

import (
	"net/http"
	"time"
)

// UnmatchedRoute labels requests that no API route served.
const UnmatchedRoute = "unmatched"

// responseRecorder keeps the first status a handler sent. Unwrap lets
// http.ResponseController and gzhttp reach the real writer.
type responseRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *responseRecorder) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseRecorder) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

func (w *responseRecorder) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// routeLabel is the mux pattern that matched, e.g. "GET /event/{day}/{id}".
// The mux sets Pattern on the request in place, so it is readable once the
// handler returns. 404s and 405s share one label to keep random paths out
// of the series set.
func routeLabel(r *http.Request) string {
	if r.Pattern == "" {
		return UnmatchedRoute
	}
	return r.Pattern
}

// MetricsMiddleware counts and times API requests by route and status class.
func MetricsMiddleware(metrics MetricsProviderInterface, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := routeLabel(r)
		metrics.IncRequestsTotal(route, rec.status)
		metrics.ObserveRequestDuration(route, time.Since(start))
	})
}
