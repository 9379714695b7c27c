package middleware

import (
	"GophMart/internal/metrics"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// WithMetrics считает запросы по шаблону маршрута chi, а не по сырому пути.
func WithMetrics(rec metrics.Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lw, data := wrapResponse(w)

			next.ServeHTTP(lw, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			rec.RecordHTTPRequest(r.Method, route, data.status, time.Since(start))
		})
	}
}
