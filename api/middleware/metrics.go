package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/relistlabs/relist-backend/pkg/metrics"
)

// Metrics records request counts, latencies and in-flight gauge per route.
// The route label uses the chi pattern (e.g. /api/products/{id}) so that
// parameterized paths do not explode label cardinality.
func Metrics(httpMetrics *metrics.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if httpMetrics == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			httpMetrics.IncInFlight()
			defer httpMetrics.DecInFlight()

			next.ServeHTTP(recorder, r)

			route := r.URL.Path
			if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
				if pattern := routeCtx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}

			httpMetrics.ObserveRequest(r.Method, route, recorder.status, time.Since(start))
		})
	}
}
