package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/amaclone/storefront/pkg/metrics"
)

// Metrics records request latency and counts keyed by the matched chi route pattern, so
// path parameters never become label values.
func Metrics(m *metrics.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()
			next.ServeHTTP(rec, r)

			route := routePattern(r)
			if route == r.URL.Path && rec.Status() == http.StatusNotFound {
				route = "unmatched"
			}
			m.Observe(r.Method, route, rec.Status(), time.Since(start))
		})
	}
}

// routePattern is the matched chi pattern, or the raw path when nothing matched.
func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if pattern := rc.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}
