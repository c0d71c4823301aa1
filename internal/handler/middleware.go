package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/segyhp/rent-engine/internal/metrics"
	"github.com/segyhp/rent-engine/pkg/response"
)

// MetricsMiddleware observes request latency by route template.
func MetricsMiddleware(m *metrics.Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := response.NewRecorder(w)

			next.ServeHTTP(recorder, r)

			route := "unmatched"
			if current := mux.CurrentRoute(r); current != nil {
				if tpl, err := current.GetPathTemplate(); err == nil {
					route = tpl
				}
			}
			m.HTTPDuration.
				WithLabelValues(route, r.Method, strconv.Itoa(recorder.StatusCode)).
				Observe(time.Since(start).Seconds())
		})
	}
}
