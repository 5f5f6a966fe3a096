package media

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Telemetry
var (
	labelNames = []string{"operation", "method", "status"}

	requestDurations = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Namespace: "mediagw",
			Name:      "requests_duration_seconds",
			Help:      "Amounts of time spent answering media requests in seconds.",
		},
		labelNames,
	)
	responseBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mediagw",
			Name:      "response_bytes_total",
			Help:      "Total volume of response payloads emitted in bytes.",
		},
		labelNames,
	)
)

func init() {
	prometheus.MustRegister(requestDurations)
	prometheus.MustRegister(responseBytes)
}

// instrument records duration and response volume per operation.
func instrument(operation string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		labels := prometheus.Labels{
			"operation": operation,
			"method":    r.Method,
			"status":    strconv.Itoa(ww.Status()),
		}
		requestDurations.With(labels).Observe(time.Since(start).Seconds())
		responseBytes.With(labels).Add(float64(ww.BytesWritten()))
	})
}
