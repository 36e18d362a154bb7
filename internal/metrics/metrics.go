// Package metrics registers the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gokatarajesh/trivia-api/internal/logging"
)

// Quiz draw outcomes.
const (
	DrawQuestion  = "question"
	DrawExhausted = "exhausted"
	DrawEmptyPool = "empty_pool"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trivia_http_requests_total",
		Help: "HTTP requests by route pattern, method and status code.",
	}, []string{"route", "method", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "trivia_http_request_duration_seconds",
		Help:    "HTTP request latency by route pattern and method.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	quizDraws = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trivia_quiz_draws_total",
		Help: "Quiz next-question draws by outcome.",
	}, []string{"outcome"})

	questionMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trivia_question_mutations_total",
		Help: "Successful question writes by operation.",
	}, []string{"op"})

	feedConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "trivia_feed_connections",
		Help: "Open websocket connections on the question feed.",
	})
)

// ObserveQuizDraw counts one quiz draw with the given outcome.
func ObserveQuizDraw(outcome string) {
	quizDraws.WithLabelValues(outcome).Inc()
}

// ObserveMutation counts a successful create or delete.
func ObserveMutation(op string) {
	questionMutations.WithLabelValues(op).Inc()
}

// FeedConnected adjusts the open feed connection gauge by delta.
func FeedConnected(delta int) {
	feedConnections.Add(float64(delta))
}

// Middleware records request counts and latency keyed by the matched route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := logging.NewStatusRecorder(w)
		next.ServeHTTP(rec, r)

		// ServeMux fills in r.Pattern on the request it was handed.
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(rec.Status)).Inc()
		httpDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}
