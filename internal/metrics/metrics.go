package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/jrsteele09/go-admin-client/token/refresh"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "admin_client"

var _ refresh.Observer = (*Recorder)(nil)

// Recorder holds the client's Prometheus collectors. It observes the refresh
// coordinator and every HTTP client sharing it.
type Recorder struct {
	refreshInFlight prometheus.Gauge
	refreshes       *prometheus.CounterVec
	queued          prometheus.Counter
	replayed        prometheus.Counter
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	authFailures    *prometheus.CounterVec
}

// New creates a Recorder and registers its collectors with reg
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		refreshInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "refresh",
			Name:      "inflight",
			Help:      "1 while a refresh exchange is outstanding.",
		}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "refresh",
			Name:      "exchanges_total",
			Help:      "Refresh exchanges performed, by result.",
		}, []string{"result"}),
		queued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "refresh",
			Name:      "queued_total",
			Help:      "Requests queued behind an in-flight refresh exchange.",
		}),
		replayed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "refresh",
			Name:      "replayed_total",
			Help:      "Queued requests replayed after a successful exchange.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Backend requests sent, by client, method and status.",
		}, []string{"client", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of backend requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		}, []string{"client"}),
		authFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "auth_failures_total",
			Help:      "Responses with 401, 403 or 429, by client and status.",
		}, []string{"client", "status"}),
	}
	reg.MustRegister(
		r.refreshInFlight,
		r.refreshes,
		r.queued,
		r.replayed,
		r.requests,
		r.requestDuration,
		r.authFailures,
	)
	return r
}

func (r *Recorder) RefreshStarted() {
	r.refreshInFlight.Set(1)
}

func (r *Recorder) RefreshFinished(err error) {
	r.refreshInFlight.Set(0)
	result := "success"
	if err != nil {
		result = "failure"
	}
	r.refreshes.WithLabelValues(result).Inc()
}

func (r *Recorder) Queued() {
	r.queued.Inc()
}

func (r *Recorder) Drained(n int) {
	r.replayed.Add(float64(n))
}

// ObserveRequest records one completed round trip; status 0 means transport error
func (r *Recorder) ObserveRequest(client, method string, status int, d time.Duration) {
	r.requests.WithLabelValues(client, method, strconv.Itoa(status)).Inc()
	r.requestDuration.WithLabelValues(client).Observe(d.Seconds())
}

func (r *Recorder) ObserveAuthFailure(client string, status int) {
	r.authFailures.WithLabelValues(client, strconv.Itoa(status)).Inc()
}

// Handler exposes the collectors gathered by g
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
