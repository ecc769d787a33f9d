package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() { register(httpRequestsTotal, httpRequestLatencyMs, wsConnections) }

var httpRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by route, method and status code.",
	},
	[]string{"route", "method", "code"},
)

var httpRequestLatencyMs = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_latency_ms",
		Help:    "HTTP request latency distribution in milliseconds.",
		Buckets: []float64{5, 10, 25, 50, 100, 200, 400, 800, 1600, 3000},
	},
	[]string{"route", "method"},
)

var wsConnections = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Name: "ws_connections",
		Help: "Currently open chat websocket connections.",
	},
)

func ObserveHTTPRequest(route, method string, code, latencyMs int) {
	httpRequestsTotal.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	httpRequestLatencyMs.WithLabelValues(route, method).Observe(float64(latencyMs))
}

func IncWSConnections() { wsConnections.Inc() }
func DecWSConnections() { wsConnections.Dec() }
