package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(notificationsTotal) }

var notificationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "notifications_total",
		Help: "Notification dispatches by triggering state and outcome.",
	},
	[]string{"state", "outcome"}, // outcome: 'sent', 'failed', 'dropped'
)

func IncNotification(state, outcome string) {
	notificationsTotal.WithLabelValues(norm(state), norm(outcome)).Inc()
}
