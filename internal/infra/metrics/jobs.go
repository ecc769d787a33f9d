package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(jobTransitionsTotal, jobsByState) }

var jobTransitionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "job_transitions_total",
		Help: "Lifecycle transitions applied to jobs, labeled by target state and outcome.",
	},
	[]string{"to", "outcome"}, // outcome: 'ok', 'invalid', 'error'
)

var jobsByState = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "jobs_by_state",
		Help: "Current number of jobs in each lifecycle state.",
	},
	[]string{"state"},
)

func IncJobTransition(to, outcome string) {
	jobTransitionsTotal.WithLabelValues(norm(to), norm(outcome)).Inc()
}

func SetJobsByState(state string, n int) {
	jobsByState.WithLabelValues(norm(state)).Set(float64(n))
}
