package services

import "github.com/prometheus/client_golang/prometheus"

var (
	templatesGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "moreply_templates",
		Help: "Number of templates currently held by the store.",
	})

	storeMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moreply_store_mutations_total",
			Help: "Template store mutations by operation and result.",
		},
		[]string{"op", "result"},
	)

	editTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moreply_edit_transitions_total",
			Help: "Edit overlay transitions.",
		},
		[]string{"transition"},
	)
)

func init() {
	prometheus.MustRegister(templatesGauge, storeMutations, editTransitions)
}
