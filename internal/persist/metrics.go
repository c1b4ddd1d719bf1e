package persist

import "github.com/prometheus/client_golang/prometheus"

var (
	// slotWrites counts Save attempts by backend and result (ok|error).
	slotWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moreply_persist_writes_total",
			Help: "Total number of template collection writes.",
		},
		[]string{"backend", "result"},
	)

	// slotLoads counts Load calls by backend and outcome
	// (ok|empty|corrupt|error).
	slotLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moreply_persist_loads_total",
			Help: "Total number of template collection loads.",
		},
		[]string{"backend", "result"},
	)

	// droppedRecords counts persisted records skipped by the lenient decoder.
	droppedRecords = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moreply_persist_dropped_records_total",
			Help: "Persisted template records skipped because they were malformed.",
		},
		[]string{"backend"},
	)

	// writeSize observes the encoded collection size in bytes.
	writeSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moreply_persist_write_size_bytes",
			Help:    "Size of the encoded template collection in bytes.",
			Buckets: prometheus.ExponentialBuckets(256, 4, 8), // 256B..4MiB
		},
		[]string{"backend"},
	)
)

func init() {
	prometheus.MustRegister(slotWrites, slotLoads, droppedRecords, writeSize)
}
