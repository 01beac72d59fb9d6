package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	remoteSyncAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "invotrack",
			Name:      "remote_sync_attempts_total",
			Help:      "Remote mirror operations attempted.",
		},
		[]string{"operation"},
	)

	remoteSyncFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "invotrack",
			Name:      "remote_sync_failures_total",
			Help:      "Remote mirror operations that failed and were dropped.",
		},
		[]string{"operation"},
	)

	snapshotSaveFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "invotrack",
			Name:      "snapshot_save_failures_total",
			Help:      "Local snapshot saves that failed.",
		},
	)
)

// RemoteSyncAttempt counts one attempted remote mirror operation.
func RemoteSyncAttempt(operation string) {
	remoteSyncAttempts.WithLabelValues(operation).Inc()
}

// RemoteSyncFailure counts one failed remote mirror operation.
func RemoteSyncFailure(operation string) {
	remoteSyncFailures.WithLabelValues(operation).Inc()
}

// SnapshotSaveFailure counts one failed local snapshot save.
func SnapshotSaveFailure() {
	snapshotSaveFailures.Inc()
}
