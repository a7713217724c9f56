package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreErrors counts document store failures by collection and operation.
	StoreErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_store_errors_total",
		Help: "Total number of document store errors by collection and operation",
	}, []string{"collection", "operation"})

	// PartialWrites counts two-document updates that committed their first
	// write but failed before the second. These are the operations an
	// operator (or a retry) must reconcile.
	PartialWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_partial_writes_total",
		Help: "Total number of partially applied two-document updates by operation",
	}, []string{"operation"})

	// ConsistencyFaults counts detected cross-document invariant violations,
	// such as a favorites counter observed below zero.
	ConsistencyFaults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_consistency_faults_total",
		Help: "Total number of detected cross-document invariant violations",
	}, []string{"invariant"})

	// RedisErrors counts Redis cache errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)
