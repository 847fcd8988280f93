package handler

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rpcRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "facade_rpc_requests_total",
		Help: "Total RPC requests processed, labeled by operation and status code",
	}, []string{"operation", "status"})

	rpcRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "facade_rpc_request_duration_seconds",
		Help:    "Latency distribution of RPC requests",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"operation"})
)

func observeRequest(operation string, status int) {
	rpcRequestsTotal.WithLabelValues(operation, strconv.Itoa(status)).Inc()
}
