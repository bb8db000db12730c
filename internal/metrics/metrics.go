// Package metrics exposes the gateway's Prometheus collectors.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/event"
)

const namespace = "docgate"

var (
	serverConnections = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_server_connections",
			Help:      "Connection counts reported by the store's serverStatus, by state (current, available)",
		},
		[]string{"state"},
	)
	driverConnections = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_driver_connections",
			Help:      "Connections held by this process's driver pool, by state (open, checked_out)",
		},
		[]string{"state"},
	)
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_operations_total",
			Help:      "Store operations issued by request handlers, by operation and result",
		},
		[]string{"operation", "result"},
	)
	operationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_operation_duration_seconds",
			Help:      "Latency of store operations issued by request handlers",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// ObservePoolStatus records the server-side connection counts.
func ObservePoolStatus(current, available int64) {
	serverConnections.WithLabelValues("current").Set(float64(current))
	serverConnections.WithLabelValues("available").Set(float64(available))
}

// ObserveOperation records one store operation and how long it took.
func ObserveOperation(operation string, started time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	operationsTotal.WithLabelValues(operation, result).Inc()
	operationDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

// PoolMonitor returns a driver pool monitor that keeps the driver connection
// gauges current.
func PoolMonitor() *event.PoolMonitor {
	open := driverConnections.WithLabelValues("open")
	checkedOut := driverConnections.WithLabelValues("checked_out")

	return &event.PoolMonitor{
		Event: func(e *event.PoolEvent) {
			switch e.Type {
			case event.ConnectionCreated:
				open.Inc()
			case event.ConnectionClosed:
				open.Dec()
			case event.GetSucceeded:
				checkedOut.Inc()
			case event.ConnectionReturned:
				checkedOut.Dec()
			}
		},
	}
}

// Handler serves the default registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}
