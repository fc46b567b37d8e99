package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProjectWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "aiboard",
		Name:      "project_writes_total",
		Help:      "Project write operations by kind.",
	}, []string{"kind"})

	ImportRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "aiboard",
		Name:      "import_rows_total",
		Help:      "Import rows by outcome.",
	}, []string{"outcome"})

	ExportsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "aiboard",
		Name:      "exports_total",
		Help:      "CSV exports served.",
	})

	EventSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "aiboard",
		Name:      "event_subscribers",
		Help:      "Live websocket and SSE subscribers.",
	})
)
