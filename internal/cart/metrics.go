package cart

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cartOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_operations_total",
			Help: "Total number of cart mutations by operation and outcome",
		},
		[]string{"op", "outcome"},
	)

	cartLines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cart_lines",
			Help: "Current number of distinct lines in the session cart",
		},
	)
)
