package socrata

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK        = "ok"
	outcomeFailed    = "failed"
	outcomeMalformed = "malformed"
)

//nolint:gochecknoglobals
var fetchDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "treehealth",
		Subsystem: "socrata",
		Name:      "fetch_duration_seconds",
		Help:      "Duration of tree census requests by outcome.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 16, 32},
	},
	[]string{"outcome"},
)
