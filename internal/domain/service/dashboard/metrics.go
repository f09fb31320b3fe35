package dashboard

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK         = "ok"
	outcomeFetchError = "fetch_error"
	outcomeEmpty      = "empty"
	outcomeError      = "error"
)

//nolint:gochecknoglobals
var (
	pipelineRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "treehealth",
			Subsystem: "dashboard",
			Name:      "pipeline_runs_total",
			Help:      "Chart pipeline runs by outcome.",
		},
		[]string{"mode", "outcome"},
	)

	staleResponses = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "treehealth",
			Subsystem: "dashboard",
			Name:      "stale_responses_total",
			Help:      "Chart results discarded because a newer selection arrived.",
		},
	)
)
