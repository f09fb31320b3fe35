package modules

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"treehealth/pkg/metrics"
	"treehealth/pkg/probe"
)

// ProbeServer exposes liveness and readiness of the dashboard on its own port.
type ProbeServer struct {
	Name          string
	Version       string
	ListenAddress string
	Ready         probe.ReadinessFunc
}

func (p ProbeServer) Run(ctx context.Context, g *errgroup.Group) {
	srv := probe.NewServer(
		p.ListenAddress,
		probe.Options{Name: p.Name, Version: p.Version},
		p.Ready,
	)

	runSidecar(ctx, g, "probe", p.ListenAddress, srv.Run)
}

// MetricServer exposes Gatherer on /metrics. A nil Gatherer serves the
// default registry where the census client and pipeline register.
type MetricServer struct {
	ListenAddress string
	Gatherer      prometheus.Gatherer
}

func (m MetricServer) Run(ctx context.Context, g *errgroup.Group) {
	srv := metrics.NewPrometheusServer(m.ListenAddress, m.Gatherer)

	runSidecar(ctx, g, "metrics", m.ListenAddress, srv.Run)
}

// runSidecar skips servers configured with an empty address.
func runSidecar(
	ctx context.Context,
	g *errgroup.Group,
	name string,
	address string,
	run func(context.Context) error,
) {
	if address == "" {
		logger(ctx).Info("sidecar disabled", slog.String("sidecar", name))

		return
	}

	g.Go(func() error {
		if err := run(ctx); err != nil {
			return fmt.Errorf("%s server: %w", name, err)
		}

		return nil
	})
}
