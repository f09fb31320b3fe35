package application

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"treehealth/internal/config"
	"treehealth/internal/domain/service/dashboard"
	"treehealth/internal/infrastructure/socrata"
	"treehealth/internal/server"
	"treehealth/pkg/application/modules"
	"treehealth/pkg/contextx"
	"treehealth/pkg/httpx"
	"treehealth/pkg/logx"
	"treehealth/pkg/middlewarex"
)

// NewCensusClient возвращает клиент переписи деревьев с логированием исходящих запросов.
func NewCensusClient(cfg config.Config, masker logx.SensitiveDataMaskerInterface) *socrata.Client {
	httpClient := &http.Client{ //nolint:exhaustruct
		Timeout: cfg.Socrata.Timeout,
		Transport: httpx.NewLoggingRoundTripper(
			http.DefaultTransport,
			httpx.WithLogFieldMaxLen(cfg.Log.FieldMaxLen),
			httpx.WithSensitiveDataMasker(masker),
			httpx.WithUserAgent(cfg.Socrata.UserAgent),
		),
	}

	return socrata.NewClient(
		httpClient,
		socrata.WithBaseURL(cfg.Socrata.BaseURL),
		socrata.WithDataset(cfg.Socrata.Dataset),
		socrata.WithRowLimit(cfg.Socrata.RowLimit),
		socrata.WithAppToken(cfg.Socrata.AppToken),
	)
}

// Run обслуживает дашборд, пока не отменен ctx или не упал один из серверов.
func Run(ctx context.Context, cfg config.Config) error {
	masker := logx.NewSensitiveDataMasker()

	pipeline := dashboard.NewPipeline(NewCensusClient(cfg, masker))
	sessions := server.NewSessionStore(pipeline, server.SessionOptions{
		TTL:          cfg.Session.TTL,
		SecureCookie: cfg.Session.SecureCookie,
	})

	srv := server.NewServer(server.NewDashboardServer(pipeline, sessions))

	router := chi.NewRouter()
	router.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.RequestLogging(masker, cfg.Log.FieldMaxLen),
		middlewarex.ResponseLogging(masker, cfg.Log.FieldMaxLen),
		middlewarex.Recovery,
	)
	srv.RegisterRoutes(router)

	g, ctx := errgroup.WithContext(ctx)

	httpServer := &http.Server{ //nolint:exhaustruct
		Addr:              cfg.HTTP.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	httpModule := &modules.HTTPServer{ShutdownTimeout: cfg.HTTP.ShutdownTimeout}
	httpModule.Run(ctx, g, httpServer)

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.Probe.ListenAddress,
		Ready:         httpModule.Ready,
	}.Run(ctx, g)

	modules.MetricServer{
		ListenAddress: cfg.Metrics.ListenAddress,
	}.Run(ctx, g)

	contextx.LoggerFromContextOrDefault(ctx).Info(
		"application started",
		slog.String(logx.FieldURL, "http://"+cfg.HTTP.ListenAddress),
	)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}
