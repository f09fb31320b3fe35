package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"treehealth/pkg/contextx"
	"treehealth/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const httpServerReadHeaderTimeout = 5 * time.Second

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// ReadinessFunc reports whether the application accepts traffic.
type ReadinessFunc func(context.Context) error

type Server struct {
	listenAddress string
	options       Options
	ready         ReadinessFunc
}

type Options struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type status struct {
	Options

	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

func NewServer(
	listenAddress string,
	options Options,
	ready ReadinessFunc,
) Server {
	if ready == nil {
		ready = func(context.Context) error { return nil }
	}

	return Server{
		listenAddress: listenAddress,
		options:       options,
		ready:         ready,
	}
}

func (s Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handlerHealthz)
	mux.HandleFunc("/ready", s.handlerReady)

	httpServer := &http.Server{
		//nolint:exhaustruct
		Addr:              s.listenAddress,
		Handler:           mux,
		ReadHeaderTimeout: httpServerReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		if err := httpServer.Shutdown(context.WithoutCancel(ctx)); err != nil {
			logger(ctx).Error("httpServer.Shutdown", logx.Error(err))
		}
	}()

	logger(ctx).Info("probe server started", slog.String("address", s.listenAddress))

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("httpServer.ListenAndServe: %w", err)
	}

	logger(ctx).Info("probe server stopped")

	return nil
}

func (s Server) handlerHealthz(w http.ResponseWriter, r *http.Request) {
	s.write(w, r, http.StatusOK, status{Options: s.options, Status: "ok"})
}

func (s Server) handlerReady(w http.ResponseWriter, r *http.Request) {
	if err := s.ready(r.Context()); err != nil {
		logger(r.Context()).Warn("not ready", logx.Error(err))
		s.write(w, r, http.StatusServiceUnavailable, status{Options: s.options, Status: "unavailable", Reason: err.Error()})

		return
	}

	s.write(w, r, http.StatusOK, status{Options: s.options, Status: "ok"})
}

func (s Server) write(w http.ResponseWriter, r *http.Request, code int, body status) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger(r.Context()).Error("json.Encode", logx.Error(err))
	}
}
