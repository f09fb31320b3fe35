package modules

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"treehealth/pkg/logx"
)

var errNotListening = errors.New("http server is not listening")

// HTTPServer модуль, ответственный за запуск и остановку HTTP-сервера
// (graceful shutdown).
type HTTPServer struct {
	ShutdownTimeout time.Duration

	listening atomic.Bool
}

func (h *HTTPServer) Run(
	ctx context.Context,
	g *errgroup.Group,
	httpServer *http.Server,
) {
	g.Go(func() error {
		go func() {
			<-ctx.Done()

			h.listening.Store(false)

			ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.ShutdownTimeout) //nolint:govet
			defer cancel()

			if err := httpServer.Shutdown(ctx); err != nil {
				logger(ctx).Error("server.Shutdown", logx.Error(err))
			}
		}()

		listener, err := net.Listen("tcp", httpServer.Addr)
		if err != nil {
			return fmt.Errorf("net.Listen: %w", err)
		}

		h.listening.Store(true)

		logger(ctx).Info("http server started", slog.String("address", listener.Addr().String()))

		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("httpServer.Serve: %w", err)
		}

		logger(ctx).Info("http server stopped", slog.String("address", httpServer.Addr))

		return nil
	})
}

// Ready is a probe.ReadinessFunc for the served listener.
func (h *HTTPServer) Ready(context.Context) error {
	if !h.listening.Load() {
		return errNotListening
	}

	return nil
}
