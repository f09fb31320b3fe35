package middlewarex

import (
	"log/slog"
	"net/http"

	"treehealth/pkg/contextx"
	"treehealth/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Logger puts a request scoped logger into the context. When TraceID did not
// run first a trace id is assigned here.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		traceID, err := contextx.TraceIDFromContext(ctx)
		if err != nil {
			traceID = contextx.NewTraceID()
			ctx = contextx.WithTraceID(ctx, traceID)
		}

		ctx = contextx.WithLogger(
			ctx,
			logger(ctx).With(
				logx.Stringer(logx.FieldTraceID, traceID),
				slog.String(logx.FieldURL, r.URL.RequestURI()),
				slog.String(logx.FieldHTTPMethod, r.Method),
				slog.String(logx.FieldIP, r.RemoteAddr),
			),
		)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
