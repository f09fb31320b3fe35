package middlewarex

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"treehealth/pkg/httpx/reply"
	"treehealth/pkg/logx"
)

// Recovery turns a handler panic into a JSON 500 carrying the trace id as
// supportId. http.ErrAbortHandler is re-raised so net/http can drop the
// connection.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}

			logger(ctx).Error(
				"panic in handler",
				slog.Any(logx.FieldError, rec),
				slog.String(logx.FieldStack, string(debug.Stack())),
			)

			reply.Error(ctx, w, fmt.Errorf("recovered: %v", rec))
		}()

		next.ServeHTTP(w, r)
	})
}
