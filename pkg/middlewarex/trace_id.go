package middlewarex

import (
	"net/http"

	"treehealth/pkg/contextx"
)

const HeaderTraceID = "X-Trace-Id"

// TraceID keeps a well-formed incoming X-Trace-Id and replaces anything
// else with a fresh one.
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID, err := contextx.ParseTraceID(r.Header.Get(HeaderTraceID))
		if err != nil {
			traceID = contextx.NewTraceID()
		}

		w.Header().Set(HeaderTraceID, traceID.String())

		next.ServeHTTP(w, r.WithContext(contextx.WithTraceID(r.Context(), traceID)))
	})
}
