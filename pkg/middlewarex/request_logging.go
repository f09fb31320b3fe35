package middlewarex

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"strings"

	"treehealth/pkg/logx"
)

// RequestLogging dumps every incoming request after masking. The body is
// included only for small textual payloads such as a selection change.
func RequestLogging(
	sensitiveDataMasker logx.SensitiveDataMaskerInterface,
	logFieldMaxLen int,
) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			dump, err := httputil.DumpRequest(r, dumpableBody(r, logFieldMaxLen))

			if len(dump) > logFieldMaxLen {
				dump = dump[:logFieldMaxLen]
			}

			logger(r.Context()).Info(
				logx.FieldHTTPRequest,
				slog.String(logx.FieldHTTPMethod, r.Method),
				slog.String(logx.FieldURL, r.URL.Path),
				slog.String(logx.FieldRequestBody, string(sensitiveDataMasker.Mask(dump))),
				logx.Error(err),
			)

			next.ServeHTTP(w, r)
		})
	}
}

func dumpableBody(r *http.Request, limit int) bool {
	if r.Body == nil || r.Body == http.NoBody {
		return false
	}

	if r.ContentLength < 0 || r.ContentLength > int64(limit) {
		return false
	}

	contentType := r.Header.Get("Content-Type")

	return strings.HasPrefix(contentType, "application/json") ||
		strings.HasPrefix(contentType, "application/x-www-form-urlencoded")
}
