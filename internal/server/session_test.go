package server_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/xid"
	"github.com/stretchr/testify/require"

	"treehealth/internal/domain/service/dashboard"
	"treehealth/internal/server"
	"treehealth/pkg/contextx"
)

func TestSessionMiddleware(t *testing.T) {
	rq := require.New(t)

	pipeline := dashboard.NewPipeline(&dashboard.TreeCountFetcherMock{FetchFunc: censusFetch})
	sessions := server.NewSessionStore(pipeline, server.SessionOptions{TTL: time.Minute, SecureCookie: true})

	var seen contextx.SessionID

	h := sessions.Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		id, err := contextx.SessionIDFromContext(r.Context())
		rq.NoError(err)

		seen = id

		session, err := sessions.FromContext(r.Context())
		rq.NoError(err)
		rq.Equal(id.String(), session.ID)
	}))

	known := xid.New().String()

	testCases := []struct {
		name      string
		cookie    string
		wantFresh bool
	}{
		{name: "No cookie", wantFresh: true},
		{name: "Garbage cookie", cookie: "../../etc/passwd", wantFresh: true},
		{name: "Known cookie", cookie: known},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.cookie != "" {
				r.AddCookie(&http.Cookie{Name: server.SessionCookie, Value: tc.cookie})
			}

			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			cookies := w.Result().Cookies()

			rq.Len(cookies, 1)
			rq.Equal(server.SessionCookie, cookies[0].Name)
			rq.Equal(seen.String(), cookies[0].Value)
			rq.True(cookies[0].Secure)
			rq.Equal(60, cookies[0].MaxAge)

			if tc.wantFresh {
				rq.NotEqual(tc.cookie, cookies[0].Value)
			} else {
				rq.Equal(tc.cookie, cookies[0].Value)
			}
		})
	}

	rq.Equal(3, sessions.Len())
}

func TestSessionCookieSlides(t *testing.T) {
	rq := require.New(t)

	pipeline := dashboard.NewPipeline(&dashboard.TreeCountFetcherMock{FetchFunc: censusFetch})
	sessions := server.NewSessionStore(pipeline, server.SessionOptions{TTL: 30 * time.Minute})

	h := sessions.Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		_, err := sessions.FromContext(r.Context())
		rq.NoError(err)
	}))

	var id string

	for visit := range 3 {
		r := httptest.NewRequest(http.MethodGet, "/v1/session/chart", nil)
		if id != "" {
			r.AddCookie(&http.Cookie{Name: server.SessionCookie, Value: id})
		}

		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		cookies := w.Result().Cookies()
		rq.Len(cookies, 1, "visit %d", visit)
		rq.Equal(1800, cookies[0].MaxAge)

		if id != "" {
			rq.Equal(id, cookies[0].Value)
		}

		id = cookies[0].Value
	}

	rq.Equal(1, sessions.Len())
}
