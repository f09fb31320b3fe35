package socrata_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"treehealth/internal/domain"
	"treehealth/internal/domain/entity"
	"treehealth/internal/domain/value"
	"treehealth/internal/infrastructure/socrata"
	"treehealth/pkg/errcodes"
)

func newTestClient(t *testing.T, status int, body string, check func(r *http.Request)) *socrata.Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return socrata.NewClient(
		srv.Client(),
		socrata.WithBaseURL(srv.URL+"/resource"),
		socrata.WithDataset("test-set"),
		socrata.WithRowLimit(50),
		socrata.WithAppToken("app-token"),
	)
}

func TestFetch(t *testing.T) {
	rq := require.New(t)

	body := `[
		{"spc_common":"pin oak","health":"Good","count_tree_id":"8"},
		{"spc_common":"pin oak","health":"Poor","count_tree_id":2},
		{"spc_common":"pin oak","health":"Unknown","count_tree_id":"1"},
		{"health":"Fair","count_tree_id":"3"},
		{"spc_common":"ginkgo","health":"Fair"}
	]`

	var gotRequest *http.Request

	client := newTestClient(t, http.StatusOK, body, func(r *http.Request) {
		gotRequest = r
	})

	records, err := client.Fetch(context.Background(), value.BoroughQueens, value.ModeTotalHealth)
	rq.NoError(err)

	rq.Equal("/resource/test-set.json", gotRequest.URL.Path)
	rq.Equal("boroname = 'Queens' AND status = 'Alive'", gotRequest.URL.Query().Get("$where"))
	rq.Equal("50", gotRequest.URL.Query().Get("$limit"))
	rq.Equal("app-token", gotRequest.Header.Get("X-App-Token"))

	rq.Equal([]entity.RawRecord{
		{Species: "pin oak", Health: value.HealthGood, Count: 8},
		{Species: "pin oak", Health: value.HealthPoor, Count: 2},
		{Species: "pin oak", Health: "Unknown", Count: 1},
		{Species: "", Health: value.HealthFair, Count: 3},
	}, records)
}

func TestFetchStewardship(t *testing.T) {
	rq := require.New(t)

	body := `[{"spc_common":"pin oak","steward":"1or2","health":"Good","count_tree_id":"4"}]`

	var group string

	client := newTestClient(t, http.StatusOK, body, func(r *http.Request) {
		group = r.URL.Query().Get("$group")
	})

	records, err := client.Fetch(context.Background(), value.BoroughBronx, value.ModeStewardshipComparison)
	rq.NoError(err)
	rq.Equal("spc_common,steward,health", group)
	rq.Equal([]entity.RawRecord{
		{Species: "pin oak", Steward: value.StewardOneOrTwo, Health: value.HealthGood, Count: 4},
	}, records)
}

func TestFetchEmptyTable(t *testing.T) {
	rq := require.New(t)

	client := newTestClient(t, http.StatusOK, "[]", nil)

	records, err := client.Fetch(context.Background(), value.BoroughManhattan, value.ModeTotalHealth)
	rq.NoError(err)
	rq.Empty(records)
}

func TestFetchErrors(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name     string
		mode     value.AnalysisMode
		status   int
		body     string
		wantCode string
	}{
		{
			name:     "Server error",
			mode:     value.ModeTotalHealth,
			status:   http.StatusInternalServerError,
			body:     `{"error":true}`,
			wantCode: errcodes.FetchFailed.String(),
		},
		{
			name:     "Throttled",
			mode:     value.ModeTotalHealth,
			status:   http.StatusTooManyRequests,
			body:     ``,
			wantCode: errcodes.FetchFailed.String(),
		},
		{
			name:     "Object instead of array",
			mode:     value.ModeTotalHealth,
			status:   http.StatusOK,
			body:     `{"message":"query timeout"}`,
			wantCode: errcodes.MalformedData.String(),
		},
		{
			name:     "Not JSON",
			mode:     value.ModeTotalHealth,
			status:   http.StatusOK,
			body:     `<html></html>`,
			wantCode: errcodes.MalformedData.String(),
		},
		{
			name:     "Null body",
			mode:     value.ModeTotalHealth,
			status:   http.StatusOK,
			body:     `null`,
			wantCode: errcodes.MalformedData.String(),
		},
		{
			name:     "Health column missing",
			mode:     value.ModeTotalHealth,
			status:   http.StatusOK,
			body:     `[{"spc_common":"pin oak","count_tree_id":"8"}]`,
			wantCode: errcodes.MalformedData.String(),
		},
		{
			name:     "Steward column missing",
			mode:     value.ModeStewardshipComparison,
			status:   http.StatusOK,
			body:     `[{"spc_common":"pin oak","health":"Good","count_tree_id":"8"}]`,
			wantCode: errcodes.MalformedData.String(),
		},
		{
			name:     "Count not a number",
			mode:     value.ModeTotalHealth,
			status:   http.StatusOK,
			body:     `[{"spc_common":"pin oak","health":"Good","count_tree_id":"many"}]`,
			wantCode: errcodes.MalformedData.String(),
		},
		{
			name:     "Fractional count",
			mode:     value.ModeTotalHealth,
			status:   http.StatusOK,
			body:     `[{"spc_common":"pin oak","health":"Good","count_tree_id":2.5}]`,
			wantCode: errcodes.MalformedData.String(),
		},
		{
			name:     "Count beyond int64 as float string",
			mode:     value.ModeTotalHealth,
			status:   http.StatusOK,
			body:     `[{"spc_common":"pin oak","health":"Good","count_tree_id":"1e19"}]`,
			wantCode: errcodes.MalformedData.String(),
		},
		{
			name:     "Count beyond int64 as number",
			mode:     value.ModeTotalHealth,
			status:   http.StatusOK,
			body:     `[{"spc_common":"pin oak","health":"Good","count_tree_id":-99999999999999999999}]`,
			wantCode: errcodes.MalformedData.String(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			client := newTestClient(t, tc.status, tc.body, nil)

			_, err := client.Fetch(context.Background(), value.BoroughBrooklyn, tc.mode)
			rq.Error(err)
			rq.True(domain.IsFetchError(err))

			code, ok := domain.GetCode(err)
			rq.True(ok)
			rq.Equal(tc.wantCode, code.String())
		})
	}
}

func TestFetchCanceled(t *testing.T) {
	rq := require.New(t)

	client := newTestClient(t, http.StatusOK, "[]", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Fetch(ctx, value.BoroughQueens, value.ModeTotalHealth)
	rq.True(domain.HasCode(err, errcodes.FetchFailed))
	rq.ErrorIs(err, context.Canceled)
}

func TestFetchCountAsIntegralFloat(t *testing.T) {
	rq := require.New(t)

	client := newTestClient(t, http.StatusOK, `[{"spc_common":"ginkgo","health":"Fair","count_tree_id":"12.0"}]`, nil)

	records, err := client.Fetch(context.Background(), value.BoroughQueens, value.ModeTotalHealth)
	rq.NoError(err)
	rq.Equal(int64(12), records[0].Count)
}
