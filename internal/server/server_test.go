package server_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"treehealth/internal/domain"
	"treehealth/internal/domain/entity"
	"treehealth/internal/domain/service/dashboard"
	"treehealth/internal/domain/value"
	"treehealth/internal/server"
	"treehealth/pkg/errcodes"
	"treehealth/pkg/middlewarex"
	"treehealth/pkg/rest"
	"treehealth/pkg/tests"
)

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	SupportID string `json:"supportId"`
}

type fetchFunc func(ctx context.Context, borough value.Borough, mode value.AnalysisMode) ([]entity.RawRecord, error)

func censusFetch(_ context.Context, borough value.Borough, _ value.AnalysisMode) ([]entity.RawRecord, error) {
	if borough == value.BoroughStatenIsland {
		return []entity.RawRecord{}, nil
	}

	return []entity.RawRecord{
		{Species: "pin oak", Steward: value.StewardNone, Health: value.HealthGood, Count: 8},
		{Species: "pin oak", Steward: value.StewardOneOrTwo, Health: value.HealthPoor, Count: 2},
		{Species: "ginkgo", Steward: value.StewardNone, Health: value.HealthFair, Count: 5},
	}, nil
}

func newTestServer(t *testing.T, fetch fetchFunc) (string, *server.SessionStore) {
	t.Helper()

	pipeline := dashboard.NewPipeline(&dashboard.TreeCountFetcherMock{FetchFunc: fetch})
	sessions := server.NewSessionStore(pipeline, server.SessionOptions{TTL: time.Hour})
	srv := server.NewServer(server.NewDashboardServer(pipeline, sessions))

	r := chi.NewRouter()
	r.Use(middlewarex.TraceID, middlewarex.Recovery)
	srv.RegisterRoutes(r)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)

	return ts.URL, sessions
}

func TestIndex(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	baseURL, sessions := newTestServer(t, censusFetch)
	client := tests.NewAPIClient(baseURL, nil)

	resp, body, err := client.GetRaw(ctx, "/")
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Contains(resp.Header.Get("Content-Type"), "text/html")

	page := string(body)
	rq.Contains(page, "<h1>The Health of Trees in NYC</h1>")
	rq.Contains(page, `value="Queens" checked`)
	rq.Contains(page, `value="Total Health Status" checked`)
	rq.Contains(page, `value="Staten Island"`)

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == server.SessionCookie {
			cookie = c
		}
	}

	rq.NotNil(cookie)
	rq.True(cookie.HttpOnly)
	rq.Equal(1, sessions.Len())
}

func TestSessionFlow(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	baseURL, sessions := newTestServer(t, censusFetch)
	client, err := tests.NewBrowserAPIClient(baseURL)
	rq.NoError(err)

	var view rest.ChartView

	resp, err := client.Get(ctx, "/v1/session/chart", nil, &view, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal(uint64(1), view.Seq)
	rq.Equal("Queens", view.Borough)
	rq.Equal("Total Health Status", view.Mode)
	rq.Nil(view.NoData)
	rq.NotNil(view.Chart)
	rq.Equal([]string{"pin oak", "ginkgo"}, view.Chart.Categories)
	rq.Equal("top", view.Chart.XAxisSide)
	rq.NotEmpty(view.VegaLite)

	resp, err = client.Post(ctx, "/v1/session/selection", nil, rest.Selection{Mode: "Stewardship Comparison"}, &view, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal(uint64(2), view.Seq)
	rq.Equal("Stewardship Comparison", view.Mode)
	rq.True(view.Chart.Grouped)

	resp, err = client.PostJSON(ctx, "/v1/session/selection", nil, `{"borough":"Bronx"}`, &view, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal(uint64(3), view.Seq)
	rq.Equal("Bronx", view.Borough)
	rq.Equal("Stewardship Comparison", view.Mode)

	var again rest.ChartView

	_, err = client.Get(ctx, "/v1/session/chart", nil, &again, nil)
	rq.NoError(err)
	rq.Equal(view.Seq, again.Seq)
	rq.Equal("Bronx", again.Borough)

	rq.Equal(1, sessions.Len())
}

func TestSessionsAreIndependent(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	baseURL, sessions := newTestServer(t, censusFetch)

	first, err := tests.NewBrowserAPIClient(baseURL)
	rq.NoError(err)
	second, err := tests.NewBrowserAPIClient(baseURL)
	rq.NoError(err)

	var view rest.ChartView

	_, err = first.Post(ctx, "/v1/session/selection", nil, rest.Selection{Borough: "Manhattan"}, &view, nil)
	rq.NoError(err)
	rq.Equal("Manhattan", view.Borough)

	_, err = second.Get(ctx, "/v1/session/chart", nil, &view, nil)
	rq.NoError(err)
	rq.Equal("Queens", view.Borough)

	rq.Equal(2, sessions.Len())
}

func TestSessionSelectionInvalid(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	baseURL, _ := newTestServer(t, censusFetch)
	client, err := tests.NewBrowserAPIClient(baseURL)
	rq.NoError(err)

	testCases := []struct {
		name    string
		body    string
		code    string
		message string
	}{
		{name: "Unknown borough", body: `{"borough":"Hoboken"}`, code: "InvalidBorough", message: `Unknown borough "Hoboken"`},
		{name: "Unknown mode", body: `{"mode":"Heatmap"}`, code: "InvalidAnalysisMode", message: `Unknown analysis mode "Heatmap"`},
		{name: "Unknown mode with valid borough", body: `{"borough":"Bronx","mode":"Heatmap"}`, code: "InvalidAnalysisMode", message: "Heatmap"},
		{name: "Too long", body: `{"borough":"` + strings.Repeat("Q", 65) + `"}`, code: "ValidationError", message: "borough"},
		{name: "Broken JSON", body: `{"borough":`, code: "ValidationError", message: "Invalid JSON"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			var errResp errorResponse

			resp, err := client.PostJSON(ctx, "/v1/session/selection", nil, tc.body, nil, &errResp)
			rq.NoError(err)
			rq.Equal(http.StatusBadRequest, resp.StatusCode)
			rq.Equal(tc.code, errResp.Code)
			rq.Contains(errResp.Message, tc.message)
			rq.NotEmpty(errResp.SupportID)
		})
	}

	var view rest.ChartView

	_, err = client.Get(ctx, "/v1/session/chart", nil, &view, nil)
	rq.NoError(err)
	rq.Equal("Queens", view.Borough)
}

func TestSessionSelectionAcceptsQueryForms(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	baseURL, _ := newTestServer(t, censusFetch)
	client, err := tests.NewBrowserAPIClient(baseURL)
	rq.NoError(err)

	var view rest.ChartView

	resp, err := client.PostJSON(ctx, "/v1/session/selection", nil, `{"borough":"brooklyn","mode":"stewardship"}`, &view, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal("Brooklyn", view.Borough)
	rq.Equal("Stewardship Comparison", view.Mode)
	rq.Nil(view.NoData)

	var chart rest.Chart

	resp, err = client.Get(ctx, "/v1/chart?borough=brooklyn&mode=stewardship", nil, &chart, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.True(chart.Grouped)
}

func TestSessionChartNoData(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	baseURL, _ := newTestServer(t, func(context.Context, value.Borough, value.AnalysisMode) ([]entity.RawRecord, error) {
		return nil, domain.WrapError(errors.New("dial tcp: i/o timeout"), errcodes.FetchFailed, "Tree census request failed")
	})
	client, err := tests.NewBrowserAPIClient(baseURL)
	rq.NoError(err)

	var view rest.ChartView

	resp, err := client.Get(ctx, "/v1/session/chart", nil, &view, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Nil(view.Chart)
	rq.Nil(view.VegaLite)
	rq.Equal(&rest.Error{Code: "FetchFailed", Message: "Tree census request failed"}, view.NoData)
}

func TestStatelessChart(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	baseURL, sessions := newTestServer(t, censusFetch)
	client := tests.NewAPIClient(baseURL, nil)

	var chart rest.Chart

	resp, err := client.Get(ctx, "/v1/chart?borough=Bronx&mode=stewardship", nil, &chart, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.True(chart.Grouped)
	rq.Equal("healthScore", chart.XField)
	rq.InDelta(100.0, chart.XMax, 0)
	rq.Equal(1500, chart.Width)

	resp, err = client.Get(ctx, "/v1/chart", nil, &chart, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.False(chart.Grouped)
	rq.Equal("proportion", chart.XField)

	var doc map[string]any

	resp, err = client.Get(ctx, "/v1/chart.vl.json?borough=Queens", nil, &doc, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal("https://vega.github.io/schema/vega-lite/v5.json", doc["$schema"])

	resp, body, err := client.GetRaw(ctx, "/v1/chart.png?borough=Brooklyn&mode=Total%20Health%20Status")
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal("image/png", resp.Header.Get("Content-Type"))
	rq.True(bytes.HasPrefix(body, []byte("\x89PNG")))

	rq.Zero(sessions.Len())
}

func TestStatelessChartErrors(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	failing := func(_ context.Context, borough value.Borough, mode value.AnalysisMode) ([]entity.RawRecord, error) {
		if borough == value.BoroughBrooklyn {
			return nil, domain.NewError(errcodes.MalformedData, "Tree census returned unexpected data")
		}

		return censusFetch(context.Background(), borough, mode)
	}

	baseURL, _ := newTestServer(t, failing)
	client := tests.NewAPIClient(baseURL, nil)

	testCases := []struct {
		name       string
		endpoint   string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "Unknown borough",
			endpoint:   "/v1/chart?borough=Hoboken",
			wantStatus: http.StatusBadRequest,
			wantCode:   errcodes.InvalidBorough.String(),
		},
		{
			name:       "Unknown mode",
			endpoint:   "/v1/chart.vl.json?mode=pie",
			wantStatus: http.StatusBadRequest,
			wantCode:   errcodes.InvalidAnalysisMode.String(),
		},
		{
			name:       "Nothing to chart",
			endpoint:   "/v1/chart?borough=Staten%20Island",
			wantStatus: http.StatusNotFound,
			wantCode:   errcodes.EmptyResult.String(),
		},
		{
			name:       "Upstream broken",
			endpoint:   "/v1/chart.png?borough=Brooklyn",
			wantStatus: http.StatusBadGateway,
			wantCode:   errcodes.MalformedData.String(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			var errResp errorResponse

			resp, err := client.Get(ctx, tc.endpoint, nil, nil, &errResp)
			rq.NoError(err)
			rq.Equal(tc.wantStatus, resp.StatusCode)
			rq.Equal(tc.wantCode, errResp.Code)
			rq.NotEmpty(errResp.Message)
		})
	}
}

func TestOptions(t *testing.T) {
	rq := require.New(t)

	baseURL, _ := newTestServer(t, censusFetch)
	client := tests.NewAPIClient(baseURL, nil)

	var options rest.Options

	_, err := client.Get(context.Background(), "/v1/options", nil, &options, nil)
	rq.NoError(err)
	rq.Equal(rest.Options{
		Boroughs:       []string{"Queens", "Bronx", "Brooklyn", "Manhattan", "Staten Island"},
		Modes:          []string{"Total Health Status", "Stewardship Comparison"},
		DefaultBorough: "Queens",
		DefaultMode:    "Total Health Status",
	}, options)
}
