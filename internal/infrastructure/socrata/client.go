// Package socrata читает сгруппированные количества деревьев из SODA API NYC Open Data.
package socrata

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"

	"treehealth/internal/domain"
	"treehealth/internal/domain/entity"
	"treehealth/internal/domain/value"
	"treehealth/pkg/errcodes"
	"treehealth/pkg/logx"
)

const (
	DefaultBaseURL  = "https://data.cityofnewyork.us/resource"
	DefaultDataset  = "uvpi-gqnh"
	DefaultRowLimit = 2000

	defaultMaxBodySize = 16 << 20
	errorBodyPreview   = 512

	ColumnSpecies = "spc_common"
	ColumnHealth  = "health"
	ColumnSteward = "steward"
	ColumnCount   = "count_tree_id"
	ColumnBorough = "boroname"
	ColumnStatus  = "status"

	countExpr   = "count(tree_id)"
	statusAlive = "Alive"
)

var (
	json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

	errNotArray       = errors.New("body is not a JSON array")
	errMissingColumn  = errors.New("column missing from every row")
	errBadCount       = errors.New("count is not an integer")
	errBodyTooLarge   = errors.New("body exceeds size limit")
	errUnexpectedCode = errors.New("unexpected status code")
)

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

func WithDataset(dataset string) Option {
	return func(c *Client) {
		c.dataset = dataset
	}
}

func WithRowLimit(limit int) Option {
	return func(c *Client) {
		c.rowLimit = limit
	}
}

func WithMaxBodySize(size int64) Option {
	return func(c *Client) {
		c.maxBodySize = size
	}
}

// WithAppToken передает app token SODA, который влияет только на лимиты
// запросов. Это не учетные данные.
func WithAppToken(token string) Option {
	return func(c *Client) {
		c.appToken = token
	}
}

type Client struct {
	httpClient  *http.Client
	baseURL     string
	dataset     string
	rowLimit    int
	maxBodySize int64
	appToken    string
}

func NewClient(httpClient *http.Client, opts ...Option) *Client {
	c := &Client{
		httpClient:  httpClient,
		baseURL:     DefaultBaseURL,
		dataset:     DefaultDataset,
		rowLimit:    DefaultRowLimit,
		maxBodySize: defaultMaxBodySize,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// QueryFor строит запрос количества живых деревьев района с группировкой.
func QueryFor(borough value.Borough, mode value.AnalysisMode, limit int) (Query, error) {
	var columns []string

	switch mode {
	case value.ModeTotalHealth:
		columns = []string{ColumnSpecies, ColumnHealth}
	case value.ModeStewardshipComparison:
		columns = []string{ColumnSpecies, ColumnSteward, ColumnHealth}
	default:
		return Query{}, domain.NewError(errcodes.InvalidAnalysisMode, fmt.Sprintf("unknown analysis mode %q", mode))
	}

	return Query{
		Select: append(slices.Clone(columns), countExpr),
		Where: []Condition{
			{Column: ColumnBorough, Value: borough.String()},
			{Column: ColumnStatus, Value: statusAlive},
		},
		Group: columns,
		Limit: limit,
	}, nil
}

// Fetch возвращает по записи на каждую группу из ответа. Неизвестные
// категориальные значения передаются как есть, их отбрасывает агрегация.
func (c *Client) Fetch(
	ctx context.Context,
	borough value.Borough,
	mode value.AnalysisMode,
) ([]entity.RawRecord, error) {
	query, err := QueryFor(borough, mode, c.rowLimit)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	records, err := c.fetch(ctx, query, mode)

	outcome := outcomeOK

	switch {
	case domain.HasCode(err, errcodes.MalformedData):
		outcome = outcomeMalformed
	case err != nil:
		outcome = outcomeFailed
	}

	fetchDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	if err != nil {
		return nil, err
	}

	logger(ctx).Debug(
		"tree counts fetched",
		slog.String(logx.FieldBorough, borough.String()),
		slog.String(logx.FieldMode, mode.String()),
		slog.Int(logx.FieldRows, len(records)),
	)

	return records, nil
}

func (c *Client) fetch(ctx context.Context, query Query, mode value.AnalysisMode) ([]entity.RawRecord, error) {
	endpoint, err := url.JoinPath(c.baseURL, c.dataset+".json")
	if err != nil {
		return nil, fmt.Errorf("url.JoinPath: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if c.appToken != "" {
		req.Header.Set("X-App-Token", c.appToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.FetchFailed, "Tree census request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		preview, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyPreview))

		return nil, domain.WrapError(
			fmt.Errorf("%w %d: %s", errUnexpectedCode, resp.StatusCode, bytes.TrimSpace(preview)),
			errcodes.FetchFailed,
			"Tree census request failed",
		)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize+1))
	if err != nil {
		return nil, domain.WrapError(err, errcodes.FetchFailed, "Tree census request failed")
	}

	if int64(len(body)) > c.maxBodySize {
		return nil, domain.WrapError(errBodyTooLarge, errcodes.FetchFailed, "Tree census request failed")
	}

	records, err := decodeRecords(ctx, body, mode)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.MalformedData, "Tree census returned unexpected data")
	}

	return records, nil
}

type row struct {
	Species *string `json:"spc_common"`
	Health  *string `json:"health"`
	Steward *string `json:"steward"`
	Count   *count  `json:"count_tree_id"`
}

// count принимает и строку (так SODA отдает агрегаты), и обычное JSON-число.
type count int64

func (c *count) UnmarshalJSON(b []byte) error {
	s := string(b)

	if len(b) > 0 && b[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("%w: %s", errBadCount, b)
		}

		s = unquoted
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		// float64(math.MaxInt64) округляется до 2^63, в int64 это уже не влезает
		if ferr != nil || f != math.Trunc(f) || math.Abs(f) >= float64(math.MaxInt64) {
			return fmt.Errorf("%w: %s", errBadCount, b)
		}

		n = int64(f)
	}

	*c = count(n)

	return nil
}

func requiredColumns(mode value.AnalysisMode) []string {
	if mode == value.ModeStewardshipComparison {
		return []string{ColumnSpecies, ColumnSteward, ColumnHealth, ColumnCount}
	}

	return []string{ColumnSpecies, ColumnHealth, ColumnCount}
}

func decodeRecords(ctx context.Context, body []byte, mode value.AnalysisMode) ([]entity.RawRecord, error) {
	if trimmed := bytes.TrimSpace(body); len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errNotArray
	}

	var rows []row
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	if len(rows) == 0 {
		return []entity.RawRecord{}, nil
	}

	for _, column := range requiredColumns(mode) {
		if !anyRowHas(rows, column) {
			return nil, fmt.Errorf("%w: %s", errMissingColumn, column)
		}
	}

	records := make([]entity.RawRecord, 0, len(rows))
	dropped := 0

	for _, r := range rows {
		if r.Count == nil {
			dropped++

			continue
		}

		records = append(records, entity.RawRecord{
			Species: deref(r.Species),
			Steward: value.StewardCategory(deref(r.Steward)),
			Health:  value.HealthStatus(deref(r.Health)),
			Count:   int64(*r.Count),
		})
	}

	if dropped > 0 {
		logger(ctx).Warn("rows without count dropped", slog.Int(logx.FieldRows, dropped))
	}

	return records, nil
}

func anyRowHas(rows []row, column string) bool {
	for _, r := range rows {
		var present bool

		switch column {
		case ColumnSpecies:
			present = r.Species != nil
		case ColumnHealth:
			present = r.Health != nil
		case ColumnSteward:
			present = r.Steward != nil
		case ColumnCount:
			present = r.Count != nil
		}

		if present {
			return true
		}
	}

	return false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
