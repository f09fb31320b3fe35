// Package dashboard отвечает за состояние выбора и цепочку, которая
// превращает выбор в график: загрузка, агрегация, представление.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	"treehealth/internal/domain"
	"treehealth/internal/domain/entity"
	"treehealth/internal/domain/service/aggregation"
	"treehealth/internal/domain/service/presentation"
	"treehealth/internal/domain/value"
	"treehealth/pkg/logx"
)

//go:generate moq -rm -out tree_count_fetcher_mock.gen.go . treeCountFetcher:TreeCountFetcherMock
type treeCountFetcher interface {
	Fetch(ctx context.Context, borough value.Borough, mode value.AnalysisMode) ([]entity.RawRecord, error)
}

type Pipeline struct {
	fetcher treeCountFetcher
}

func NewPipeline(fetcher treeCountFetcher) *Pipeline {
	return &Pipeline{fetcher: fetcher}
}

// Build прогоняет всю цепочку для sel. Ошибки сохраняют доменный код:
// FetchFailed или MalformedData от загрузчика, EmptyResult, если после
// агрегации ничего не осталось.
func (p *Pipeline) Build(ctx context.Context, sel Selection) (presentation.ChartSpec, error) {
	spec, err := p.build(ctx, sel)

	outcome := outcomeOK

	switch {
	case err == nil:
	case domain.IsFetchError(err):
		outcome = outcomeFetchError
	case domain.IsEmptyResult(err):
		outcome = outcomeEmpty
	default:
		outcome = outcomeError
	}

	pipelineRuns.WithLabelValues(sel.Mode.Slug(), outcome).Inc()

	return spec, err
}

func (p *Pipeline) build(ctx context.Context, sel Selection) (presentation.ChartSpec, error) {
	records, err := p.fetcher.Fetch(ctx, sel.Borough, sel.Mode)
	if err != nil {
		return presentation.ChartSpec{}, fmt.Errorf("fetcher.Fetch: %w", err)
	}

	table, err := aggregation.Aggregate(records, sel.Mode)
	if err != nil {
		return presentation.ChartSpec{}, fmt.Errorf("aggregation.Aggregate: %w", err)
	}

	logger(ctx).Debug(
		"aggregated",
		slog.String(logx.FieldBorough, sel.Borough.String()),
		slog.String(logx.FieldMode, sel.Mode.String()),
		slog.Int(logx.FieldRows, table.Len()),
	)

	spec, err := presentation.ToChartSpec(table, sel.Mode)
	if err != nil {
		return presentation.ChartSpec{}, fmt.Errorf("presentation.ToChartSpec: %w", err)
	}

	return spec, nil
}
