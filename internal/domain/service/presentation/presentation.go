// Package presentation превращает агрегированную таблицу в описание
// горизонтальной столбчатой диаграммы, не зависящее от рендерера.
package presentation

import (
	"fmt"

	"github.com/samber/lo"

	"treehealth/internal/domain"
	"treehealth/internal/domain/entity"
	"treehealth/internal/domain/value"
	"treehealth/pkg/errcodes"
)

type ChartKind string

const KindHorizontalBar ChartKind = "horizontalBar"

const (
	Title     = "Health by Species"
	AxisTop   = "top"
	FieldY    = "species"
	chartWide = 1500

	// Высота растет с числом видов, чтобы подписи столбцов читались:
	// около 150 видов дают 2500px для составных и 5500px для групп.
	heightMargin      = 100
	heightMin         = 400
	perSpeciesStacked = 16
	perSpeciesGrouped = 36

	proportionMax = 1
	scoreMax      = 100
)

type Size struct {
	Height int
	Width  int
}

type Point struct {
	Category string
	Value    float64
}

// Series один цвет графика: статус здоровья для составных столбцов,
// категория ухода для групп.
type Series struct {
	Name   string
	Points []Point
}

type ChartSpec struct {
	Kind       ChartKind
	Title      string
	XField     string
	YField     string
	ColorField string
	Grouped    bool
	XAxisSide  string
	XMax       float64
	Size       Size
	Categories []string
	Series     []Series
}

// ToChartSpec описывает график для результата агрегации. Категории идут в
// порядке строк таблицы.
func ToChartSpec(table entity.AggregatedTable, mode value.AnalysisMode) (ChartSpec, error) {
	switch mode {
	case value.ModeTotalHealth:
		if len(table.Proportions) == 0 {
			return ChartSpec{}, emptyResult(mode)
		}

		return proportionChart(table.Proportions), nil
	case value.ModeStewardshipComparison:
		if len(table.Scores) == 0 {
			return ChartSpec{}, emptyResult(mode)
		}

		return scoreChart(table.Scores), nil
	default:
		return ChartSpec{}, domain.NewError(errcodes.InvalidAnalysisMode, fmt.Sprintf("unknown analysis mode %q", mode))
	}
}

func emptyResult(mode value.AnalysisMode) error {
	return domain.NewError(errcodes.EmptyResult, fmt.Sprintf("no trees left to chart for %s", mode))
}

func proportionChart(rows []entity.ProportionRow) ChartSpec {
	categories := lo.Uniq(lo.Map(rows, func(r entity.ProportionRow, _ int) string {
		return r.Species
	}))

	byHealth := lo.GroupBy(rows, func(r entity.ProportionRow) value.HealthStatus {
		return r.Health
	})

	series := make([]Series, 0, len(byHealth))

	for _, h := range value.HealthStatuses() {
		group, ok := byHealth[h]
		if !ok {
			continue
		}

		series = append(series, Series{
			Name: h.String(),
			Points: lo.Map(group, func(r entity.ProportionRow, _ int) Point {
				return Point{Category: r.Species, Value: r.Proportion}
			}),
		})
	}

	return ChartSpec{
		Kind:       KindHorizontalBar,
		Title:      Title,
		XField:     "proportion",
		YField:     FieldY,
		ColorField: "health",
		XAxisSide:  AxisTop,
		XMax:       proportionMax,
		Size:       chartSize(len(categories), perSpeciesStacked),
		Categories: categories,
		Series:     series,
	}
}

func scoreChart(rows []entity.ScoreRow) ChartSpec {
	categories := lo.Uniq(lo.Map(rows, func(r entity.ScoreRow, _ int) string {
		return r.Species
	}))

	bySteward := lo.GroupBy(rows, func(r entity.ScoreRow) value.StewardCategory {
		return r.Steward
	})

	series := make([]Series, 0, len(bySteward))

	for _, c := range value.StewardCategories() {
		group, ok := bySteward[c]
		if !ok {
			continue
		}

		series = append(series, Series{
			Name: c.String(),
			Points: lo.Map(group, func(r entity.ScoreRow, _ int) Point {
				return Point{Category: r.Species, Value: r.HealthScore}
			}),
		})
	}

	return ChartSpec{
		Kind:       KindHorizontalBar,
		Title:      Title,
		XField:     "healthScore",
		YField:     FieldY,
		ColorField: "steward",
		Grouped:    true,
		XAxisSide:  AxisTop,
		XMax:       scoreMax,
		Size:       chartSize(len(categories), perSpeciesGrouped),
		Categories: categories,
		Series:     series,
	}
}

func chartSize(species, perSpecies int) Size {
	return Size{
		Height: max(heightMin, heightMargin+species*perSpecies),
		Width:  chartWide,
	}
}
