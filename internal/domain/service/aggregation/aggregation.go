// Package aggregation превращает сгруппированные количества из переписи в
// таблицы дашборда: доли статусов здоровья по видам и оценки здоровья по
// категориям ухода.
//
// Строки с пустым или неизвестным категориальным значением отбрасываются до
// любого суммирования и не попадают в знаменатель других строк.
package aggregation

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/samber/lo"

	"treehealth/internal/domain/entity"
	"treehealth/internal/domain/value"
)

// scoreScale переводит средний код здоровья из [0, 1] в оценку 0..100.
const scoreScale = 100

// Aggregate запускает расчет, соответствующий mode.
func Aggregate(records []entity.RawRecord, mode value.AnalysisMode) (entity.AggregatedTable, error) {
	switch mode {
	case value.ModeTotalHealth:
		return entity.AggregatedTable{Proportions: ComputeProportions(records)}, nil
	case value.ModeStewardshipComparison:
		return entity.AggregatedTable{Scores: ComputeStewardScores(records)}, nil
	default:
		return entity.AggregatedTable{}, fmt.Errorf("%w: %q", value.ErrUnknownAnalysisMode, mode)
	}
}

// ComputeProportions возвращает для каждой записи ее долю от суммы по виду.
// Виды с нулевой суммой строк не дают. Сортировка: вид по убыванию, затем
// статус от Good к Poor.
func ComputeProportions(records []entity.RawRecord) []entity.ProportionRow {
	valid := lo.Filter(records, func(r entity.RawRecord, _ int) bool {
		return r.Species != "" && r.Health.Valid() && r.Count >= 0
	})

	totals := make(map[string]int64, len(valid))
	for _, r := range valid {
		totals[r.Species] += r.Count
	}

	rows := make([]entity.ProportionRow, 0, len(valid))

	for _, r := range valid {
		total := totals[r.Species]
		if total == 0 {
			continue
		}

		rows = append(rows, entity.ProportionRow{
			Species:    r.Species,
			Health:     r.Health,
			Proportion: float64(r.Count) / float64(total),
		})
	}

	slices.SortStableFunc(rows, func(a, b entity.ProportionRow) int {
		if c := cmp.Compare(b.Species, a.Species); c != 0 {
			return c
		}

		return cmp.Compare(b.Health.Ordinal(), a.Health.Ordinal())
	})

	return rows
}

type scoreKey struct {
	species string
	steward value.StewardCategory
}

type scoreSum struct {
	weighted float64
	count    int64
}

// ComputeStewardScores усредняет код здоровья в каждой группе (вид, уход) с
// весом по количеству деревьев и масштабирует в 0..100. Группы без деревьев
// отбрасываются. Сортировка: вид по убыванию, затем категория ухода от None
// к 4orMore.
func ComputeStewardScores(records []entity.RawRecord) []entity.ScoreRow {
	sums := make(map[scoreKey]scoreSum)

	for _, r := range records {
		if r.Species == "" || !r.Steward.Valid() || r.Count < 0 {
			continue
		}

		code, ok := r.Health.Code()
		if !ok {
			continue
		}

		key := scoreKey{species: r.Species, steward: r.Steward}
		sum := sums[key]
		sum.weighted += code * float64(r.Count)
		sum.count += r.Count
		sums[key] = sum
	}

	rows := make([]entity.ScoreRow, 0, len(sums))

	for key, sum := range sums {
		if sum.count == 0 {
			continue
		}

		rows = append(rows, entity.ScoreRow{
			Species:     key.species,
			Steward:     key.steward,
			HealthScore: scoreScale * sum.weighted / float64(sum.count),
		})
	}

	slices.SortFunc(rows, func(a, b entity.ScoreRow) int {
		if c := cmp.Compare(b.Species, a.Species); c != 0 {
			return c
		}

		return cmp.Compare(a.Steward.Ordinal(), b.Steward.Ordinal())
	})

	return rows
}
