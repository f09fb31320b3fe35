package entity

import "treehealth/internal/domain/value"

// RawRecord одна строка сгруппированного количества из ответа переписи.
// Пустые Species, Steward или Health означают, что значения не было.
type RawRecord struct {
	Species string
	Steward value.StewardCategory
	Health  value.HealthStatus
	Count   int64
}

// ProportionRow доля деревьев вида в одном статусе здоровья.
type ProportionRow struct {
	Species    string
	Health     value.HealthStatus
	Proportion float64
}

// ScoreRow оценка здоровья вида 0..100 внутри одной категории ухода.
type ScoreRow struct {
	Species     string
	Steward     value.StewardCategory
	HealthScore float64
}

// AggregatedTable результат ровно одного из двух расчетов.
type AggregatedTable struct {
	Proportions []ProportionRow
	Scores      []ScoreRow
}

func (t AggregatedTable) Len() int {
	return len(t.Proportions) + len(t.Scores)
}
