package value

import (
	"errors"
	"fmt"
	"slices"
)

var ErrUnknownHealthStatus = errors.New("unknown health status")

// HealthStatus порядковое состояние дерева по данным переписи. Значения вне
// перечисления сохраняются как есть и считаются невалидными.
type HealthStatus string

const (
	HealthPoor HealthStatus = "Poor"
	HealthFair HealthStatus = "Fair"
	HealthGood HealthStatus = "Good"
)

var healthStatuses = []HealthStatus{HealthPoor, HealthFair, HealthGood} //nolint:gochecknoglobals

// HealthStatuses возвращает статусы по порядку, начиная с Poor.
func HealthStatuses() []HealthStatus {
	return slices.Clone(healthStatuses)
}

func ParseHealthStatus(s string) (HealthStatus, error) {
	h := HealthStatus(s)
	if !h.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownHealthStatus, s)
	}

	return h, nil
}

func (h HealthStatus) String() string {
	return string(h)
}

func (h HealthStatus) Valid() bool {
	return h.Ordinal() >= 0
}

// Ordinal позиция в Poor < Fair < Good или -1.
func (h HealthStatus) Ordinal() int {
	return slices.Index(healthStatuses, h)
}

// Code отображает статус на [0, 1] как ordinal / (n-1): Poor 0, Fair 0.5,
// Good 1. Взвешенное среднее кодов читается как "доля пути до Good".
func (h HealthStatus) Code() (float64, bool) {
	ordinal := h.Ordinal()
	if ordinal < 0 {
		return 0, false
	}

	return float64(ordinal) / float64(len(healthStatuses)-1), true
}
