package render

import (
	"treehealth/internal/domain/value"
)

const fallbackColor = "7f7f7f"

//nolint:gochecknoglobals
var palette = map[string]string{
	value.HealthPoor.String():       "d62728",
	value.HealthFair.String():       "ff7f0e",
	value.HealthGood.String():       "2ca02c",
	value.StewardNone.String():      "9ecae1",
	value.StewardOneOrTwo.String():  "6baed6",
	value.StewardThreeFour.String(): "3182bd",
	value.StewardFourMore.String():  "08519c",
}

// colorHex возвращает цвет серии без ведущего '#'.
func colorHex(series string) string {
	if c, ok := palette[series]; ok {
		return c
	}

	return fallbackColor
}
