package value

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var ErrUnknownAnalysisMode = errors.New("unknown analysis mode")

type AnalysisMode string

const (
	ModeTotalHealth           AnalysisMode = "Total Health Status"
	ModeStewardshipComparison AnalysisMode = "Stewardship Comparison"
)

var analysisModes = []AnalysisMode{ModeTotalHealth, ModeStewardshipComparison} //nolint:gochecknoglobals

//nolint:gochecknoglobals
var modeSlugs = map[AnalysisMode]string{
	ModeTotalHealth:           "total-health",
	ModeStewardshipComparison: "stewardship",
}

func AnalysisModes() []AnalysisMode {
	return slices.Clone(analysisModes)
}

// ParseAnalysisMode принимает отображаемое название или slug из URL.
func ParseAnalysisMode(s string) (AnalysisMode, error) {
	s = strings.TrimSpace(s)

	for _, m := range analysisModes {
		if strings.EqualFold(s, string(m)) || strings.EqualFold(s, modeSlugs[m]) {
			return m, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownAnalysisMode, s)
}

func (m AnalysisMode) String() string {
	return string(m)
}

func (m AnalysisMode) Slug() string {
	return modeSlugs[m]
}
