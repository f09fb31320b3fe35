package value

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var ErrUnknownBorough = errors.New("unknown borough")

type Borough string

const (
	BoroughQueens       Borough = "Queens"
	BoroughBronx        Borough = "Bronx"
	BoroughBrooklyn     Borough = "Brooklyn"
	BoroughManhattan    Borough = "Manhattan"
	BoroughStatenIsland Borough = "Staten Island"
)

// Порядок радиокнопок.
var boroughs = []Borough{ //nolint:gochecknoglobals
	BoroughQueens,
	BoroughBronx,
	BoroughBrooklyn,
	BoroughManhattan,
	BoroughStatenIsland,
}

func Boroughs() []Borough {
	return slices.Clone(boroughs)
}

// ParseBorough принимает отображаемое название без учета регистра.
func ParseBorough(s string) (Borough, error) {
	for _, b := range boroughs {
		if strings.EqualFold(strings.TrimSpace(s), string(b)) {
			return b, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownBorough, s)
}

func (b Borough) String() string {
	return string(b)
}
