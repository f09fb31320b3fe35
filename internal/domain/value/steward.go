package value

import (
	"errors"
	"fmt"
	"slices"
)

var ErrUnknownStewardCategory = errors.New("unknown steward category")

// StewardCategory группа по числу признаков ухода, замеченных у дерева.
type StewardCategory string

const (
	StewardNone      StewardCategory = "None"
	StewardOneOrTwo  StewardCategory = "1or2"
	StewardThreeFour StewardCategory = "3or4"
	StewardFourMore  StewardCategory = "4orMore"
)

var stewardCategories = []StewardCategory{ //nolint:gochecknoglobals
	StewardNone,
	StewardOneOrTwo,
	StewardThreeFour,
	StewardFourMore,
}

func StewardCategories() []StewardCategory {
	return slices.Clone(stewardCategories)
}

func ParseStewardCategory(s string) (StewardCategory, error) {
	c := StewardCategory(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStewardCategory, s)
	}

	return c, nil
}

func (c StewardCategory) String() string {
	return string(c)
}

func (c StewardCategory) Valid() bool {
	return c.Ordinal() >= 0
}

func (c StewardCategory) Ordinal() int {
	return slices.Index(stewardCategories, c)
}
