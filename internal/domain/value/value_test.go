package value_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"treehealth/internal/domain/value"
)

func TestHealthStatusCode(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		status  value.HealthStatus
		ordinal int
		code    float64
		valid   bool
	}{
		{status: value.HealthPoor, ordinal: 0, code: 0, valid: true},
		{status: value.HealthFair, ordinal: 1, code: 0.5, valid: true},
		{status: value.HealthGood, ordinal: 2, code: 1, valid: true},
		{status: "Unknown", ordinal: -1, valid: false},
		{status: "good", ordinal: -1, valid: false},
		{status: "", ordinal: -1, valid: false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.status), func(*testing.T) {
			code, ok := tc.status.Code()

			rq.Equal(tc.valid, ok)
			rq.Equal(tc.valid, tc.status.Valid())
			rq.Equal(tc.ordinal, tc.status.Ordinal())
			rq.InDelta(tc.code, code, 1e-12)
		})
	}
}

func TestParseHealthStatus(t *testing.T) {
	rq := require.New(t)

	status, err := value.ParseHealthStatus("Fair")
	rq.NoError(err)
	rq.Equal(value.HealthFair, status)

	_, err = value.ParseHealthStatus("Dead")
	rq.ErrorIs(err, value.ErrUnknownHealthStatus)
}

func TestStewardCategoryOrdinal(t *testing.T) {
	rq := require.New(t)

	categories := value.StewardCategories()
	rq.Equal([]value.StewardCategory{"None", "1or2", "3or4", "4orMore"}, categories)

	for i, c := range categories {
		rq.Equal(i, c.Ordinal())
		rq.True(c.Valid())
	}

	rq.False(value.StewardCategory("5orMore").Valid())

	_, err := value.ParseStewardCategory("")
	rq.ErrorIs(err, value.ErrUnknownStewardCategory)

	// через возвращенный слайс нельзя поменять порядок перечисления
	categories[0] = "4orMore"
	rq.Equal(value.StewardNone, value.StewardCategories()[0])
}

func TestParseBorough(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		input   string
		want    value.Borough
		wantErr bool
	}{
		{input: "Queens", want: value.BoroughQueens},
		{input: "staten island", want: value.BoroughStatenIsland},
		{input: " Bronx ", want: value.BoroughBronx},
		{input: "Jersey City", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(*testing.T) {
			got, err := value.ParseBorough(tc.input)
			if tc.wantErr {
				rq.ErrorIs(err, value.ErrUnknownBorough)

				return
			}

			rq.NoError(err)
			rq.Equal(tc.want, got)
		})
	}
}

func TestParseAnalysisMode(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		input   string
		want    value.AnalysisMode
		wantErr bool
	}{
		{input: "Total Health Status", want: value.ModeTotalHealth},
		{input: "total-health", want: value.ModeTotalHealth},
		{input: "Stewardship Comparison", want: value.ModeStewardshipComparison},
		{input: "stewardship", want: value.ModeStewardshipComparison},
		{input: "heatmap", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(*testing.T) {
			got, err := value.ParseAnalysisMode(tc.input)
			if tc.wantErr {
				rq.ErrorIs(err, value.ErrUnknownAnalysisMode)

				return
			}

			rq.NoError(err)
			rq.Equal(tc.want, got)
			rq.NotEmpty(got.Slug())
		})
	}
}
