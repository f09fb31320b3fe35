package domain_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"treehealth/internal/domain"
	"treehealth/pkg/errcodes"
)

func TestAppError(t *testing.T) {
	rq := require.New(t)

	cause := fmt.Errorf("httpClient.Do: %w", context.DeadlineExceeded)
	err := fmt.Errorf("fetcher.Fetch: %w", domain.WrapError(cause, errcodes.FetchFailed, "tree census request failed"))

	rq.True(domain.IsAppError(err))
	rq.True(domain.IsFetchError(err))
	rq.False(domain.IsEmptyResult(err))
	rq.ErrorIs(err, context.DeadlineExceeded)
	rq.EqualError(err, "fetcher.Fetch: tree census request failed: httpClient.Do: context deadline exceeded")

	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.FetchFailed, code)

	var appErr *domain.AppError
	rq.ErrorAs(err, &appErr)
	rq.Equal("tree census request failed", appErr.Description())
	rq.Equal(errcodes.FetchFailed, appErr.ErrorCode())
}

func TestErrorClassification(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name  string
		err   error
		fetch bool
		empty bool
	}{
		{name: "Malformed data is a fetch error", err: domain.NewError(errcodes.MalformedData, "missing column"), fetch: true},
		{name: "Empty result", err: domain.NewError(errcodes.EmptyResult, "no rows"), empty: true},
		{name: "Plain error", err: errors.New("boom")},
		{name: "Nil", err: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			rq.Equal(tc.fetch, domain.IsFetchError(tc.err))
			rq.Equal(tc.empty, domain.IsEmptyResult(tc.err))
		})
	}
}
