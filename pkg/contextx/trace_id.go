package contextx

import (
	"context"
	"fmt"

	"github.com/rs/xid"
)

// TraceID correlates log lines of one request, including the census calls
// made on its behalf.
type TraceID string

type contextKeyTraceID struct{}

func NewTraceID() TraceID {
	return TraceID(xid.New().String())
}

// ParseTraceID accepts only xid-formatted ids so that clients cannot inject
// arbitrary text into log lines.
func ParseTraceID(s string) (TraceID, error) {
	id, err := xid.FromString(s)
	if err != nil {
		return "", fmt.Errorf("xid.FromString: %w", err)
	}

	return TraceID(id.String()), nil
}

func (t TraceID) String() string {
	return string(t)
}

func WithTraceID(ctx context.Context, traceID TraceID) context.Context {
	return context.WithValue(ctx, contextKeyTraceID{}, traceID)
}

func TraceIDFromContext(ctx context.Context) (TraceID, error) {
	traceID, ok := ctx.Value(contextKeyTraceID{}).(TraceID)
	if !ok {
		return "", fmt.Errorf("trace id: %w", ErrNoValue)
	}

	return traceID, nil
}
