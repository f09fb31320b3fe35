package logx

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

var Error = tint.Err //nolint:gochecknoglobals

func Stringer(name string, value fmt.Stringer) slog.Attr {
	return slog.String(name, value.String())
}

// NewLogger builds the process logger. Text format goes through tint, json
// format is meant for log collectors.
func NewLogger(w io.Writer, format, level string) (*slog.Logger, error) {
	var lvl slog.Level

	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("level.UnmarshalText: %w", err)
	}

	switch strings.ToLower(format) {
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})), nil
	case FormatText, "":
		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:      lvl,
			TimeFormat: time.TimeOnly,
		})), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
