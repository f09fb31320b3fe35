package logx_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"treehealth/pkg/logx"
)

func TestNewLogger(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name     string
		format   string
		level    string
		wantErr  bool
		contains string
	}{
		{name: "Json", format: logx.FormatJSON, level: "info", contains: `"msg":"hello"`},
		{name: "Text", format: logx.FormatText, level: "debug", contains: "hello"},
		{name: "Empty format falls back to text", format: "", level: "warn"},
		{name: "Unknown format", format: "xml", level: "info", wantErr: true},
		{name: "Unknown level", format: logx.FormatJSON, level: "loud", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			var buf bytes.Buffer

			logger, err := logx.NewLogger(&buf, tc.format, tc.level)
			if tc.wantErr {
				rq.Error(err)

				return
			}

			rq.NoError(err)

			logger.Info("hello")

			rq.Contains(buf.String(), tc.contains)
		})
	}
}
