package log

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "file_with_changes",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileReport(context.Background(), FileReport{
					Path:        "config.inc",
					Transformed: 3,
				})
			},
			wantLogs: []string{"✓", "config.inc", "3 changes"},
		},
		{
			name: "file_without_changes",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileReport(context.Background(), FileReport{
					Path:            "plain.inc",
					AlreadyMigrated: 2,
				})
			},
			wantLogs: []string{"-", "plain.inc", "no changes needed"},
		},
		{
			name: "file_with_skips",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileReport(context.Background(), FileReport{
					Path:        "odd.inc",
					Transformed: 1,
					Skipped:     2,
				})
			},
			wantLogs: []string{"✓", "odd.inc", "1 changes", "(2 skipped)"},
		},
		{
			name: "file_with_error",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileReport(context.Background(), FileReport{
					Path: "bad.inc",
					Err:  errors.New("bad.inc is not valid UTF-8 text"),
				})
			},
			wantLogs: []string{"✗", "bad.inc", "not valid UTF-8"},
		},
		{
			name: "header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("transforming src -> result")
			},
			wantLogs: []string{"phpcfgenv", "transforming src -> result"},
		},
		{
			name: "success",
			op: func(t *testing.T, logger *Logger) {
				logger.Successf("%d transformations", 7)
			},
			wantLogs: []string{"✅", "7 transformations"},
		},
		{
			name: "warning",
			op: func(t *testing.T, logger *Logger) {
				logger.Warning("no .inc files found")
			},
			wantLogs: []string{"⚠️", "no .inc files found"},
		},
		{
			name: "error",
			op: func(t *testing.T, logger *Logger) {
				logger.Errorf("source directory not found: %s", "missing")
			},
			wantLogs: []string{"❌", "source directory not found: missing"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(&buf, zerolog.InfoLevel)

			tt.op(t, logger)

			out := buf.String()
			for _, want := range tt.wantLogs {
				assert.True(t, strings.Contains(out, want), "output %q should contain %q", out, want)
			}
		})
	}
}

func TestLoggerContext(t *testing.T) {
	logger := New(&bytes.Buffer{}, zerolog.InfoLevel)
	ctx := NewContext(context.Background(), logger)

	got := FromContext(ctx)
	require.Same(t, logger, got)

	assert.Panics(t, func() {
		FromContext(context.Background())
	})
}
