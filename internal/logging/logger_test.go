package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/markuplint/internal/logging"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		level    string
		expected log.Level
	}{
		{"debug level", "debug", log.DebugLevel},
		{"info level", "info", log.InfoLevel},
		{"warn level", "warn", log.WarnLevel},
		{"warning level", "warning", log.WarnLevel},
		{"error level", "error", log.ErrorLevel},
		{"invalid defaults to info", "invalid", log.InfoLevel},
		{"empty defaults to info", "", log.InfoLevel},
		{"case insensitive DEBUG", "DEBUG", log.DebugLevel},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			logger := logging.New(testCase.level)
			require.NotNil(t, logger)
			assert.Equal(t, testCase.expected, logger.GetLevel())
		})
	}
}

func TestLevelFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, logging.LevelWarn, logging.LevelFor(false, false))
	assert.Equal(t, logging.LevelDebug, logging.LevelFor(true, false))
	assert.Equal(t, logging.LevelError, logging.LevelFor(false, true))
	assert.Equal(t, logging.LevelError, logging.LevelFor(true, true))
}

func TestSetDefault(t *testing.T) {
	// Not parallel because it modifies global state.
	original := logging.Default()
	defer logging.SetDefault(original)

	replacement := logging.New("error")
	logging.SetDefault(replacement)
	assert.Same(t, replacement, logging.Default())

	logging.SetLevel("debug")
	assert.Equal(t, log.DebugLevel, replacement.GetLevel())
}

func TestContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, "debug")

	ctx := logging.WithLogger(context.Background(), logger)
	assert.Same(t, logger, logging.FromContext(ctx))

	ctx = logging.With(ctx, logging.FieldFile, "index.html")
	logging.FromContext(ctx).Debug("linted", logging.FieldDiagnostics, 2)

	out := buf.String()
	assert.Contains(t, out, "linted")
	assert.Contains(t, out, "file=index.html")
	assert.Contains(t, out, "diagnostics=2")
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, logging.FromContext(context.Background()))
}
