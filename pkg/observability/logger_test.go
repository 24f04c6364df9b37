package observability

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Run("production uses JSON output", func(t *testing.T) {
		var buf strings.Builder
		logger, err := NewLogger("info", true, &buf)
		require.NoError(t, err)

		logger.WithField("component", "test").Info("started")

		assert.Contains(t, buf.String(), `"component":"test"`)
		assert.Contains(t, buf.String(), `"msg":"started"`)
	})

	t.Run("debug uses text output", func(t *testing.T) {
		var buf strings.Builder
		logger, err := NewLogger("debug", false, &buf)
		require.NoError(t, err)

		logger.Debug("verbose detail")

		assert.Contains(t, buf.String(), "verbose detail")
		assert.NotContains(t, buf.String(), `"msg"`)
	})

	t.Run("respects the level threshold", func(t *testing.T) {
		var buf strings.Builder
		logger, err := NewLogger("warn", true, &buf)
		require.NoError(t, err)

		logger.Info("suppressed")
		logger.Warn("reported")

		assert.NotContains(t, buf.String(), "suppressed")
		assert.Contains(t, buf.String(), "reported")
	})

	t.Run("rejects unknown levels", func(t *testing.T) {
		_, err := NewLogger("loud", true, nil)
		assert.Error(t, err)
	})

	t.Run("defaults to info level", func(t *testing.T) {
		logger, err := NewLogger("info", true, nil)
		require.NoError(t, err)
		assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	})
}
