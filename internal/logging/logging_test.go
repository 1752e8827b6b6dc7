package logging_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinhmyung/GuildQuest-Group3/internal/logging"
)

func TestNewLogger(t *testing.T) {
	t.Run("JSON format emits one object per line", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewLogger(&buf, "info", "json")

		logger.Info().Str("realm_id", "R1").Msg("realm created")

		require.NotEmpty(t, buf.String())
		assert.Contains(t, buf.String(), `"message":"realm created"`)
		assert.Contains(t, buf.String(), `"realm_id":"R1"`)
	})

	t.Run("Console format writes readable lines", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewLogger(&buf, "info", "console")

		logger.Info().Msg("realm created")

		assert.Contains(t, buf.String(), "realm created")
		assert.NotContains(t, buf.String(), `"message"`)
	})

	t.Run("Level filters lower severities", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewLogger(&buf, "warn", "json")

		logger.Info().Msg("quiet")
		logger.Warn().Msg("loud")

		assert.NotContains(t, buf.String(), "quiet")
		assert.Contains(t, buf.String(), "loud")
	})

	t.Run("Unknown level falls back to info", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewLogger(&buf, "shouting", "json")

		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	})
}
