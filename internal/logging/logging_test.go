package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "flowshow.log")

	logger, closer, err := New(Options{Level: "debug", Format: "json", File: path})
	require.NoError(t, err)

	logger.Warn().Str("tag", "12").Msg("Invalid tag string provided")
	logger.Debug().Msg("trace me")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"tag":"12"`)
	assert.Contains(t, out, "trace me")
}

func TestNew_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flowshow.log")

	logger, closer, err := New(Options{Level: "warn", File: path})
	require.NoError(t, err)
	logger.Info().Msg("hidden")
	logger.Error().Msg("shown")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(data), "hidden"))
	assert.Contains(t, string(data), "shown")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, closer, err := New(Options{Level: "loud"})
	assert.Error(t, err)
	assert.NotNil(t, closer)
}
