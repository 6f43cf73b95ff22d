package logger

import (
	"errors"
	"os"
	"path/filepath"
	"ranking-dashboard/internal/config"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "dashboard.log")
	cfg := &config.Config{LogFile: path, LogLevel: "debug", APIBaseURL: "http://localhost:8000/api"}

	logger, closer, err := New(cfg)
	require.NoError(t, err)
	defer closer.Close()
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())

	logger.Debug().Str("k", "v").Msg("hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"configuration loaded"`)
	assert.Contains(t, string(data), `"api_base_url":"http://localhost:8000/api"`)
	assert.Contains(t, string(data), `"message":"hello"`)
}

func TestNewFallsBackToInfo(t *testing.T) {
	cfg := &config.Config{LogFile: filepath.Join(t.TempDir(), "d.log"), LogLevel: "chatty"}

	logger, closer, err := New(cfg)
	require.NoError(t, err)
	defer closer.Close()
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestNewCloserReleasesFile(t *testing.T) {
	cfg := &config.Config{LogFile: filepath.Join(t.TempDir(), "d.log"), LogLevel: "info"}

	_, closer, err := New(cfg)
	require.NoError(t, err)

	require.NoError(t, closer.Close())
	assert.True(t, errors.Is(closer.Close(), os.ErrClosed))
}
