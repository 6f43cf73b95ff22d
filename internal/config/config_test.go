package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)
	for _, k := range []string{"RANKING_API_URL", "LOG_LEVEL", "LOG_FILE", "PROFILE_REGION", "SSH_ADDR", "SSH_HOST_KEY_PATH"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api", cfg.APIBaseURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "dashboard.log", cfg.LogFile)
	assert.Equal(t, "br", cfg.ProfileRegion)
	assert.False(t, cfg.ServeSSH())
	assert.False(t, cfg.DotEnv)
}

func TestLoadTrimsTrailingSlash(t *testing.T) {
	chdirTemp(t)
	t.Setenv("RANKING_API_URL", "https://ranking.example.com/api/")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://ranking.example.com/api", cfg.APIBaseURL)
}

func TestLoadRejectsRelativeURL(t *testing.T) {
	chdirTemp(t)

	for _, raw := range []string{"localhost:8000", "ftp://example.com", "/api"} {
		t.Setenv("RANKING_API_URL", raw)
		_, err := Load()
		assert.Error(t, err, raw)
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	chdirTemp(t)
	// godotenv never overrides variables that are already present, even when empty
	for _, k := range []string{"PROFILE_REGION", "SSH_ADDR"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	require.NoError(t, os.WriteFile(".env", []byte("PROFILE_REGION=euw\nSSH_ADDR=:2323\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.DotEnv)
	assert.Equal(t, "euw", cfg.ProfileRegion)
	assert.Equal(t, ":2323", cfg.SSHAddr)
	assert.True(t, cfg.ServeSSH())
}
