package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	APIBaseURL     string
	LogLevel       string
	LogFile        string
	ProfileRegion  string
	SSHAddr        string
	SSHHostKeyPath string

	// set when a .env file was found and applied
	DotEnv bool
}

func Load() (*Config, error) {
	dotEnv := godotenv.Load() == nil

	cfg := &Config{
		APIBaseURL:     getEnv("RANKING_API_URL", "http://localhost:8000/api"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFile:        getEnv("LOG_FILE", "dashboard.log"),
		ProfileRegion:  getEnv("PROFILE_REGION", "br"),
		SSHAddr:        getEnv("SSH_ADDR", ""),
		SSHHostKeyPath: getEnv("SSH_HOST_KEY_PATH", ".ssh/ranking_dashboard"),
		DotEnv:         dotEnv,
	}

	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	u, err := url.Parse(cfg.APIBaseURL)
	if err != nil {
		return nil, fmt.Errorf("RANKING_API_URL is invalid: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("RANKING_API_URL must be an absolute http(s) URL, got %q", cfg.APIBaseURL)
	}

	return cfg, nil
}

// ServeSSH reports whether the dashboard is served over SSH instead of the local terminal.
func (c *Config) ServeSSH() bool {
	return c.SSHAddr != ""
}

func (c *Config) MarshalZerologObject(e *zerolog.Event) {
	e.Str("api_base_url", c.APIBaseURL).
		Str("log_level", c.LogLevel).
		Str("profile_region", c.ProfileRegion).
		Str("ssh_addr", c.SSHAddr).
		Bool("dotenv", c.DotEnv)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
