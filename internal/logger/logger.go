package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"ranking-dashboard/internal/config"

	"github.com/rs/zerolog"
)

// New writes JSON logs to cfg.LogFile. The terminal belongs to the dashboard, so nothing goes to stdout.
// The returned closer releases the file.
func New(cfg *config.Config) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if dir := filepath.Dir(cfg.LogFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to open log file %s: %w", cfg.LogFile, err)
	}

	logger := SetLevel(f, level)
	logger.Info().EmbedObject(cfg).Msg("configuration loaded")

	return logger, f, nil
}

func SetLevel(w io.Writer, level zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(w).
		With().
		Timestamp().
		Caller().
		Logger()

	return logger.Level(level)
}
