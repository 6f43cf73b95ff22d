package fx

import (
	"context"
	"ranking-dashboard/internal/api"
	"ranking-dashboard/internal/config"
	"ranking-dashboard/internal/history"
	"ranking-dashboard/internal/logger"
	"ranking-dashboard/internal/server"
	"ranking-dashboard/internal/tui"
	"ranking-dashboard/internal/viewmodel"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// ProvideLogger closes the log file when the app stops.
func ProvideLogger(lc fx.Lifecycle, cfg *config.Config) (zerolog.Logger, error) {
	l, closer, err := logger.New(cfg)
	if err != nil {
		return l, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return closer.Close()
		},
	})
	return l, nil
}

func ProvideSimulator(logger zerolog.Logger) *history.Simulator {
	return history.NewSimulator(history.WithLogger(logger))
}

// ProvideSessionFactory gives every session a fresh view model over the shared client.
// SSH sessions have no local browser, so profile links are shown rather than opened.
func ProvideSessionFactory(cfg *config.Config, client *api.RankingClient, sim *history.Simulator) server.SessionFactory {
	return func(ctx context.Context, logger zerolog.Logger, width, height int) tea.Model {
		vm := viewmodel.New(client, sim, logger)
		return tui.New(ctx, vm, cfg.ProfileRegion, logger, tui.WithSize(width, height))
	}
}

var Module = fx.Options(
	fx.Provide(config.Load),
	fx.Provide(ProvideLogger),
	// api client
	fx.Provide(api.NewRankingClient),
	// history
	fx.Provide(ProvideSimulator),
	// sessions
	fx.Provide(ProvideSessionFactory),
)
