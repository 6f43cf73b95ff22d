package main

import (
	"context"
	"errors"
	"ranking-dashboard/internal/api"
	"ranking-dashboard/internal/config"
	"ranking-dashboard/internal/constants"
	fxmodules "ranking-dashboard/internal/fx"
	"ranking-dashboard/internal/history"
	"ranking-dashboard/internal/server"
	"ranking-dashboard/internal/tui"
	"ranking-dashboard/internal/viewmodel"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.NopLogger,
		fx.Invoke(runDashboard),
	).Run()
}

type params struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Config     *config.Config
	Logger     zerolog.Logger
	Client     *api.RankingClient
	Simulator  *history.Simulator
	Factory    server.SessionFactory
}

func runDashboard(p params) error {
	if p.Config.ServeSSH() {
		return serveSSH(p)
	}
	runLocal(p)
	return nil
}

func runLocal(p params) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	vm := viewmodel.New(p.Client, p.Simulator, p.Logger)
	model := tui.New(ctx, vm, p.Config.ProfileRegion, p.Logger, tui.WithURLOpener(tui.OpenInBrowser))
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				p.Logger.Info().Str("api", p.Config.APIBaseURL).Msg("dashboard starting")
				if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
					p.Logger.Error().Err(err).Msg("dashboard failed")
				}
				if err := p.Shutdowner.Shutdown(); err != nil {
					p.Logger.Warn().Err(err).Msg("shutdown request failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-ctx.Done():
				return ctx.Err()
			}
			p.Logger.Info().Msg("dashboard stopped")
			return nil
		},
	})
}

func serveSSH(p params) error {
	srv, err := server.NewSSHServer(p.Config, p.Factory, p.Logger)
	if err != nil {
		return err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return srv.Start()
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()
			return srv.Stop(shutdownCtx)
		},
	})
	return nil
}
