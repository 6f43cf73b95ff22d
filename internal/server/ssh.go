package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"ranking-dashboard/internal/config"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// SessionFactory builds the dashboard for one SSH session. Every session
// gets its own state; ctx ends when the session closes.
type SessionFactory func(ctx context.Context, logger zerolog.Logger, width, height int) tea.Model

type SSHServer struct {
	addr    string
	srv     *ssh.Server
	factory SessionFactory
	logger  zerolog.Logger
	group   errgroup.Group
	ln      net.Listener
}

func NewSSHServer(cfg *config.Config, factory SessionFactory, logger zerolog.Logger) (*SSHServer, error) {
	s := &SSHServer{
		addr:    cfg.SSHAddr,
		factory: factory,
		logger:  logger.With().Str("component", "ssh").Logger(),
	}

	srv, err := wish.NewServer(
		wish.WithAddress(cfg.SSHAddr),
		wish.WithHostKeyPath(cfg.SSHHostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(s.teaHandler),
			logging.Middleware(),
		),
	)
	if err != nil {
		return nil, err
	}
	s.srv = srv

	return s, nil
}

func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, active := sess.Pty()
	if !active {
		wish.Fatalln(sess, "no active terminal, connect with ssh -t")
		return nil, nil
	}

	sessionID, err := gonanoid.New()
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to generate session id")
	}

	logger := s.logger.With().
		Str("session", sessionID).
		Str("user", sess.User()).
		Str("remote", sess.RemoteAddr().String()).
		Logger()
	logger.Info().
		Int("width", pty.Window.Width).
		Int("height", pty.Window.Height).
		Msg("session opened")

	m := s.factory(sess.Context(), logger, pty.Window.Width, pty.Window.Height)
	return m, append(bubbletea.MakeOptions(sess), tea.WithAltScreen())
}

// Start binds the listener before returning, so a taken address fails here.
// Serving continues in the background until Stop.
func (s *SSHServer) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.logger.Error().Err(err).Str("addr", s.addr).Msg("ssh server failed to listen")
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.ln = ln

	s.logger.Info().Str("addr", ln.Addr().String()).Msg("ssh server starting")
	s.group.Go(func() error {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("ssh server failed")
			return err
		}
		return nil
	})
	return nil
}

// Addr is the bound address once Start has succeeded.
func (s *SSHServer) Addr() string {
	if s.ln == nil {
		return s.addr
	}
	return s.ln.Addr().String()
}

func (s *SSHServer) Stop(ctx context.Context) error {
	s.logger.Info().Msg("shutting down ssh server")

	if err := s.srv.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		s.logger.Error().Err(err).Msg("ssh server shutdown failed")
		return err
	}
	if s.ln == nil {
		return nil
	}
	// Shutdown only closes listeners Serve has registered
	_ = s.ln.Close()
	if err := s.group.Wait(); err != nil {
		return err
	}

	s.logger.Info().Msg("ssh server stopped gracefully")
	return nil
}
