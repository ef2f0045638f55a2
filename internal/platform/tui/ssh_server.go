package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/pattern-island/internal/config"
	"github.com/vovakirdan/pattern-island/internal/core"
	"github.com/vovakirdan/pattern-island/internal/game"
)

// shutdownTimeout bounds how long open sessions may take to finish.
const shutdownTimeout = 10 * time.Second

// SSHConfig configures the SSH front end.
type SSHConfig struct {
	Addr        string        // host:port to listen on
	HostKeyPath string        // generated on first start when missing; "" means ~/.patternisland/ssh_host_key
	IdleTimeout time.Duration // idle sessions are closed after this long
}

// DefaultSSHConfig listens on :2222 and drops sessions idle for 30 minutes.
func DefaultSSHConfig() SSHConfig {
	return SSHConfig{Addr: ":2222", IdleTimeout: 30 * time.Minute}
}

// SSHServer hosts one game session per SSH connection. The login name
// selects the profile, so progress follows the user across connections.
type SSHServer struct {
	cfg    SSHConfig
	srv    *ssh.Server
	svc    *game.Service
	log    *log.Logger
	active atomic.Int64
}

// NewSSHServer prepares a server for svc; call ListenAndServe to start it.
func NewSSHServer(cfg SSHConfig, svc *game.Service, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	keyPath, err := hostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	s := &SSHServer{cfg: cfg, svc: svc, log: logger.WithPrefix("ssh")}
	s.srv, err = wish.NewServer(
		wish.WithAddress(cfg.Addr),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		// Middlewares run last to first: sessions are counted and logged
		// around the Bubble Tea program.
		wish.WithMiddleware(
			bubbletea.Middleware(s.newSession),
			s.trackSessions,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("ssh: create server: %w", err)
	}
	return s, nil
}

// hostKeyPath expands p and makes sure its directory exists.
func hostKeyPath(p string) (string, error) {
	p, err := config.ExpandHome(p)
	if err != nil {
		return "", err
	}
	if p == "" {
		dir := config.HomeDir()
		if dir == "" {
			return "", errors.New("ssh: no home directory for the host key")
		}
		p = filepath.Join(dir, "ssh_host_key")
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return "", fmt.Errorf("ssh: host key directory: %w", err)
	}
	return p, nil
}

// newSession builds the session model sized to the client's terminal.
func (s *SSHServer) newSession(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.log.Warn("rejecting session without a terminal", "user", sess.User())
		return nil, nil
	}

	rc := core.DefaultConfig().WithSize(pty.Window.Width, pty.Window.Height)
	rc.Profile = profileFor(sess.User())
	return NewSessionModel(s.svc, rc), []tea.ProgramOption{tea.WithAltScreen()}
}

// profileFor maps an SSH login to a profile name.
func profileFor(user string) string {
	user = strings.ToLower(strings.TrimSpace(user))
	if user == "" {
		return core.DefaultProfile
	}
	return user
}

func (s *SSHServer) trackSessions(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		profile := profileFor(sess.User())
		remote := sess.RemoteAddr().String()

		s.log.Info("session opened", "profile", profile, "remote", remote, "active", s.active.Add(1))
		defer func() {
			s.log.Info("session closed", "profile", profile, "remote", remote,
				"active", s.active.Add(-1), "duration", time.Since(start).Round(time.Second))
		}()
		next(sess)
	}
}

// Sessions returns the number of connected players.
func (s *SSHServer) Sessions() int {
	return int(s.active.Load())
}

// ListenAndServe accepts connections until ctx is cancelled, then shuts
// the server down.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", s.cfg.Addr)
		err := s.srv.ListenAndServe()
		if errors.Is(err, ssh.ErrServerClosed) {
			err = nil
		}
		errCh <- err
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.log.Info("shutting down", "active", s.Sessions())
		return s.Shutdown()
	}
}

// Shutdown closes the listener and waits for open sessions to end.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.srv.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.cfg.Addr
}
