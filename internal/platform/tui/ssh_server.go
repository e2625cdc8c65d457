package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/cardrunner/internal/audio"
	"github.com/vovakirdan/cardrunner/internal/game"
	"github.com/vovakirdan/cardrunner/internal/storage"
)

// SSHServerConfig describes a multi-user host. Every connection plays its own
// session; the store behind prefs, record and history is shared.
type SSHServerConfig struct {
	Address     string        // host:port, e.g. ":23234"
	HostKeyPath string        // Generated under ~/.cardrunner when empty
	DBPath      string        // Shared database; sessions use memory prefs if it cannot be opened
	IdleTimeout time.Duration // Zero disables the idle timeout

	// Session is the template copied for every connection.
	Session Options
}

// DefaultSSHServerConfig returns the address and paths `cardrunner serve` uses.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.cardrunner/cardrunner.db",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer hosts one game session per SSH connection.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger

	mu     sync.Mutex
	active map[ssh.Session]*game.Session
}

// NewSSHServer opens the shared store and prepares the wish server.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Session.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "cardrunner-ssh"})
	}

	keyPath, err := hostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	srv := &SSHServer{
		config: cfg,
		logger: logger,
		active: make(map[ssh.Session]*game.Session),
	}
	srv.store, err = storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("sessions will not share a record", "err", err)
		srv.store = nil
	}

	srv.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.trackConnection,
		),
	)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("tui: cannot create ssh server: %w", err)
	}
	return srv, nil
}

// hostKeyPath resolves the key location and makes sure its directory exists.
func hostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("tui: cannot locate home for host key: %w", err)
		}
		path = filepath.Join(home, ".cardrunner", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("tui: cannot create host key directory: %w", err)
	}
	return path, nil
}

// sessionOptions derives the options for one connection from the template.
func (s *SSHServer) sessionOptions(user string) Options {
	logger := s.logger.With("user", user)
	opts := s.config.Session
	opts.Store = s.store
	opts.Logger = logger
	opts.Audio = audio.LogPlayer{Logger: logger}
	opts.Runtime.Seed = time.Now().UnixNano()
	return opts
}

func (s *SSHServer) teaHandler(conn ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := conn.Pty()
	if !ok {
		s.logger.Warn("connection without a pty", "user", conn.User())
		return nil, nil
	}

	opts := s.sessionOptions(conn.User())
	session := NewSession(opts)
	s.mu.Lock()
	s.active[conn] = session
	s.mu.Unlock()

	model := NewModel(session, opts.Runtime)
	model.width = pty.Window.Width
	model.height = pty.Window.Height
	model.help.Width = pty.Window.Width
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// trackConnection logs each connection and forgets its session when it ends.
func (s *SSHServer) trackConnection(next ssh.Handler) ssh.Handler {
	return func(conn ssh.Session) {
		remote := conn.RemoteAddr().String()
		s.logger.Info("player connected", "user", conn.User(), "remote", remote)
		next(conn)

		s.mu.Lock()
		session := s.active[conn]
		delete(s.active, conn)
		s.mu.Unlock()

		if session != nil {
			snap := session.Snapshot()
			s.logger.Info("player left", "user", conn.User(), "phase", snap.Phase, "points", snap.Points)
		} else {
			s.logger.Info("player left", "user", conn.User(), "remote", remote)
		}
	}
}

// Active reports how many connections currently hold a session.
func (s *SSHServer) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}

// Serve accepts connections until ctx is cancelled, then shuts down.
func (s *SSHServer) Serve(ctx context.Context) error {
	s.logger.Info("listening", "address", s.config.Address, "shared_store", s.store != nil)

	errc := make(chan error, 1)
	go func() {
		errc <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		s.closeStore()
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("tui: ssh server stopped: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutting down", "active", s.Active())
		return s.Shutdown()
	}
}

// Shutdown stops accepting connections and flushes the shared store.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn("could not close database", "err", err)
	}
	s.store = nil
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
