package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/registry"
	"github.com/vovakirdan/gridsnake/internal/storage"
)

// DefaultGameID is played when an SSH session does not name a variant.
const DefaultGameID = "snake"

// sessionRunLimit caps the rounds read back for a session summary.
const sessionRunLimit = 500

type sessionIDKey struct{}

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.snake/host_key.
	HostKeyPath string

	// DBPath is the path to the scores database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// FPS is the frame rate of each session.
	FPS int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.snake/scores.db",
		IdleTimeout: 30 * time.Minute,
		FPS:         60,
	}
}

// SSHServer serves one game per SSH session through Wish.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server. A nil logger gets a default one
// writing to stderr.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "snake-ssh",
		})
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".snake", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Middlewares run last to first: logging tags the session before the
	// game handler reads the tag.
	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// sessionGameID picks the variant from the SSH command, e.g.
// "ssh -p 23234 host snake_wrap".
func sessionGameID(command []string) (string, error) {
	if len(command) == 0 {
		return DefaultGameID, nil
	}
	if !registry.Exists(command[0]) {
		return "", fmt.Errorf("unknown game %q", command[0])
	}
	return command[0], nil
}

// teaHandler creates a game model for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		wish.Fatalln(sess, "no PTY requested; connect with ssh -t")
		return nil, nil
	}

	gameID, err := sessionGameID(sess.Command())
	if err != nil {
		wish.Fatalln(sess, err.Error())
		return nil, nil
	}
	game, err := registry.Create(gameID)
	if err != nil {
		wish.Fatalln(sess, err.Error())
		return nil, nil
	}

	sessionID, _ := sess.Context().Value(sessionIDKey{}).(string)
	logger := s.logger.With("session", sessionID)
	logger.Info("game started", "game", gameID, "user", sess.User())

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.FPS,
		Seed:     time.Now().UnixNano(),
	}
	model := NewModel(game, s.store, cfg).WithSession(sessionID, logger)

	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// loggingMiddleware assigns each session an ID and logs its lifetime.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		sessionID := uuid.NewString()
		sess.Context().SetValue(sessionIDKey{}, sessionID)

		start := time.Now()
		s.logger.Info("session started",
			"session", sessionID,
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)

		kv := []any{
			"session", sessionID,
			"user", sess.User(),
			"duration", time.Since(start).Round(time.Second),
		}
		if rounds, best, err := s.sessionRecord(sessionID); err != nil {
			s.logger.Warn("could not read session rounds", "session", sessionID, "error", err)
		} else if rounds > 0 {
			kv = append(kv, "rounds", rounds, "best", best)
		}
		s.logger.Info("session ended", kv...)
	}
}

// sessionRecord counts the saved rounds of one session and their best score.
func (s *SSHServer) sessionRecord(sessionID string) (rounds, best int, err error) {
	if s.store == nil || sessionID == "" {
		return 0, 0, nil
	}
	runs, err := s.store.SessionRuns(sessionID, sessionRunLimit)
	if err != nil {
		return 0, 0, err
	}
	for _, r := range runs {
		best = max(best, r.Score)
	}
	return len(runs), best, nil
}

// ListenAndServe starts the SSH server and blocks until SIGINT or SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-done:
		s.logger.Info("shutting down...")
		return s.Shutdown()
	case err := <-errc:
		s.Shutdown() //nolint:errcheck // already failing
		return fmt.Errorf("ssh server: %w", err)
	}
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.drain(ctx, s.server.Shutdown)
}

// drain runs stop, which waits for open sessions, and only then closes the
// store so rounds finished while draining are still saved.
func (s *SSHServer) drain(ctx context.Context, stop func(context.Context) error) error {
	err := stop(ctx)
	if s.store != nil {
		if closeErr := s.store.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close store: %w", closeErr))
		}
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
