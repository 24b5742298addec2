package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/tomz197/survivors/internal/config"
	"github.com/tomz197/survivors/internal/draw"
	"github.com/tomz197/survivors/internal/game"
	"github.com/tomz197/survivors/internal/loop"
	"github.com/tomz197/survivors/internal/storage"
	"golang.org/x/sync/errgroup"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultSaveDir     = "/app/saves"
	shutdownTimeout    = 10 * time.Second
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "survivors-ssh",
	})

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	saveDir := config.GetEnv("ARENA_SAVE_DIR", defaultSaveDir)
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "saveDir", saveDir)

	tuning, err := config.LoadTuning(config.GetEnv("ARENA_TUNING", ""))
	if err != nil {
		logger.Warn("using default tuning", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	arena := &arena{
		ctx:      ctx,
		log:      logger,
		tuning:   tuning,
		saveDir:  saveDir,
		sessions: make(map[string]struct{}),
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			arena.middleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		logger.Info("starting ssh server", "addr", s.Addr)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		<-egCtx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

// arena runs one game per SSH session. Each user has their own save file
// and may hold at most one session at a time.
type arena struct {
	ctx     context.Context
	log     *log.Logger
	tuning  config.Tuning
	saveDir string

	mu       sync.Mutex
	sessions map[string]struct{}
}

func (a *arena) claim(profile string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.sessions[profile]; ok {
		return false
	}
	a.sessions[profile] = struct{}{}
	return true
}

func (a *arena) release(profile string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.sessions, profile)
}

// middleware handles SSH sessions and runs the game loop.
func (a *arena) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		defer next(sess)

		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		profile := profileName(sess.User())
		logger := a.log.With("user", sess.User())
		if !a.claim(profile) {
			fmt.Fprintln(sess, "You are already playing in another session.")
			return
		}
		defer a.release(profile)

		logger.Info("new game session", "term", pty.Term, "size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		g, err := game.New(game.Options{
			Tuning: a.tuning,
			Store:  storage.NewFileStore(filepath.Join(a.saveDir, profile+".json")),
			Logger: logger,
		})
		if err != nil {
			logger.Error("failed to create game", "err", err)
			return
		}

		// Stop on session close or server shutdown, whichever comes first.
		ctx, cancel := context.WithCancel(sess.Context())
		defer cancel()
		stopAfter := context.AfterFunc(a.ctx, cancel)
		defer stopAfter()

		err = loop.Run(ctx, bufio.NewReader(sess), sess, g, loop.Options{
			TermSizeFunc: sizeTracker.getSize,
			Logger:       logger,
			Inactivity:   true,
		})
		switch {
		case errors.Is(err, loop.ErrInactive):
			fmt.Fprintln(sess, "Disconnected for inactivity.")
		case err != nil:
			logger.Error("game error", "err", err)
		}
		logger.Info("session ended")
	}
}

// profileName maps an SSH user name to a safe save file stem. The stem
// carries a hash of the raw name so users that sanitize alike stay apart.
func profileName(user string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, user)
	if strings.Trim(name, "_") == "" {
		name = "anonymous"
	}
	h := fnv.New32a()
	h.Write([]byte(user))
	return fmt.Sprintf("%s-%08x", name, h.Sum32())
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
