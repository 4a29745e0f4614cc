// Package web hosts Starfall in a browser page. Each WebSocket connection
// owns one world; the page only draws frames, plays cues and sends keys.
package web

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/starfall/internal/registry"
	"github.com/vovakirdan/starfall/internal/storage"
)

//go:embed index.html
var indexHTML []byte

// Config holds configuration for the web host.
type Config struct {
	// Address is the host:port to listen on.
	Address string

	// DBPath is the path to the scores database. Empty disables saving.
	DBPath string

	// GameID selects the registered game each connection plays.
	GameID string

	// TickRate is the simulation rate for every session.
	TickRate int

	// Cols and Rows size the character grid sent to the page.
	Cols int
	Rows int

	// Seed fixes the world seed for every connection. Zero uses the clock.
	Seed int64

	// PongWait is how long a connection may stay silent, pongs included,
	// before it is dropped. Pings go out at half this interval.
	PongWait time.Duration
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:  ":8080",
		DBPath:   "~/.starfall/scores.db",
		GameID:   "starfall",
		TickRate: 60,
		Cols:     80,
		Rows:     27,
		PongWait: 60 * time.Second,
	}
}

// Server serves the host page and its WebSocket endpoint.
type Server struct {
	config   Config
	store    *storage.Store
	logger   *log.Logger
	upgrader websocket.Upgrader
	http     *http.Server

	mu       sync.Mutex
	active   map[*session]struct{}
	sessions sync.WaitGroup
}

// NewServer creates a web host. A nil logger gets a default stderr logger.
// A database that cannot be opened only disables score saving.
func NewServer(cfg Config, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "starfall-web",
		})
	}

	def := DefaultConfig()
	if cfg.GameID == "" {
		cfg.GameID = def.GameID
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = def.TickRate
	}
	if cfg.Cols <= 0 || cfg.Rows <= 0 {
		cfg.Cols, cfg.Rows = def.Cols, def.Rows
	}
	if cfg.PongWait <= 0 {
		cfg.PongWait = def.PongWait
	}
	if !registry.Exists(cfg.GameID) {
		return nil, fmt.Errorf("web: unknown game %q", cfg.GameID)
	}

	s := &Server{
		config: cfg,
		logger: logger,
		active: make(map[*session]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	if cfg.DBPath != "" {
		store, err := storage.Open(cfg.DBPath)
		if err != nil {
			logger.Warn("could not open scores database", "error", err)
		} else {
			s.store = store
		}
	}

	s.http = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler returns the HTTP routes: the page at / and the socket at /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	//nolint:errcheck // Client went away
	w.Write(indexHTML)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	player := r.URL.Query().Get("name")
	if player == "" {
		player = "web"
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	sess, err := newSession(conn, s.config, s.store, s.logger, player)
	if err != nil {
		s.logger.Error("cannot start game", "game", s.config.GameID, "error", err)
		message := websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "cannot start game")
		//nolint:errcheck // Closing anyway
		conn.WriteMessage(websocket.CloseMessage, message)
		conn.Close()
		return
	}

	s.track(sess)
	defer s.untrack(sess)

	start := time.Now()
	s.logger.Info("session started", "player", player, "remote", r.RemoteAddr)
	score := sess.run(r.Context())
	s.logger.Info("session ended",
		"player", player,
		"remote", r.RemoteAddr,
		"score", score,
		"duration", time.Since(start).Round(time.Second),
	)
}

// ListenAndServe starts the HTTP server and blocks until shutdown.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting web server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.closeStore()
		return fmt.Errorf("web: %w", err)
	case <-done:
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

func (s *Server) track(sess *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[sess] = struct{}{}
	s.sessions.Add(1)
}

func (s *Server) untrack(sess *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, sess)
	s.sessions.Done()
}

// Shutdown stops accepting connections, ends open sessions and closes the
// score store. net/http does not track hijacked WebSocket connections, so
// they are closed here.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.http.Shutdown(ctx)

	s.mu.Lock()
	for sess := range s.active {
		sess.close()
	}
	s.mu.Unlock()
	s.sessions.Wait()

	s.closeStore()
	return err
}

func (s *Server) closeStore() {
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
}

// Addr returns the server's listen address string.
func (s *Server) Addr() string {
	return s.config.Address
}
