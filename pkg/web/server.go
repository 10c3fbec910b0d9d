package web

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/protei/gtp/internal/logger"
	"github.com/protei/gtp/pkg/config"
	"github.com/protei/gtp/pkg/monitor"
)

const recentBufferSize = 256

// Server exposes the gtpmon HTTP API: a status endpoint, the recent
// message buffer and a websocket live feed of decoded messages.
type Server struct {
	cfg  *config.Config
	log  *logger.Logger
	auth *Auth
	srv  *http.Server

	mu      sync.RWMutex
	recent  []monitor.Summary
	clients map[*websocket.Conn]chan monitor.Summary

	started time.Time
	total   uint64

	upgrader websocket.Upgrader
}

// NewServer creates the API server.
func NewServer(cfg *config.Config, log *logger.Logger) (*Server, error) {
	auth, err := NewAuth(cfg)
	if err != nil {
		return nil, err
	}
	s := &Server{
		cfg:     cfg,
		log:     log.WithComponent("web"),
		auth:    auth,
		clients: make(map[*websocket.Conn]chan monitor.Summary),
		started: time.Now(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", s.handleLogin)
	mux.HandleFunc("/api/status", s.protected(s.handleStatus))
	mux.HandleFunc("/api/messages", s.protected(s.handleMessages))
	mux.HandleFunc("/api/live", s.protected(s.handleLive))

	s.srv = &http.Server{
		Addr:         cfg.WebAddr(),
		Handler:      mux,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
	}
	return s, nil
}

// Run serves until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("web server started", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	}
}

// Consume implements monitor.Sink: buffer the summary and fan it out to
// the live feed clients.
func (s *Server) Consume(sum monitor.Summary) {
	s.mu.Lock()
	s.total++
	s.recent = append(s.recent, sum)
	if len(s.recent) > recentBufferSize {
		s.recent = s.recent[len(s.recent)-recentBufferSize:]
	}
	for conn, ch := range s.clients {
		select {
		case ch <- sum:
		default:
			// Slow consumer: drop the connection rather than the pipeline.
			close(ch)
			delete(s.clients, conn)
		}
	}
	s.mu.Unlock()
}

func (s *Server) protected(h http.HandlerFunc) http.HandlerFunc {
	if !s.cfg.Web.AuthEnabled {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.auth.Authorize(r); err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		h(w, r)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	token, err := s.auth.Login(creds.Username, creds.Password)
	if err != nil {
		s.log.Warn("login failed", "user", creds.Username)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	writeJSON(w, map[string]string{"token": token})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	total := s.total
	clients := len(s.clients)
	s.mu.RUnlock()
	writeJSON(w, map[string]interface{}{
		"application":    s.cfg.Application.Name,
		"version":        s.cfg.Application.Version,
		"uptime_seconds": int(time.Since(s.started).Seconds()),
		"messages_total": total,
		"live_clients":   clients,
	})
}

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	out := make([]monitor.Summary, len(s.recent))
	copy(out, s.recent)
	s.mu.RUnlock()
	writeJSON(w, out)
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("websocket upgrade failed", err)
		return
	}
	ch := make(chan monitor.Summary, 64)
	s.mu.Lock()
	s.clients[conn] = ch
	s.mu.Unlock()
	s.log.Info("live feed client connected", "remote", conn.RemoteAddr().String())

	go func() {
		defer func() {
			s.mu.Lock()
			if _, ok := s.clients[conn]; ok {
				close(ch)
				delete(s.clients, conn)
			}
			s.mu.Unlock()
			conn.Close()
		}()
		for sum := range ch {
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteJSON(sum); err != nil {
				return
			}
		}
	}()

	// Drain control frames; exits when the peer goes away.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.mu.Lock()
				if ch, ok := s.clients[conn]; ok {
					close(ch)
					delete(s.clients, conn)
				}
				s.mu.Unlock()
				return
			}
		}
	}()
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
