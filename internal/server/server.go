package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
)

// Server represents the WebSocket server
type Server struct {
	addr         string
	upgrader     websocket.Upgrader
	connections  map[*Connection]bool
	register     chan *Connection
	unregister   chan *Connection
	logger       *log.Logger
	mu           sync.RWMutex
	ctx          context.Context
	cancel       context.CancelFunc
	service      *Service
	stats        *Stats
	clock        quartz.Clock
	estimateWait time.Duration
}

// NewServer creates a new WebSocket server
func NewServer(cfg *Config, service *Service, logger *log.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		addr: cfg.ListenAddress(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// For development, allow all origins
				// In production, implement proper origin checking
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections:  make(map[*Connection]bool),
		register:     make(chan *Connection),
		unregister:   make(chan *Connection),
		logger:       logger.WithPrefix("server"),
		ctx:          ctx,
		cancel:       cancel,
		service:      service,
		stats:        NewStats(),
		clock:        quartz.NewReal(),
		estimateWait: time.Duration(cfg.Equity.EstimateWaitMs) * time.Millisecond,
	}
}

// Start starts the WebSocket server
func (s *Server) Start() error {
	go s.run()

	// Create a dedicated mux for this server instance
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/stats", s.handleStats)

	s.logger.Info("Starting WebSocket server", "addr", s.addr)
	return http.ListenAndServe(s.addr, mux)
}

// Stop stops the WebSocket server
func (s *Server) Stop() error {
	s.cancel()

	// Close all connections
	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close() // Ignore close errors during shutdown
	}
	s.mu.Unlock()

	return nil
}

// run handles connection lifecycle
func (s *Server) run() {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.connections[conn] = true
			total := len(s.connections)
			s.mu.Unlock()
			s.stats.ConnectionOpened()
			s.logger.Info("Client connected", "conn", conn.ID(), "total", total)

		case conn := <-s.unregister:
			s.mu.Lock()
			_, ok := s.connections[conn]
			if ok {
				delete(s.connections, conn)
				_ = conn.Close() // Ignore close errors during unregistration
			}
			total := len(s.connections)
			s.mu.Unlock()
			if ok {
				s.stats.ConnectionClosed()
				s.logger.Info("Client disconnected", "conn", conn.ID(), "total", total)
			}

		case <-s.ctx.Done():
			return
		}
	}
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s.logger, s.service, s.stats, s.clock, s.estimateWait)
	s.register <- client
	client.Start()

	// Connection cleanup is handled by the connection itself
	go func() {
		<-client.ctx.Done()
		s.unregister <- client
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK") // Ignore write errors for health check
}

// handleStats reports service counters as plain text
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	fmt.Fprintf(w, "Active connections: %d\n", s.stats.ActiveConnections())
	fmt.Fprintf(w, "Total connections: %d\n", s.stats.TotalConnections())
	fmt.Fprintf(w, "Hands classified: %d\n", s.stats.Classifications())
	fmt.Fprintf(w, "Equity estimates: %d\n", s.stats.Estimates())
	fmt.Fprintf(w, "Avg estimate time: %s\n", s.stats.AvgEstimateDuration())
	fmt.Fprintf(w, "Uptime: %s\n", s.stats.Uptime())
}

// ConnectionCount returns the number of registered connections
func (s *Server) ConnectionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.connections)
}

// Stats exposes the server's counters
func (s *Server) Stats() *Stats {
	return s.stats
}
