// Package remote lets web pages drive a running viewer over a websocket.
// Incoming controls are queued and applied by the frame loop; status is
// broadcast back to every connected client.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Faultbox/carviewer/internal/logger"
	"github.com/Faultbox/carviewer/internal/viewer"
)

const writeTimeout = 200 * time.Millisecond

// Server is the websocket control bridge.
type Server struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]*client
	last    []byte

	queue    chan viewer.Control
	upgrader websocket.Upgrader
	http     *http.Server
}

// New creates a server that buffers up to queueSize pending controls.
func New(queueSize int) *Server {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Server{
		clients:  make(map[*websocket.Conn]*client),
		queue:    make(chan viewer.Control, queueSize),
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
}

// Handler returns the HTTP routes: /ws for controls and /health.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start listens on addr and serves in the background.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("remote listen %s: %w", addr, err)
	}
	s.http = &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("remote server stopped", zap.Error(err))
		}
	}()
	logger.Info("remote control listening", zap.String("addr", ln.Addr().String()))
	return nil
}

// Close stops the HTTP server and disconnects all clients.
func (s *Server) Close(ctx context.Context) error {
	var err error
	if s.http != nil {
		err = s.http.Shutdown(ctx)
	}
	s.mu.Lock()
	for c := range s.clients {
		c.Close()
		delete(s.clients, c)
	}
	s.mu.Unlock()
	return err
}

// Clients returns the number of connected clients.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Drain applies every queued control without blocking and returns how many
// were handled and the last error apply returned.
func (s *Server) Drain(apply func(viewer.Control) error) (int, error) {
	var (
		n       int
		lastErr error
	)
	for {
		select {
		case c := <-s.queue:
			n++
			if err := apply(c); err != nil {
				logger.Warn("remote control rejected",
					zap.String("attribute", c.Attribute), zap.String("value", c.Value), zap.Error(err))
				lastErr = err
			}
		default:
			return n, lastErr
		}
	}
}

// Broadcast hands st to every client's writer and keeps it for clients that
// join later. It never waits on a connection.
func (s *Server) Broadcast(st viewer.Status) {
	b, err := json.Marshal(st)
	if err != nil {
		logger.Error("marshal status", zap.Error(err))
		return
	}
	s.mu.Lock()
	s.last = b
	clients := make([]*client, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	for _, c := range clients {
		c.offer(b)
	}
}

// client owns the write side of one connection.
type client struct {
	conn *websocket.Conn
	send chan []byte // holds at most the newest unsent status
	done chan struct{}
}

func newClient(conn *websocket.Conn) *client {
	return &client{conn: conn, send: make(chan []byte, 1), done: make(chan struct{})}
}

// offer queues b, replacing a status the writer has not picked up yet.
func (c *client) offer(b []byte) {
	for {
		select {
		case c.send <- b:
			return
		default:
		}
		select {
		case <-c.send:
		default:
		}
	}
}

// writeLoop is the only writer on the connection.
func (c *client) writeLoop() {
	for {
		select {
		case b := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
				logger.Debug("write status", zap.Error(err))
				c.conn.Close()
				return
			}
		case <-c.done:
			return
		}
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	cl := newClient(conn)
	s.mu.Lock()
	s.clients[conn] = cl
	if s.last != nil {
		cl.offer(s.last)
	}
	s.mu.Unlock()
	go cl.writeLoop()

	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
		close(cl.done)
		conn.Close()
	}()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var c viewer.Control
		if err := json.Unmarshal(data, &c); err != nil || c.Attribute == "" {
			logger.Debug("ignoring malformed control", zap.ByteString("data", data))
			continue
		}
		select {
		case s.queue <- c:
		default:
			logger.Warn("control queue full, dropping", zap.String("attribute", c.Attribute))
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]int{
		"clients": s.Clients(),
		"queued":  len(s.queue),
	})
}
