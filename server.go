package main

import (
	"fmt"
	"log"
	"net"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/multierr"
)

// Server binds a TCP listener and spawns one connection task per accepted
// socket, scheduled across a bounded worker pool. conc's pool gives the
// accept loop an explicit concurrency ceiling tied to Config.MaxClients
// instead of an unbounded goroutine-per-connection fan-out.
type Server struct {
	config   *Config
	store    *Store
	stats    *ServerStats
	bytePool *BytePool

	listener net.Listener
	pool     *pool.Pool

	mu      sync.Mutex
	running bool
}

// NewServer creates a Server bound to the given config; it does not start
// listening until Start is called.
func NewServer(config *Config) *Server {
	return &Server{
		config:   config,
		store:    NewStore(),
		stats:    NewServerStats(),
		bytePool: NewBytePool(),
	}
}

// Start binds the listener and runs the accept loop until Stop is called.
// Accept errors while running are logged and retried; they never
// terminate the server.
func (s *Server) Start() error {
	if maxFrame, err := s.config.ParseMaxFrame(); err == nil && maxFrame > 0 {
		maxFrameSize = maxFrame
	}

	address := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	s.mu.Lock()
	s.listener = listener
	s.running = true
	s.pool = pool.New().WithMaxGoroutines(s.config.MaxClients)
	s.mu.Unlock()

	log.Printf("gofast-server listening on %s", address)

	go s.sweepLoop()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if !s.isRunning() {
				return nil
			}
			log.Printf("accept error: %v", err)
			continue
		}

		if tcpConn, ok := conn.(*net.TCPConn); ok && s.config.TCPKeepAlive {
			tcpConn.SetKeepAlive(true)
		}

		s.stats.Connections.Inc()
		s.pool.Go(func() {
			s.handleConnection(conn)
		})
	}
}

func (s *Server) isRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Stop gracefully shuts down the server: the listener is closed (which
// unblocks Accept in Start), then in-flight connection tasks are drained
// via the pool. Errors from each step are merged with multierr rather
// than the first one silently hiding the second.
func (s *Server) Stop() error {
	s.mu.Lock()
	s.running = false
	listener := s.listener
	p := s.pool
	s.mu.Unlock()

	var err error
	if listener != nil {
		err = multierr.Append(err, listener.Close())
	}
	if p != nil {
		p.Wait()
	}
	return err
}

// sweepLoop periodically reclaims expired keys in the background. It is a
// pure optimization over lazy expiration, never required for correctness
// and never observable by a client — GET/LRANGE/etc. expire keys lazily
// on access regardless of whether this loop runs.
func (s *Server) sweepLoop() {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for s.isRunning() {
		<-ticker.C
		if removed := s.store.sweepExpired(time.Now()); removed > 0 {
			log.Printf("swept %d expired keys", removed)
		}
	}
}
