// Package ws runs one dashboard session per Socket.IO connection.
package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	socketio "github.com/googollee/go-socket.io"
	"github.com/googollee/go-socket.io/engineio"
	"github.com/googollee/go-socket.io/engineio/transport"
	"github.com/googollee/go-socket.io/engineio/transport/polling"
	"github.com/googollee/go-socket.io/engineio/transport/websocket"
	"github.com/sirupsen/logrus"

	"domain_expiry/internal/dashboard"
	"domain_expiry/internal/prefs"
)

// Options configures the sessions created for each connection
type Options struct {
	APIURL     string
	Interval   time.Duration
	Thresholds dashboard.Thresholds
	Fetcher    dashboard.Fetcher
	Prefs      prefs.Provider
	Location   *time.Location
	Logger     *logrus.Entry
}

// Server is the Socket.IO endpoint of the dashboard
type Server struct {
	io     *socketio.Server
	opts   Options
	logger *logrus.Entry

	mu       sync.Mutex
	sessions map[string]*session
}

// NewServer creates the Socket.IO server and registers the dashboard events
func NewServer(opts Options) *Server {
	io := socketio.NewServer(&engineio.Options{
		Transports: []transport.Transport{
			&polling.Transport{
				CheckOrigin: func(r *http.Request) bool {
					return true
				},
			},
			&websocket.Transport{
				CheckOrigin: func(r *http.Request) bool {
					return true
				},
			},
		},
	})

	s := &Server{
		io:       io,
		opts:     opts,
		logger:   opts.Logger.WithField("component", "ws"),
		sessions: make(map[string]*session),
	}

	io.OnConnect("/", s.onConnect)
	io.OnDisconnect("/", s.onDisconnect)
	io.OnError("/", func(c socketio.Conn, e error) {
		s.logger.WithError(e).Warn("Socket error")
	})
	s.registerEventHandlers()

	return s
}

// registerEventHandlers registers all client events
func (s *Server) registerEventHandlers() {
	s.io.OnEvent("/", EventRefresh, s.handleRefresh)
	s.io.OnEvent("/", EventThemeSet, s.handleThemeSet)
	s.io.OnEvent("/", EventDateFormatSet, s.handleDateFormatSet)
	s.io.OnEvent("/", EventSystemScheme, s.handleSystemScheme)

	s.logger.Debug("Event handlers registered")
}

// Start runs the Socket.IO event loop
func (s *Server) Start() {
	go func() {
		if err := s.io.Serve(); err != nil {
			s.logger.WithError(err).Error("Socket.IO server stopped")
		}
	}()
	s.logger.Info("Socket.IO server initialized")
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.io.ServeHTTP(w, r)
}

// Handler wraps the server with the client id check
func (s *Server) Handler() http.Handler {
	return RequireClientID(s, s.logger)
}

// Sessions returns the number of live sessions
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Close stops every session and the Socket.IO server
func (s *Server) Close(ctx context.Context) error {
	s.mu.Lock()
	sessions := make([]*session, 0, len(s.sessions))
	for id, sess := range s.sessions {
		sessions = append(sessions, sess)
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		for _, sess := range sessions {
			sess.dash.Stop()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.logger.Warn("Timed out stopping sessions")
	}
	return s.io.Close()
}

func (s *Server) track(id string, sess *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = sess
}

func (s *Server) untrack(id string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	return sess, ok
}
