package pvd

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// Handler receives every envelope read from a connected engine.
type Handler func(remote string, env Envelope)

// Server is the viewer side of the debugger link.
type Server struct {
	upgrader websocket.Upgrader
	handler  Handler
	logger   *log.Logger
}

// NewServer creates a viewer that hands envelopes to h.
func NewServer(h Handler, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		upgrader: websocket.Upgrader{
			// The viewer is a local debugging tool; accept any origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		handler: h,
		logger:  logger,
	}
}

// Mux returns a mux with the server mounted at Path.
func (s *Server) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(Path, s)
	return mux
}

// ServeHTTP upgrades the request and reads envelopes until bye or error.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	remote := r.RemoteAddr
	s.logger.Info("engine connected", "remote", remote)

	conn.SetReadLimit(1 << 20)
	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	})

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("read ended", "remote", remote, "error", err)
			}
			break
		}
		// Every message from the engine extends the deadline
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		env, err := DecodeEnvelope(msg)
		if err != nil {
			s.logger.Warn("bad envelope", "remote", remote, "error", err)
			continue
		}
		if s.handler != nil {
			s.handler(remote, env)
		}
		if env.T == MsgBye {
			break
		}
	}
	s.logger.Info("engine disconnected", "remote", remote)
}
