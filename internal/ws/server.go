package ws

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"codesync/internal/metrics"
	"codesync/internal/models"
	"codesync/internal/session"
)

// Dispatcher consumes typed inbound session events.
type Dispatcher interface {
	Dispatch(session.Event)
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// Server terminates websocket sessions: it upgrades HTTP requests, assigns
// connection ids, decodes inbound frames into session events, and runs the
// disconnect sequence when a connection drops.
type Server struct {
	groups     *Groups
	dispatcher Dispatcher
	log        *zap.Logger
}

func NewServer(groups *Groups, dispatcher Dispatcher, log *zap.Logger) *Server {
	return &Server{groups: groups, dispatcher: dispatcher, log: log}
}

// Handle upgrades the request and pumps inbound frames until the connection
// closes.
func (s *Server) Handle(w http.ResponseWriter, r *http.Request) {
	sock, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer sock.Close()

	conn := NewConn(sock)
	s.groups.AddConn(conn)
	metrics.ActiveConnections.Inc()
	s.log.Info("client connected", zap.String("connId", conn.ID))

	defer func() {
		// Leave bookkeeping runs while the connection is still grouped, then
		// the transport deregisters its memberships.
		s.dispatcher.Dispatch(session.Disconnect{ConnID: conn.ID})
		s.groups.RemoveConn(conn.ID)
		metrics.ActiveConnections.Dec()
		s.log.Info("client disconnected", zap.String("connId", conn.ID))
	}()

	for {
		var frame models.Frame
		if err := sock.ReadJSON(&frame); err != nil {
			return
		}
		s.route(conn.ID, frame)
	}
}

// route maps a wire frame to a typed session event and dispatches it. Frames
// with unknown event names are dropped without signaling either party.
func (s *Server) route(connID string, frame models.Frame) {
	metrics.SocketEvents.WithLabelValues(frame.Event).Inc()

	switch frame.Event {
	case models.EventJoin:
		var p models.JoinRequest
		decode(frame.Data, &p)
		s.dispatcher.Dispatch(session.Join{ConnID: connID, RoomID: p.RoomID, Username: p.Username})
	case models.EventCodeUpdate:
		var p models.CodeUpdate
		decode(frame.Data, &p)
		s.dispatcher.Dispatch(session.CodeUpdate{ConnID: connID, RoomID: p.RoomID, Code: p.Code})
	case models.EventLanguageUpdate:
		var p models.LanguageUpdate
		decode(frame.Data, &p)
		s.dispatcher.Dispatch(session.LanguageUpdate{ConnID: connID, RoomID: p.RoomID, Language: p.LanguageUsed})
	case models.EventTypingStart:
		var p models.TypingEvent
		decode(frame.Data, &p)
		s.dispatcher.Dispatch(session.TypingStart{ConnID: connID, RoomID: p.RoomID, Username: p.Username})
	case models.EventTypingStop:
		var p models.TypingEvent
		decode(frame.Data, &p)
		s.dispatcher.Dispatch(session.TypingStop{ConnID: connID, RoomID: p.RoomID, Username: p.Username})
	case models.EventLeave:
		var p models.LeaveRequest
		decode(frame.Data, &p)
		s.dispatcher.Dispatch(session.Leave{ConnID: connID, RoomID: p.RoomID})
	default:
		s.log.Debug("dropping unknown event", zap.String("event", frame.Event))
	}
}

func decode(in any, out any) {
	b, _ := json.Marshal(in)
	_ = json.Unmarshal(b, out)
}
