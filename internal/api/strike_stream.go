package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/example/skillspace/internal/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const streamWriteWait = 5 * time.Second

// StreamMessage is one frame of the strike progress stream
type StreamMessage struct {
	Type  string               `json:"type"` // connected, progress, complete
	Event *session.StrikeEvent `json:"event,omitempty"`
}

// handleStrikeStream pushes strike ticks to a websocket until the client
// leaves or the session closes
func (s *Server) handleStrikeStream(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("failed to upgrade to websocket", zap.Error(err))
		return
	}
	defer conn.Close()

	events, unsubscribe := sess.Subscribe()
	defer unsubscribe()

	s.logger.Info("strike stream connected", zap.String("session", sess.ID()))

	hello := StreamMessage{Type: "connected"}
	if st, ok := sess.ActiveStrike(); ok {
		hello.Event = &session.StrikeEvent{Strike: st}
	}
	if err := s.writeStream(conn, hello); err != nil {
		return
	}

	// The client never sends anything we use; reading detects its departure.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					s.logger.Debug("websocket read error", zap.Error(err))
				}
				return
			}
		}
	}()

	for {
		select {
		case <-gone:
			return
		case ev, ok := <-events:
			if !ok {
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "session closed"),
					time.Now().Add(streamWriteWait))
				return
			}
			msg := StreamMessage{Type: "progress", Event: &ev}
			if ev.Reward != nil {
				msg.Type = "complete"
			}
			if err := s.writeStream(conn, msg); err != nil {
				return
			}
		}
	}
}

func (s *Server) writeStream(conn *websocket.Conn, msg StreamMessage) error {
	conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
	if err := conn.WriteJSON(msg); err != nil {
		s.logger.Debug("websocket write failed", zap.Error(err))
		return err
	}
	return nil
}
