package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/scythe504/spyfall-backend/internal"
	"github.com/scythe504/spyfall-backend/internal/hub"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var (
	upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}

	errMalformed    = errors.New("malformed message")
	errUnknownEvent = errors.New("unknown event type")
)

// =============================================================================
// WEBSOCKET CONNECTION HANDLING
// =============================================================================

// HandleWebSocket upgrades the request, assigns the connection an id and
// serves its frames until it disconnects. The player stays in any room it
// joined; only delivery to it stops.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := hub.NewClient(uuid.NewString(), s.sendBuffer)
	s.hub.Register(client)
	s.hub.Send(client.ID, internal.NewMessage(internal.EventConnected, internal.ConnectedData{ID: client.ID}))

	s.log.Info().Str("player", client.ID).Str("remote", r.RemoteAddr).Msg("connection opened")

	go s.writePump(conn, client)
	s.handleMessages(conn, client)
}

// handleMessages processes inbound frames for one connection.
func (s *Server) handleMessages(conn *websocket.Conn, client *hub.Client) {
	defer func() {
		s.hub.Unregister(client.ID)
		conn.Close()
		s.log.Info().Str("player", client.ID).Msg("connection closed")
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, rawMessage, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn().Err(err).Str("player", client.ID).Msg("websocket read error")
			}
			return
		}

		var baseMsg internal.Message[json.RawMessage]
		if err := json.Unmarshal(rawMessage, &baseMsg); err != nil {
			s.log.Warn().Err(err).Str("player", client.ID).Msg("failed to parse message, dropping")
			continue
		}

		s.log.Debug().Str("player", client.ID).Str("event", baseMsg.Type).Msg("received message")

		err = s.dispatch(client.ID, baseMsg)
		switch {
		case err == nil:
		case errors.Is(err, errMalformed), errors.Is(err, errUnknownEvent):
			s.log.Warn().Err(err).Str("player", client.ID).Str("event", baseMsg.Type).Msg("dropping message")
		default:
			s.hub.Send(client.ID, internal.NewMessage(internal.EventError, internal.ErrorData{Message: err.Error()}))
		}
	}
}

// writePump drains the client's outbox to the socket and keeps the
// connection alive with pings. It exits when the outbox is closed.
func (s *Server) writePump(conn *websocket.Conn, client *hub.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case frame, ok := <-client.Outbox():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				s.log.Warn().Err(err).Str("player", client.ID).Msg("websocket write failed")
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// =============================================================================
// EVENT ROUTING
// =============================================================================

// dispatch routes one inbound event to the engine. Errors other than
// errMalformed and errUnknownEvent are reported to the requester.
func (s *Server) dispatch(connID string, msg internal.Message[json.RawMessage]) error {
	switch msg.Type {
	case internal.EventCreate:
		var data internal.CreateData
		if err := decode(msg.Data, &data); err != nil {
			return err
		}
		s.engine.Create(connID, data.Name)
		return nil

	case internal.EventJoin:
		var data internal.JoinData
		if err := decode(msg.Data, &data); err != nil {
			return err
		}
		_, err := s.engine.Join(data.Code, connID, data.Name)
		return err

	case internal.EventStart:
		var data internal.RoomActionData
		if err := decode(msg.Data, &data); err != nil {
			return err
		}
		return s.engine.Start(data.Code, connID)

	case internal.EventGuess:
		var data internal.GuessData
		if err := decode(msg.Data, &data); err != nil {
			return err
		}
		return s.engine.Guess(data.Code, connID, data.Location)

	case internal.EventVote:
		var data internal.VoteData
		if err := decode(msg.Data, &data); err != nil {
			return err
		}
		return s.engine.Vote(data.Code, connID, data.Target)

	case internal.EventNextRound:
		var data internal.RoomActionData
		if err := decode(msg.Data, &data); err != nil {
			return err
		}
		return s.engine.NextRound(data.Code, connID)

	default:
		return fmt.Errorf("%w: %q", errUnknownEvent, msg.Type)
	}
}

// decode treats a missing payload as the zero value.
func decode(raw json.RawMessage, target any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: %v", errMalformed, err)
	}
	return nil
}
