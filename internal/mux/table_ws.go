package mux

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"japjap-server/pkg/playable"
	"japjap-server/pkg/room"
	"japjap-server/pkg/table"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = time.Minute
	pingPeriod = pongWait * 9 / 10
	closeGrace = time.Second
)

// wsSession pumps messages between one websocket and its room client
type wsSession struct {
	conn   *websocket.Conn
	client *room.Client
	log    logrus.FieldLogger
	done   chan struct{}
}

func (m *Mux) getTableUUIDWS() http.HandlerFunc {
	upgrader := &websocket.Upgrader{
		CheckOrigin: func(*http.Request) bool { return true },
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Error("could not upgrade connection")
			return
		}

		tbl := r.Context().Value(ctxTableKey).(*table.Table)
		player := r.Context().Value(ctxPlayerKey).(*table.Player)

		s := &wsSession{
			conn:   conn,
			client: room.NewClient(player, tbl),
			done:   make(chan struct{}),
		}
		s.log = logrus.WithField("client", s.client.String())

		m.pitBoss.ClientConnected(s.client)
		defer func() {
			m.pitBoss.ClientDisconnected(s.client)
			close(s.done)
			_ = conn.Close()
		}()

		go s.writePump()
		s.readPump()
	}
}

func (s *wsSession) readPump() {
	extend := func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	}

	_ = extend("")
	s.conn.SetPongHandler(extend)

	for {
		msg := new(playable.PayloadIn)
		err := s.conn.ReadJSON(msg)
		if err == nil {
			s.client.ReceivedMessage(msg)
			continue
		}

		if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			s.log.WithError(err).Error("could not read message")
		}

		s.client.CloseError = err
		return
	}
}

func (s *wsSession) write(messageType int, data []byte) error {
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(messageType, data)
}

func (s *wsSession) writePump() {
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ping.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case <-s.done:
			return
		case <-ping.C:
			if err := s.write(websocket.PingMessage, nil); err != nil {
				return
			}
		case reason := <-s.client.Kicked():
			_ = s.write(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason))

			// give the peer a moment to answer with its own close frame
			select {
			case <-s.done:
			case <-time.After(closeGrace):
			}
			return
		case msg := <-s.client.Outbox():
			s.log.WithField("message", msg).Trace("writing message")

			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(msg); err != nil {
				s.log.WithError(err).Error("could not write message")
				return
			}
		}
	}
}
