package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/minaorangina/tupelo/players"
	"github.com/minaorangina/tupelo/protocol"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// HandleWS streams the caller's events over a websocket, one JSON event per
// message. It drains the same queue as get_events.
func (g *GameServer) HandleWS(c *gin.Context) {
	playerID, err := g.store.Authenticate(akey(c))
	if err != nil {
		g.writeError(c, err)
		return
	}
	p, err := g.store.Player(playerID)
	if err != nil {
		g.writeError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// the upgrader has already replied
		g.log.Warn("could not upgrade to websocket", zap.Error(err))
		return
	}

	log := g.log.With(zap.String("player_id", playerID))
	log.Debug("event stream opened")
	closed := make(chan struct{})
	go readPump(conn, closed)
	writePump(conn, p, closed, log)
	log.Debug("event stream closed")
}

// readPump only handles control frames; clients do not send anything
func readPump(conn *websocket.Conn, closed chan struct{}) {
	defer close(closed)

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}

func writePump(conn *websocket.Conn, p *players.ProxyPlayer, closed chan struct{}, log *zap.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		if err := writeEvents(conn, p.PopEvents()); err != nil {
			log.Debug("event write failed", zap.Error(err))
			return
		}

		select {
		case <-p.Notify():
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-closed:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

func writeEvents(conn *websocket.Conn, events protocol.EventList) error {
	for _, e := range events {
		data, err := protocol.MarshalEvent(e)
		if err != nil {
			return err
		}
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return err
		}
	}
	return nil
}
