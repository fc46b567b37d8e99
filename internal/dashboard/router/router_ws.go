package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/impactlab/aiboard/internal/dashboard/metrics"
	"github.com/impactlab/aiboard/pkg/log"
	"github.com/impactlab/aiboard/pkg/ws"
)

func (rt *Router) wsRouter(r fiber.Router, auth fiber.Handler) {
	r.Use("/ws", auth, func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	r.Get("/ws", ws.Handle(rt.hub, &liveHandler{}))
}

// liveHandler wires websocket lifecycle events to logs and the
// subscriber gauge. Clients only receive; the single inbound message
// honored is a "ping" probe.
type liveHandler struct{}

func (h *liveHandler) OnConnect(conn ws.Conn) error {
	metrics.EventSubscribers.Inc()
	log.Infow("websocket connected", "connId", conn.ID(), "remote", conn.RemoteAddr())
	return nil
}

func (h *liveHandler) OnMessage(conn ws.Conn, messageType int, data []byte) error {
	if messageType == ws.TextMessage && string(data) == "ping" {
		return conn.WriteMessage(ws.TextMessage, []byte("pong"))
	}
	return nil
}

func (h *liveHandler) OnDisconnect(conn ws.Conn, err error) {
	metrics.EventSubscribers.Dec()
	log.Infow("websocket disconnected", "connId", conn.ID(), "error", err)
}

func (h *liveHandler) OnError(conn ws.Conn, err error) {
	log.Warnw("websocket error", "connId", conn.ID(), "error", err)
}
