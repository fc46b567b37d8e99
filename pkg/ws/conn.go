// Copyright 2025 Aiboard Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ws

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/impactlab/aiboard/pkg/id"
	"github.com/impactlab/aiboard/pkg/safe"
)

// conn WebSocket connection implementation
type conn struct {
	*websocket.Conn
	id        string
	ctx       context.Context
	ctxMu     sync.RWMutex
	hub       Hub
	handler   Handler
	closeOnce sync.Once
	closed    chan struct{}
}

const (
	readLimit  = 1024 * 1024 // dashboard clients only send small control frames
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10 // must be shorter than pongWait
	writeWait  = 10 * time.Second
)

func newConn(wsConn *websocket.Conn, hub Hub, handler Handler) *conn {
	return &conn{
		Conn:    wsConn,
		id:      id.GetUUID(),
		ctx:     context.Background(),
		hub:     hub,
		handler: handler,
		closed:  make(chan struct{}),
	}
}

// ID returns the unique identifier of the connection.
func (c *conn) ID() string {
	return c.id
}

// ReadMessage reads one message.
func (c *conn) ReadMessage() (messageType int, p []byte, err error) {
	return c.Conn.ReadMessage()
}

// WriteMessage writes one message.
func (c *conn) WriteMessage(messageType int, data []byte) error {
	return c.Conn.WriteMessage(messageType, data)
}

// WriteJSON writes a JSON message.
func (c *conn) WriteJSON(v any) error {
	return c.Conn.WriteJSON(v)
}

// ReadJSON reads a JSON message.
func (c *conn) ReadJSON(v any) error {
	return c.Conn.ReadJSON(v)
}

// Close closes the connection exactly once.
func (c *conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closed)
		err = c.Conn.Close()
	})
	return err
}

// RemoteAddr returns the remote address.
func (c *conn) RemoteAddr() string {
	return c.Conn.RemoteAddr().String()
}

// Context returns the connection context.
func (c *conn) Context() context.Context {
	c.ctxMu.RLock()
	defer c.ctxMu.RUnlock()
	return c.ctx
}

// SetContext sets the connection context.
func (c *conn) SetContext(ctx context.Context) {
	c.ctxMu.Lock()
	defer c.ctxMu.Unlock()
	c.ctx = ctx
}

// Handle upgrades a fiber request and runs the connection lifecycle.
func Handle(hub Hub, handler Handler) fiber.Handler {
	return websocket.New(func(wsConn *websocket.Conn) {
		conn := newConn(wsConn, hub, handler)

		wsConn.SetReadLimit(readLimit)
		_ = wsConn.SetReadDeadline(time.Now().Add(pongWait))

		wsConn.SetPongHandler(func(string) error {
			return wsConn.SetReadDeadline(time.Now().Add(pongWait))
		})

		var once sync.Once
		cleanup := func(err error) {
			once.Do(func() {
				if hub != nil {
					hub.Unregister(conn)
				}
				if handler != nil {
					handler.OnDisconnect(conn, err)
				}
			})
			_ = conn.Close()
		}

		if hub != nil {
			hub.Register(conn)
		}

		if handler != nil {
			if err := handler.OnConnect(conn); err != nil {
				handler.OnError(conn, err)
				cleanup(err)
				return
			}
		}
		defer cleanup(nil)

		safe.Go(func() {
			conn.pingTicker()
		})

		for {
			messageType, message, err := conn.ReadMessage()
			if err != nil {
				cleanup(err)
				break
			}

			_ = wsConn.SetReadDeadline(time.Now().Add(pongWait))

			if handler != nil {
				if err := handler.OnMessage(conn, messageType, message); err != nil {
					handler.OnError(conn, err)
				}
			}
		}
	})
}

// pingTicker keeps the connection alive until it is closed.
func (c *conn) pingTicker() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(PingMessage, nil); err != nil {
				return
			}
		case <-c.closed:
			return
		}
	}
}
