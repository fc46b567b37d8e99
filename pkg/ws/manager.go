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
	"maps"
	"sync"
)

// DefaultHub is the default connection manager implementation.
type DefaultHub struct {
	conns map[string]Conn

	// mu guards conns
	mu sync.RWMutex

	broadcast  chan *broadcastMessage
	register   chan Conn
	unregister chan Conn
}

type broadcastMessage struct {
	messageType int
	data        []byte
	excludeID   string // connection to skip, empty broadcasts to all
}

// NewHub creates a new connection manager.
func NewHub() Hub {
	hub := &DefaultHub{
		conns:      make(map[string]Conn),
		broadcast:  make(chan *broadcastMessage, 256),
		register:   make(chan Conn),
		unregister: make(chan Conn),
	}

	go hub.run()

	return hub
}

// run is the hub main loop.
func (h *DefaultHub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.conns[conn.ID()] = conn
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.conns[conn.ID()]; ok {
				delete(h.conns, conn.ID())
				conn.Close()
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.RLock()
			for id, conn := range h.conns {
				if message.excludeID != "" && id == message.excludeID {
					continue
				}
				// async write so one slow client cannot stall the loop
				go func(c Conn) {
					_ = c.WriteMessage(message.messageType, message.data)
				}(conn)
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a new connection.
func (h *DefaultHub) Register(conn Conn) {
	h.register <- conn
}

// Unregister removes a connection.
func (h *DefaultHub) Unregister(conn Conn) {
	h.unregister <- conn
}

// Broadcast sends a message to every connection.
func (h *DefaultHub) Broadcast(messageType int, data []byte) {
	h.broadcast <- &broadcastMessage{
		messageType: messageType,
		data:        data,
	}
}

// BroadcastJSON sends a JSON message to every connection.
func (h *DefaultHub) BroadcastJSON(v any) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, conn := range h.conns {
		go func(c Conn) {
			_ = c.WriteJSON(v)
		}(conn)
	}
}

// SendToID sends a message to the connection with the given ID.
func (h *DefaultHub) SendToID(id string, messageType int, data []byte) error {
	h.mu.RLock()
	conn, ok := h.conns[id]
	h.mu.RUnlock()

	if !ok {
		return ErrConnNotFound
	}

	return conn.WriteMessage(messageType, data)
}

// SendToIDJSON sends a JSON message to the connection with the given ID.
func (h *DefaultHub) SendToIDJSON(id string, v any) error {
	h.mu.RLock()
	conn, ok := h.conns[id]
	h.mu.RUnlock()

	if !ok {
		return ErrConnNotFound
	}

	return conn.WriteJSON(v)
}

// GetConn returns the connection with the given ID.
func (h *DefaultHub) GetConn(id string) (Conn, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	conn, ok := h.conns[id]
	return conn, ok
}

// GetConns returns a copy of all connections.
func (h *DefaultHub) GetConns() map[string]Conn {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conns := make(map[string]Conn, len(h.conns))
	maps.Copy(conns, h.conns)
	return conns
}

// Count returns the number of live connections.
func (h *DefaultHub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}
