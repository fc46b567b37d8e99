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

// Package sse streams project change events to browsers that cannot
// or do not want to hold a websocket.
package sse

import (
	"bufio"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/impactlab/aiboard/pkg/log"
)

const pingInterval = 30 * time.Second

type Hub struct {
	mu   sync.RWMutex
	subs map[chan []byte]struct{}

	// optional lifecycle hooks, e.g. for a subscriber gauge
	OnSubscribe   func()
	OnUnsubscribe func()
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[chan []byte]struct{}),
	}
}

// Broadcast fans the payload out to every subscriber. Slow consumers
// are skipped rather than stalling the rest.
func (h *Hub) Broadcast(payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Warnw("failed to marshal sse payload", "error", err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs {
		select {
		case ch <- data:
		default:
		}
	}
}

// Subscribe registers a stream. cancel must be called exactly when the
// consumer goes away; it closes the channel.
func (h *Hub) Subscribe() (ch chan []byte, cancel func()) {
	ch = make(chan []byte, 128)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	if h.OnSubscribe != nil {
		h.OnSubscribe()
	}
	return ch, func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
		close(ch)
		if h.OnUnsubscribe != nil {
			h.OnUnsubscribe()
		}
	}
}

// Count returns the number of live streams.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// HTTPHandler serves the event stream. Each event goes out as one
// "data:" frame; a comment ping keeps idle proxies from cutting the
// connection.
func (h *Hub) HTTPHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, "text/event-stream")
		c.Set(fiber.HeaderCacheControl, "no-cache")
		c.Set(fiber.HeaderConnection, "keep-alive")

		ch, cancel := h.Subscribe()
		c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
			defer cancel()
			ticker := time.NewTicker(pingInterval)
			defer ticker.Stop()
			for {
				select {
				case data, ok := <-ch:
					if !ok {
						return
					}
					if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
						return
					}
					if err := w.Flush(); err != nil {
						return
					}
				case <-ticker.C:
					if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
						return
					}
					if err := w.Flush(); err != nil {
						return
					}
				}
			}
		})
		return nil
	}
}
