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

// Package event carries project change notifications from the write
// path to live subscribers (websocket and SSE sessions). When redis is
// configured, events also fan out to peer instances over pub/sub so
// every instance pushes the change to its own clients.
package event

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/impactlab/aiboard/internal/dashboard/consts"
	"github.com/impactlab/aiboard/internal/dashboard/model"
	"github.com/impactlab/aiboard/pkg/id"
	"github.com/impactlab/aiboard/pkg/log"
	"github.com/impactlab/aiboard/pkg/safe"
)

const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// ProjectEvent is a single change notification.
type ProjectEvent struct {
	Type    string        `json:"type"`
	Project model.Project `json:"project"`
}

// Handler receives events. Handlers run on the publisher's goroutine
// and must not block. A handler must not call its own unsubscribe
// synchronously: delivery holds the bus lock that unsubscribe needs,
// so unsubscribing from inside a handler deadlocks.
type Handler func(ProjectEvent)

type wireEvent struct {
	Instance string       `json:"instance"`
	Event    ProjectEvent `json:"event"`
}

type Bus struct {
	mu       sync.RWMutex
	nextId   int
	handlers map[int]Handler

	client   *redis.Client
	instance string
	pubsub   *redis.PubSub
	cancel   context.CancelFunc
}

// NewBus creates the bus. client may be nil, in which case events stay
// within this process.
func NewBus(client *redis.Client) *Bus {
	b := &Bus{
		handlers: make(map[int]Handler),
		client:   client,
		instance: id.ShortId(),
	}
	if client != nil {
		ctx, cancel := context.WithCancel(context.Background())
		b.cancel = cancel
		b.pubsub = client.Subscribe(ctx, consts.ProjectEventChannel)
		safe.Go(func() { b.relay() })
	}
	return b
}

// Subscribe registers a handler and returns an idempotent unsubscribe
// func. Once unsubscribe returns, the handler will not be called again.
func (b *Bus) Subscribe(h Handler) func() {
	b.mu.Lock()
	b.nextId++
	key := b.nextId
	b.handlers[key] = h
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.handlers, key)
			b.mu.Unlock()
		})
	}
}

// Publish delivers the event to local subscribers and fans it out to
// peer instances. The redis publish is best effort.
func (b *Bus) Publish(ev ProjectEvent) {
	b.dispatch(ev)

	if b.client == nil {
		return
	}
	payload, err := json.Marshal(wireEvent{Instance: b.instance, Event: ev})
	if err != nil {
		log.Warnw("failed to marshal project event for fan-out", "error", err)
		return
	}
	if err := b.client.Publish(context.Background(), consts.ProjectEventChannel, payload).Err(); err != nil {
		log.Warnw("failed to publish project event to redis", "error", err)
	}
}

// SubscriberCount returns the number of registered handlers.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers)
}

// Close stops the redis relay. Local subscribers stay registered.
func (b *Bus) Close() {
	if b.cancel != nil {
		b.cancel()
	}
	if b.pubsub != nil {
		_ = b.pubsub.Close()
	}
}

// dispatch holds the read lock for the duration of delivery so that an
// unsubscribe that has returned can never race a late delivery.
func (b *Bus) dispatch(ev ProjectEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, h := range b.handlers {
		h(ev)
	}
}

// relay feeds events published by peer instances into local handlers,
// skipping our own messages since those were dispatched synchronously.
func (b *Bus) relay() {
	for msg := range b.pubsub.Channel() {
		var we wireEvent
		if err := json.Unmarshal([]byte(msg.Payload), &we); err != nil {
			log.Warnw("failed to unmarshal fan-out project event", "error", err)
			continue
		}
		if we.Instance == b.instance {
			continue
		}
		b.dispatch(we.Event)
	}
}
