// Package live streams order events to connected admin dashboards over websockets.
package live

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	clientBufferSize = 16
	broadcastBuffer  = 256
)

// Message is the frame sent to every subscriber.
type Message struct {
	Topic string `json:"topic"`
	Key   string `json:"key"`
	Event any    `json:"event"`
}

type client struct {
	conn      *websocket.Conn
	send      chan []byte
	closeOnce sync.Once
}

func (c *client) close() {
	c.closeOnce.Do(func() { close(c.send) })
}

// Hub fans published events out to subscribers. Slow subscribers miss
// frames rather than stall publishers.
type Hub struct {
	topics map[string]bool

	mu      sync.RWMutex
	clients map[*client]struct{}
	stopped bool

	broadcast chan []byte
	done      chan struct{}
	stopOnce  sync.Once
}

func NewHub(topics ...string) *Hub {
	h := &Hub{
		topics:    make(map[string]bool, len(topics)),
		clients:   make(map[*client]struct{}),
		broadcast: make(chan []byte, broadcastBuffer),
		done:      make(chan struct{}),
	}
	for _, t := range topics {
		h.topics[t] = true
	}
	return h
}

// Run delivers broadcasts until ctx is done or Stop is called, then
// disconnects every subscriber.
func (h *Hub) Run(ctx context.Context) {
	defer h.closeAll()
	for {
		select {
		case msg := <-h.broadcast:
			h.mu.RLock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
				}
			}
			h.mu.RUnlock()
		case <-ctx.Done():
			return
		case <-h.done:
			return
		}
	}
}

func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// PublishEvent queues the event for subscribers when its topic is streamed.
// It never blocks and never fails.
func (h *Hub) PublishEvent(_ context.Context, topic, key string, event any) error {
	if !h.topics[topic] {
		return nil
	}
	data, err := json.Marshal(Message{Topic: topic, Key: key, Event: event})
	if err != nil {
		return err
	}
	select {
	case h.broadcast <- data:
	default:
	}
	return nil
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) add(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.close()
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopped = true
	for c := range h.clients {
		delete(h.clients, c)
		c.close()
	}
}
