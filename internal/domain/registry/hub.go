package registry

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/opengram/realtime-delivery-service/internal/domain/event"
	"github.com/opengram/realtime-delivery-service/internal/domain/model"
)

// Hubber is the gateway for presence tracking and event routing.
type Hubber interface {
	Register(conn Connector)
	Deregister(userID string, connID uuid.UUID) bool
	Lookup(userID string) (Connector, bool)
	IsConnected(userID string) bool
	ListOnline() []string
	Broadcast(ev event.Eventer) bool
	BroadcastAll(ev event.Eventer)
	Stats() model.HubStats
	Shutdown()
}

// Interface guard
var _ Hubber = (*Hub)(nil)

// Hub is the process-wide presence registry: user identity -> live
// connection. One entry per user at any instant; a reconnect logically
// replaces the previous entry (last-connection-wins). All state lives
// behind a single mutex, and the mutex is never held across a Send.
type Hub struct {
	mu    sync.Mutex
	conns map[string]Connector

	startedAt time.Time
	delivered atomic.Uint64
	dropped   atomic.Uint64

	config hubConfig
}

type hubConfig struct {
	sendTimeout time.Duration
}

func NewHub(opts ...Option) *Hub {
	h := &Hub{
		conns:     make(map[string]Connector),
		startedAt: time.Now(),
		config: hubConfig{
			sendTimeout: 500 * time.Millisecond,
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register inserts or replaces the entry for the connection's user. The
// replacement is logical only: the superseded handle is not closed here and
// dies with its own transport (its late Deregister is guarded below).
func (h *Hub) Register(conn Connector) {
	h.mu.Lock()
	h.conns[conn.GetUserID()] = conn
	h.mu.Unlock()
}

// Deregister removes the entry only when the stored handle still matches
// the one requesting removal, so an old, already-replaced connection
// disconnecting late cannot evict its successor.
func (h *Hub) Deregister(userID string, connID uuid.UUID) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	cur, ok := h.conns[userID]
	if !ok || cur.GetID() != connID {
		return false
	}
	delete(h.conns, userID)
	return true
}

// Lookup resolves a user identity to its live connection. O(1), never
// blocks on I/O.
func (h *Hub) Lookup(userID string) (Connector, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conn, ok := h.conns[userID]
	return conn, ok
}

func (h *Hub) IsConnected(userID string) bool {
	_, ok := h.Lookup(userID)
	return ok
}

// ListOnline returns a stable snapshot of all registered identities.
func (h *Hub) ListOnline() []string {
	h.mu.Lock()
	ids := make([]string, 0, len(h.conns))
	for id := range h.conns {
		ids = append(ids, id)
	}
	h.mu.Unlock()

	sort.Strings(ids)
	return ids
}

// Broadcast routes an event to its target user. Presence is re-resolved
// here, at push time, never from a stale earlier lookup. Returns false when
// the user is offline or the handle turned stale in between; both are
// normal terminal states for a push attempt.
func (h *Hub) Broadcast(ev event.Eventer) bool {
	conn, ok := h.Lookup(ev.GetUserID())
	if !ok {
		return false
	}

	if !conn.Send(ev, h.config.sendTimeout) {
		h.dropped.Add(1)
		return false
	}
	h.delivered.Add(1)
	return true
}

// BroadcastAll pushes the event to every registered connection. The
// connector set is snapshotted under the lock; the sends happen after
// release so a slow consumer cannot stall registry operations.
func (h *Hub) BroadcastAll(ev event.Eventer) {
	h.mu.Lock()
	snapshot := make([]Connector, 0, len(h.conns))
	for _, conn := range h.conns {
		snapshot = append(snapshot, conn)
	}
	h.mu.Unlock()

	for _, conn := range snapshot {
		if conn.Send(ev, h.config.sendTimeout) {
			h.delivered.Add(1)
		} else {
			h.dropped.Add(1)
		}
	}
}

func (h *Hub) Stats() model.HubStats {
	h.mu.Lock()
	online := len(h.conns)
	h.mu.Unlock()

	return model.HubStats{
		OnlineUsers: online,
		Delivered:   h.delivered.Load(),
		Dropped:     h.dropped.Load(),
		Uptime:      time.Since(h.startedAt),
	}
}

// Shutdown pushes a farewell to every live handle and resets the registry.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	conns := make([]Connector, 0, len(h.conns))
	for _, conn := range h.conns {
		conns = append(conns, conn)
	}
	h.conns = make(map[string]Connector)
	h.mu.Unlock()

	farewell := event.NewSystemEvent("", event.Disconnected, event.PriorityHigh, &model.DisconnectedPayload{
		Reason: "server shutting down",
		Code:   "SHUTDOWN",
	})
	for _, conn := range conns {
		conn.Send(farewell, h.config.sendTimeout)
		conn.Close()
	}
}
