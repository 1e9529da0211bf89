package registry

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/opengram/realtime-delivery-service/internal/domain/event"
)

// Interface guard
var _ Connector = (*connect)(nil)

// Connector is the opaque handle to one live bidirectional channel. The
// registry and services only see this interface; the concrete type stays
// private so transports cannot reach into its internals.
type Connector interface {
	GetID() uuid.UUID
	GetUserID() string
	Send(ev event.Eventer, timeout time.Duration) bool
	Recv() <-chan event.Eventer
	Closed() bool
	Close()
}

type connect struct {
	id        uuid.UUID
	userID    string
	createdAt time.Time

	ctx      context.Context
	cancelFn context.CancelFunc

	// gate orders in-flight Sends before the mailbox close: senders hold the
	// read side, Close takes the write side only after cancelFn unblocked them.
	gate   sync.RWMutex
	sendCh chan event.Eventer

	closeOnce sync.Once
	closed    atomic.Bool

	droppedCount atomic.Uint64
}

// NewConnector creates a handle bound to the authenticated user identity.
// The buffered mailbox decouples event producers from the transport write
// loop and preserves per-connection delivery order.
func NewConnector(ctx context.Context, userID string, bufferSize int) Connector {
	childCtx, cancel := context.WithCancel(ctx)

	return &connect{
		id:        uuid.New(),
		userID:    userID,
		createdAt: time.Now(),
		ctx:       childCtx,
		cancelFn:  cancel,
		sendCh:    make(chan event.Eventer, bufferSize),
	}
}

func (c *connect) GetID() uuid.UUID  { return c.id }
func (c *connect) GetUserID() string { return c.userID }

func (c *connect) Closed() bool { return c.closed.Load() }

// Send pushes an event into the mailbox, waiting up to timeout for space.
// A closed or stale handle returns false instead of panicking: a push racing
// a disconnect must degrade to "recipient offline", never crash the process.
func (c *connect) Send(ev event.Eventer, timeout time.Duration) bool {
	c.gate.RLock()
	defer c.gate.RUnlock()

	if c.closed.Load() {
		return false
	}

	// Fast path when the mailbox has room.
	select {
	case c.sendCh <- ev:
		return true
	default:
	}

	// The mailbox is saturated by a slow consumer. Low-priority events are
	// best-effort and get shed immediately; anything above waits for space.
	if ev.GetPriority() <= event.PriorityLow {
		c.droppedCount.Add(1)
		return false
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-c.ctx.Done():
		c.droppedCount.Add(1)
		return false
	case c.sendCh <- ev:
		return true
	case <-timer.C:
		// Persistent slow consumer; shed the event rather than block the
		// caller's pipeline.
		c.droppedCount.Add(1)
		return false
	}
}

func (c *connect) Recv() <-chan event.Eventer { return c.sendCh }

// Close terminates the handle. Safe to call from the transport (defer), the
// registry (shutdown) and services concurrently; the teardown runs once.
func (c *connect) Close() {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		// Unblock any Send stuck in its select before taking the write gate.
		c.cancelFn()

		c.gate.Lock()
		// Closing the mailbox signals the transport write loop (via !ok)
		// to flush its goodbye frame and exit.
		close(c.sendCh)
		c.gate.Unlock()
	})
}
