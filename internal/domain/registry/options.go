package registry

import "time"

// Option defines a functional configuration type for the Hub.
type Option func(*Hub)

// WithSendTimeout bounds how long a push may wait on a saturated
// per-connection mailbox before the event is shed.
func WithSendTimeout(d time.Duration) Option {
	return func(h *Hub) {
		h.config.sendTimeout = d
	}
}
