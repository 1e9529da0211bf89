package amqp

import (
	"context"
	"encoding/json"
	"runtime/debug"

	"github.com/ThreeDotsLabs/watermill/message"
)

// DomainHandler defines the functional signature for business logic.
type DomainHandler[T any] func(ctx context.Context, payload *T) error

// Bind connects a watermill consumer to a typed domain handler. Malformed
// payloads are acked and dropped; business failures are nacked so the retry
// policy and poison queue take over.
func Bind[T any](h *SocialEventHandler, fn DomainHandler[T]) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		defer func() {
			if r := recover(); r != nil {
				h.logger.Error("panic recovered in consumer",
					"err", r,
					"stack", string(debug.Stack()),
					"msg_id", msg.UUID)
			}
		}()

		payload := new(T)
		if err := json.Unmarshal(msg.Payload, payload); err != nil {
			h.logger.Error("undecodable payload dropped", "err", err, "msg_id", msg.UUID)
			return nil
		}

		return fn(msg.Context(), payload)
	}
}
