package pubsub

import (
	"github.com/ThreeDotsLabs/watermill/message"

	infrapubsub "github.com/opengram/realtime-delivery-service/infra/pubsub"
)

// PublisherProvider builds publishers bound to a fixed topic exchange.
type PublisherProvider struct {
	factory *infrapubsub.Factory
}

func NewPublisherProvider(f *infrapubsub.Factory) *PublisherProvider {
	return &PublisherProvider{factory: f}
}

func (pp *PublisherProvider) Build(exchange string) (message.Publisher, error) {
	return pp.factory.BuildPublisher(exchange)
}

// SubscriberProvider builds subscribers with durable, named queues bound to
// a topic exchange. Every consumer handler gets its own queue.
type SubscriberProvider struct {
	factory *infrapubsub.Factory
}

func NewSubscriberProvider(f *infrapubsub.Factory) *SubscriberProvider {
	return &SubscriberProvider{factory: f}
}

func (sp *SubscriberProvider) Build(queue, exchange string) (message.Subscriber, error) {
	return sp.factory.BuildSubscriber(queue, exchange)
}
