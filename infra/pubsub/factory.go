package pubsub

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-amqp/v3/pkg/amqp"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Factory builds watermill AMQP publishers and subscribers bound to durable
// topic exchanges. The handler topic passed to Publish/Subscribe is the AMQP
// routing key; exchange and queue names are fixed at build time.
type Factory struct {
	url    string
	logger watermill.LoggerAdapter
}

func NewFactory(url string, logger watermill.LoggerAdapter) *Factory {
	return &Factory{url: url, logger: logger}
}

func (f *Factory) BuildPublisher(exchange string) (message.Publisher, error) {
	cfg := amqp.NewDurablePubSubConfig(f.url, nil)
	cfg.Exchange = amqp.ExchangeConfig{
		GenerateName: func(string) string { return exchange },
		Type:         "topic",
		Durable:      true,
	}
	cfg.Publish.GenerateRoutingKey = func(topic string) string { return topic }

	return amqp.NewPublisher(cfg, f.logger)
}

func (f *Factory) BuildSubscriber(queue, exchange string) (message.Subscriber, error) {
	cfg := amqp.NewDurablePubSubConfig(f.url, amqp.GenerateQueueNameConstant(queue))
	cfg.Exchange = amqp.ExchangeConfig{
		GenerateName: func(string) string { return exchange },
		Type:         "topic",
		Durable:      true,
	}
	cfg.QueueBind.GenerateRoutingKey = func(topic string) string { return topic }

	return amqp.NewSubscriber(cfg, f.logger)
}
