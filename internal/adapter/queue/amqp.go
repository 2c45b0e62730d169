package queue

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the subset of amqp091.Channel the client needs. Narrowed so
// tests can stand in a fake broker.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Connection interface {
	Channel() (Channel, error)
	IsClosed() bool
	Close() error
}

// Dialer opens a fresh broker connection. The client calls it lazily on the
// first publish and again on every reconnect.
type Dialer func() (Connection, error)

// AMQPDialer returns a Dialer backed by amqp091.
func AMQPDialer(url string) Dialer {
	return func() (Connection, error) {
		conn, err := amqp.Dial(url)
		if err != nil {
			return nil, err
		}
		return amqpConnection{conn}, nil
	}
}

type amqpConnection struct{ *amqp.Connection }

func (c amqpConnection) Channel() (Channel, error) {
	return c.Connection.Channel()
}
