package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	amqp "github.com/rabbitmq/amqp091-go"
)

var publishTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "broker_publish_total",
		Help: "Broker publish attempts by routing key and outcome",
	},
	[]string{"routing_key", "outcome"},
)

// Topology names the exchange and the two queues fed by it. The payment
// queue is bound to order.created exactly; the notification queue matches any
// single-segment order.* key.
type Topology struct {
	Exchange          string
	PaymentQueue      string
	NotificationQueue string
}

func DefaultTopology() Topology {
	return Topology{
		Exchange:          "orders_exchange",
		PaymentQueue:      "payment_requests",
		NotificationQueue: "notification_requests",
	}
}

// RabbitClient owns a single connection/channel pair. All access is
// serialized by mu: concurrent publishers share the one channel, and any of
// them may trigger a reconnect.
type RabbitClient struct {
	mu   sync.Mutex
	dial Dialer
	top  Topology
	log  *slog.Logger

	conn Connection
	ch   Channel
}

func NewRabbitClient(dial Dialer, top Topology, log *slog.Logger) *RabbitClient {
	return &RabbitClient{dial: dial, top: top, log: log}
}

// Publish marshals message as JSON and delivers it to the exchange with the
// given routing key, persistent. On a failed attempt it reconnects once and
// retries exactly once; the second failure surfaces to the caller.
func (c *RabbitClient) Publish(ctx context.Context, routingKey string, message any) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureOpen(); err != nil {
		publishTotal.WithLabelValues(routingKey, "error").Inc()
		return fmt.Errorf("connect: %w", err)
	}

	if err := c.publish(ctx, routingKey, body); err != nil {
		c.log.Warn("publish failed, reconnecting for single retry",
			"routing_key", routingKey, "error", err)
		if rerr := c.reconnect(); rerr != nil {
			publishTotal.WithLabelValues(routingKey, "error").Inc()
			c.log.Error("reconnect failed", "routing_key", routingKey, "error", rerr)
			return fmt.Errorf("reconnect after failed publish: %w", rerr)
		}
		if err := c.publish(ctx, routingKey, body); err != nil {
			publishTotal.WithLabelValues(routingKey, "error").Inc()
			c.log.Error("publish retry failed", "routing_key", routingKey, "error", err)
			return fmt.Errorf("publish after retry: %w", err)
		}
	}

	publishTotal.WithLabelValues(routingKey, "ok").Inc()
	c.log.Info("message published", "exchange", c.top.Exchange, "routing_key", routingKey)
	return nil
}

// Close releases the connection. Safe to call more than once.
func (c *RabbitClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	var err error
	if !c.conn.IsClosed() {
		err = c.conn.Close()
	}
	c.conn = nil
	c.ch = nil
	return err
}

// ensureOpen connects lazily; the caller holds mu.
func (c *RabbitClient) ensureOpen() error {
	if c.conn != nil && !c.conn.IsClosed() && c.ch != nil {
		return nil
	}
	return c.connect()
}

func (c *RabbitClient) reconnect() error {
	if c.conn != nil && !c.conn.IsClosed() {
		_ = c.conn.Close()
	}
	c.conn = nil
	c.ch = nil
	return c.connect()
}

func (c *RabbitClient) connect() error {
	conn, err := c.dial()
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}
	if err := declareTopology(ch, c.top); err != nil {
		_ = conn.Close()
		return err
	}
	c.conn = conn
	c.ch = ch
	return nil
}

// declareTopology is idempotent: durable declarations with identical
// arguments are no-ops on the broker.
func declareTopology(ch Channel, top Topology) error {
	if err := ch.ExchangeDeclare(
		top.Exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	for _, q := range []string{top.PaymentQueue, top.NotificationQueue} {
		if _, err := ch.QueueDeclare(
			q,
			true,  // durable
			false, // auto-delete
			false, // exclusive
			false, // no-wait
			nil,
		); err != nil {
			return fmt.Errorf("declare queue %s: %w", q, err)
		}
	}

	if err := ch.QueueBind(top.PaymentQueue, "order.created", top.Exchange, false, nil); err != nil {
		return fmt.Errorf("bind payment queue: %w", err)
	}
	if err := ch.QueueBind(top.NotificationQueue, "order.*", top.Exchange, false, nil); err != nil {
		return fmt.Errorf("bind notification queue: %w", err)
	}
	return nil
}

func (c *RabbitClient) publish(ctx context.Context, routingKey string, body []byte) error {
	return c.ch.PublishWithContext(
		ctx,
		c.top.Exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent, // survive broker restarts
			Body:         body,
		},
	)
}
