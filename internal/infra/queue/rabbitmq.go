package mq

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/memodb-io/rentspot/internal/config"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	heartbeat       = 10 * time.Second
	confirmTimeout  = 5 * time.Second
	defaultPrefetch = 10
)

// ErrNacked means the broker refused to take responsibility for a message.
var ErrNacked = errors.New("rabbitmq: publish not confirmed")

// DialFunc opens a new broker connection.
type DialFunc func() (*amqp.Connection, error)

// brokerURL reports the URL to dial and whether TLS is required. Enabling
// TLS on a plain amqp:// URL upgrades it to amqps://.
func brokerURL(cfg *config.Config) (string, bool) {
	u := cfg.RabbitMQ.URL
	secure := cfg.RabbitMQ.EnableTLS || strings.HasPrefix(u, "amqps://")
	if secure && strings.HasPrefix(u, "amqp://") {
		u = "amqps://" + strings.TrimPrefix(u, "amqp://")
	}
	return u, secure
}

// Dialer returns a DialFunc whose connections show up in the broker under
// the application name.
func Dialer(cfg *config.Config) DialFunc {
	return func() (*amqp.Connection, error) {
		u, secure := brokerURL(cfg)
		props := amqp.NewConnectionProperties()
		props.SetClientConnectionName(cfg.App.Name)
		ac := amqp.Config{Heartbeat: heartbeat, Locale: "en_US", Properties: props}
		if secure {
			ac.TLSClientConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		return amqp.DialConfig(u, ac)
	}
}

// headers carries trace context in amqp message headers.
type headers amqp.Table

func (h headers) Get(key string) string {
	s, _ := h[key].(string)
	return s
}

func (h headers) Set(key, value string) { h[key] = value }

func (h headers) Keys() []string { return slices.Sorted(maps.Keys(h)) }

// declareExchange declares the durable topic exchange used for domain events.
func declareExchange(ch *amqp.Channel, name string) error {
	return ch.ExchangeDeclare(name, amqp.ExchangeTopic, true, false, false, false, nil)
}

// Publisher sends JSON events on a confirm-mode channel: PublishJSON returns
// only after the broker acked the message.
type Publisher struct {
	ch      *amqp.Channel
	log     *zap.Logger
	appName string
}

func NewPublisher(conn *amqp.Connection, log *zap.Logger, cfg *config.Config) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("enable confirms: %w", err)
	}
	if err := declareExchange(ch, cfg.RabbitMQ.ExchangeName.Review); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", cfg.RabbitMQ.ExchangeName.Review, err)
	}
	return &Publisher{ch: ch, log: log, appName: cfg.App.Name}, nil
}

func (p *Publisher) Close() error { return p.ch.Close() }

// newPublishing wraps an encoded event. The routing key doubles as the
// message type so consumers can tell events apart without decoding.
func newPublishing(ctx context.Context, appName, routingKey string, body []byte) amqp.Publishing {
	h := headers{}
	otel.GetTextMapPropagator().Inject(ctx, h)
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Type:         routingKey,
		AppId:        appName,
		Timestamp:    time.Now().UTC(),
		Headers:      amqp.Table(h),
		Body:         body,
	}
}

func (p *Publisher) PublishJSON(ctx context.Context, exchangeName string, routingKey string, body any) error {
	b, err := sonic.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", routingKey, err)
	}

	ctx, span := otel.Tracer(p.appName).Start(ctx, "publish "+routingKey,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "rabbitmq"),
			attribute.String("messaging.destination.name", exchangeName),
			attribute.String("messaging.rabbitmq.destination.routing_key", routingKey),
			attribute.Int("messaging.message.body.size", len(b)),
		))
	defer span.End()

	msg := newPublishing(ctx, p.appName, routingKey, b)
	dc, err := p.ch.PublishWithDeferredConfirmWithContext(ctx, exchangeName, routingKey, false, false, msg)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, confirmTimeout)
	defer cancel()
	acked, err := dc.WaitContext(waitCtx)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("confirm %s: %w", routingKey, err)
	}
	if !acked {
		span.RecordError(ErrNacked)
		return ErrNacked
	}
	p.log.Debug("event published", zap.String("routing_key", routingKey), zap.String("message_id", msg.MessageId))
	return nil
}

// Consumer delivers review events from the rating queue.
type Consumer struct {
	ch      *amqp.Channel
	queue   string
	log     *zap.Logger
	appName string
}

// NewConsumer declares the rating queue, binds it to the review exchange and
// applies the configured prefetch.
func NewConsumer(conn *amqp.Connection, cfg *config.Config, log *zap.Logger) (*Consumer, error) {
	rc := cfg.RabbitMQ
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	fail := func(step string, err error) (*Consumer, error) {
		_ = ch.Close()
		return nil, fmt.Errorf("%s: %w", step, err)
	}

	prefetch := rc.Prefetch
	if prefetch <= 0 {
		prefetch = defaultPrefetch
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return fail("set prefetch", err)
	}
	if err := declareExchange(ch, rc.ExchangeName.Review); err != nil {
		return fail("declare exchange "+rc.ExchangeName.Review, err)
	}
	q, err := ch.QueueDeclare(rc.QueueName.RatingRecalc, true, false, false, false, nil)
	if err != nil {
		return fail("declare queue "+rc.QueueName.RatingRecalc, err)
	}
	if err := ch.QueueBind(q.Name, rc.RoutingKey.ReviewChanged, rc.ExchangeName.Review, false, nil); err != nil {
		return fail("bind queue "+q.Name, err)
	}
	return &Consumer{ch: ch, queue: q.Name, log: log, appName: cfg.App.Name}, nil
}

func (c *Consumer) Close() error { return c.ch.Close() }

type settlement int

const (
	settleAck settlement = iota
	settleRequeue
	settleDrop
)

// settle decides the fate of a delivery: a failure is retried once and a
// message that fails again on redelivery is dropped.
func settle(err error, redelivered bool) settlement {
	switch {
	case err == nil:
		return settleAck
	case redelivered:
		return settleDrop
	default:
		return settleRequeue
	}
}

// Handle consumes until ctx is done.
func (c *Consumer) Handle(ctx context.Context, handler func(context.Context, []byte) error) error {
	msgs, err := c.ch.Consume(c.queue, c.appName, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.queue, err)
	}
	tracer := otel.Tracer(c.appName)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-msgs:
			if !ok {
				return errors.New("consumer channel closed")
			}
			msgCtx := otel.GetTextMapPropagator().Extract(ctx, headers(m.Headers))
			msgCtx, span := tracer.Start(msgCtx, "process "+m.Type,
				trace.WithSpanKind(trace.SpanKindConsumer),
				trace.WithAttributes(
					attribute.String("messaging.system", "rabbitmq"),
					attribute.String("messaging.destination.name", c.queue),
					attribute.String("messaging.message.id", m.MessageId),
					attribute.Bool("messaging.rabbitmq.redelivered", m.Redelivered),
				))

			herr := handler(msgCtx, m.Body)
			if herr != nil {
				span.RecordError(herr)
			}
			switch settle(herr, m.Redelivered) {
			case settleAck:
				_ = m.Ack(false)
			case settleRequeue:
				c.log.Warn("requeue event", zap.String("message_id", m.MessageId), zap.Error(herr))
				_ = m.Nack(false, true)
			case settleDrop:
				c.log.Error("drop event after redelivery", zap.String("message_id", m.MessageId), zap.Error(herr))
				_ = m.Nack(false, false)
			}
			span.End()
		}
	}
}
