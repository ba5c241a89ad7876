package mq

import (
	"context"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/memodb-io/rentspot/internal/config"
)

func TestHeaders(t *testing.T) {
	h := headers(amqp.Table{"count": 3})

	h.Set("traceparent", "00-abc-def-01")

	assert.Equal(t, "00-abc-def-01", h.Get("traceparent"))
	assert.Equal(t, "", h.Get("count"))
	assert.Equal(t, "", h.Get("missing"))
	assert.Equal(t, []string{"count", "traceparent"}, h.Keys())
}

func TestBrokerURL(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		tls        bool
		wantURL    string
		wantSecure bool
	}{
		{name: "plain", url: "amqp://guest:guest@mq:5672/", wantURL: "amqp://guest:guest@mq:5672/"},
		{name: "amqps scheme", url: "amqps://mq:5671/", wantURL: "amqps://mq:5671/", wantSecure: true},
		{name: "tls flag upgrades scheme", url: "amqp://mq:5672/", tls: true, wantURL: "amqps://mq:5672/", wantSecure: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.RabbitMQ.URL = tt.url
			cfg.RabbitMQ.EnableTLS = tt.tls

			u, secure := brokerURL(cfg)

			assert.Equal(t, tt.wantURL, u)
			assert.Equal(t, tt.wantSecure, secure)
		})
	}
}

func TestSettle(t *testing.T) {
	failed := errors.New("db down")

	assert.Equal(t, settleAck, settle(nil, false))
	assert.Equal(t, settleAck, settle(nil, true))
	assert.Equal(t, settleRequeue, settle(failed, false))
	assert.Equal(t, settleDrop, settle(failed, true))
}

func TestNewPublishing(t *testing.T) {
	prev := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(prev) })

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{1},
		SpanID:     trace.SpanID{2},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	first := newPublishing(ctx, "rentspot", "review.changed", []byte(`{"spot_id":3}`))
	second := newPublishing(ctx, "rentspot", "review.changed", nil)

	assert.Equal(t, "application/json", first.ContentType)
	assert.Equal(t, amqp.Persistent, first.DeliveryMode)
	assert.Equal(t, "review.changed", first.Type)
	assert.Equal(t, "rentspot", first.AppId)
	assert.NotEmpty(t, first.MessageId)
	assert.NotEqual(t, first.MessageId, second.MessageId)
	assert.Contains(t, first.Headers["traceparent"], sc.TraceID().String())

	// the consumer side recovers the same trace
	got := trace.SpanContextFromContext(otel.GetTextMapPropagator().Extract(context.Background(), headers(first.Headers)))
	assert.Equal(t, sc.TraceID(), got.TraceID())
}
