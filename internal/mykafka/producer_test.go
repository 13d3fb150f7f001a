package mykafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestProducer_PublishEvent(t *testing.T) {
	w := &fakeWriter{}
	p := &Producer{writer: w}

	err := p.PublishEvent(context.Background(), "order_events", "o-1", map[string]any{"type": "order_created"})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "order_events", msg.Topic)
	assert.Equal(t, "o-1", string(msg.Key))

	var got map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, "order_created", got["type"])

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestProducer_PublishEventWrapsWriteError(t *testing.T) {
	p := &Producer{writer: &fakeWriter{err: errors.New("broker down")}}

	err := p.PublishEvent(context.Background(), "cart_events", "k", map[string]any{"type": "cart_cleared"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cart_events")
}

func TestProducer_PublishEventRejectsUnencodable(t *testing.T) {
	p := &Producer{writer: &fakeWriter{}}
	err := p.PublishEvent(context.Background(), "t", "k", map[string]any{"bad": make(chan int)})
	require.Error(t, err)
}

func TestMessageCarrier_InjectsTraceContext(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	var msg kafka.Message
	carrier := NewMessageCarrier(&msg)
	propagation.TraceContext{}.Inject(ctx, carrier)

	assert.Contains(t, carrier.Keys(), "traceparent")
	assert.Contains(t, carrier.Get("traceparent"), span.SpanContext().TraceID().String())

	carrier.Set("traceparent", "x")
	assert.Equal(t, "x", carrier.Get("traceparent"))
	assert.Len(t, msg.Headers, 1)
}
