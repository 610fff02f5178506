package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordingForwarder struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (r *recordingForwarder) Publish(_ context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

func (r *recordingForwarder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func newBus(t *testing.T) *gochannel.GoChannel {
	bus := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = bus.Close() })
	return bus
}

func TestAuditLogsEveryEvent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bus := newBus(t)
	core, logs := observer.New(zapcore.InfoLevel)

	audit := NewAuditService(bus, logger.New(zap.New(core)))
	require.NoError(t, audit.Consume(ctx))

	publisher := NewEventPublisher(bus, nil, logger.NewNop())
	publisher.Publish(ctx, events.New(events.ChatCreated, map[string]interface{}{"chat_id": "c1"}))

	assert.Eventually(t, func() bool {
		return logs.FilterMessage(events.ChatCreated).Len() == 1
	}, time.Second, 5*time.Millisecond)

	entry := logs.FilterMessage(events.ChatCreated).All()[0]
	assert.Equal(t, "AUDIT", entry.ContextMap()["module"])
}

func TestAuditDropsMalformedPayloads(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bus := newBus(t)
	core, logs := observer.New(zapcore.InfoLevel)

	require.NoError(t, NewAuditService(bus, logger.New(zap.New(core))).Consume(ctx))
	require.NoError(t, bus.Publish(events.Topic, message.NewMessage(watermill.NewUUID(), []byte("{"))))
	require.NoError(t, bus.Publish(events.Topic, message.NewMessage(watermill.NewUUID(), []byte(`{"data":{}}`))))

	assert.Eventually(t, func() bool {
		return logs.FilterMessage("Dropping malformed event").Len() == 2
	}, time.Second, 5*time.Millisecond)
	for _, e := range logs.All() {
		assert.Equal(t, zapcore.WarnLevel, e.Level)
	}
}

func TestPublisherForwards(t *testing.T) {
	ctx := context.Background()
	forwarder := &recordingForwarder{}
	publisher := NewEventPublisher(newBus(t), forwarder, logger.NewNop())

	publisher.Publish(ctx, events.New(events.UserLoggedIn, nil))
	assert.Equal(t, 1, forwarder.count())
}

func TestPublisherSwallowsForwardFailures(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.WarnLevel)
	forwarder := &recordingForwarder{err: errors.New("nats: no responders")}
	publisher := NewEventPublisher(newBus(t), forwarder, logger.New(zap.New(core)))

	publisher.Publish(ctx, events.New(events.ChatDeleted, nil))
	assert.Equal(t, 1, forwarder.count())
	assert.Equal(t, 1, logs.FilterMessage("Failed to forward event").Len())
}
