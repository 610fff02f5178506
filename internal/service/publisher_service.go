package service

import (
	"context"

	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// EventForwarder ships events out of the process. *nats.Publisher is one.
type EventForwarder interface {
	Publish(ctx context.Context, event events.Event) error
}

// IEventPublisher fans domain events out to the in-process bus and, when
// configured, to the external broker. It never fails the caller.
type IEventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

type eventPublisher struct {
	bus       message.Publisher
	forwarder EventForwarder
	logger    logger.ILogger
}

// NewEventPublisher accepts a nil forwarder when no broker is configured.
func NewEventPublisher(bus message.Publisher, forwarder EventForwarder, logger logger.ILogger) IEventPublisher {
	return &eventPublisher{
		bus:       bus,
		forwarder: forwarder,
		logger:    logger,
	}
}

func (p *eventPublisher) Publish(ctx context.Context, event events.Event) {
	payload, err := events.Marshal(event)
	if err != nil {
		p.logger.Error("EVENTS", "Failed to encode event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err,
		})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_type", event.EventType())
	if err := p.bus.Publish(events.Topic, msg); err != nil {
		p.logger.Error("EVENTS", "Failed to publish event to bus", map[string]interface{}{
			"type":  event.EventType(),
			"error": err,
		})
	}

	if p.forwarder == nil {
		return
	}
	if err := p.forwarder.Publish(ctx, event); err != nil {
		p.logger.Warn("EVENTS", "Failed to forward event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}
