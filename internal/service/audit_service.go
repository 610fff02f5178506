package service

import (
	"context"

	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IAuditService interface {
	Consume(ctx context.Context) error
}

type auditService struct {
	subscriber message.Subscriber
	logger     logger.ILogger
}

// NewAuditService writes every domain event to auditLogger, which should be
// an isolated file logger.
func NewAuditService(subscriber message.Subscriber, auditLogger logger.ILogger) IAuditService {
	return &auditService{
		subscriber: subscriber,
		logger:     auditLogger,
	}
}

// Consume subscribes and processes messages in the background until ctx is done.
func (a *auditService) Consume(ctx context.Context) error {
	messages, err := a.subscriber.Subscribe(ctx, events.Topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			a.processMessage(msg)
		}
	}()

	return nil
}

func (a *auditService) processMessage(msg *message.Message) {
	// Malformed payloads are acked too; redelivery would not fix them.
	defer msg.Ack()

	event, err := events.Unmarshal(msg.Payload)
	if err != nil {
		a.logger.Warn("AUDIT", "Dropping malformed event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	a.logger.Info("AUDIT", event.Type, map[string]interface{}{
		"message_id":  msg.UUID,
		"occurred_at": event.OccurredAt,
		"data":        event.Data,
	})
}
