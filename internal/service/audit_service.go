package service

import (
	"context"

	"smart-blog-be/internal/pkg/logger"
	"smart-blog-be/pkg/events"
	pktNats "smart-blog-be/pkg/nats"
)

const auditDurableName = "post-audit"

// EventSubscriber is the subscribing side of the event bus
// (pkg/nats.Subscriber).
type EventSubscriber interface {
	Subscribe(subject string, durableName string, handler pktNats.EventHandler) error
}

type IAuditService interface {
	Start() error
	Handle(ctx context.Context, event events.Event) error
}

// auditService writes every post lifecycle event seen on the bus to the
// system log, giving an activity trail that survives restarts of the API.
type auditService struct {
	subscriber EventSubscriber
	logger     logger.ILogger
}

func NewAuditService(subscriber EventSubscriber, log logger.ILogger) IAuditService {
	return &auditService{subscriber: subscriber, logger: log}
}

func (s *auditService) Start() error {
	return s.subscriber.Subscribe(pktNats.SubjectPrefix+"*", auditDurableName, s.Handle)
}

func (s *auditService) Handle(ctx context.Context, event events.Event) error {
	if !events.IsPostEvent(event.EventType()) {
		return nil
	}

	details := map[string]interface{}{
		"event":       event.EventType(),
		"occurred_at": event.Timestamp(),
	}
	for k, v := range event.Payload() {
		details[k] = v
	}
	s.logger.Info("AUDIT", "Post event", details)
	return nil
}
