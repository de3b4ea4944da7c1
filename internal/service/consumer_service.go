package service

import (
	"context"
	"encoding/json"
	"time"

	"smart-blog-be/internal/dto"
	"smart-blog-be/internal/metrics"
	"smart-blog-be/internal/pkg/logger"
	"smart-blog-be/internal/repository/cache"
	"smart-blog-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EventPublisher forwards events to the external bus (pkg/nats.Publisher).
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber     message.Subscriber
	topicName      string
	publishedCache cache.PublishedPostCache
	eventPublisher EventPublisher
	logger         logger.ILogger
}

// NewConsumerService handles post-change messages: it drops the published
// cache entry and forwards the change to the event bus. publishedCache and
// eventPublisher may be nil.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	publishedCache cache.PublishedPostCache,
	eventPublisher EventPublisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:     subscriber,
		topicName:      topicName,
		publishedCache: publishedCache,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PostChangedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("CONSUMER", "Failed to unmarshal message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		// Redelivery cannot fix a bad payload.
		msg.Ack()
		return
	}

	if cs.publishedCache != nil {
		cs.publishedCache.Invalidate(ctx, payload.PostId)
	}

	if cs.eventPublisher != nil {
		authorId := ""
		if payload.AuthorId != nil {
			authorId = payload.AuthorId.String()
		}
		evt := events.NewPostEvent(payload.Event, payload.PostId.String(), payload.Title, payload.Status, authorId, payload.OccurredAt)

		pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := cs.eventPublisher.Publish(pubCtx, evt)
		cancel()
		if err != nil {
			// The bus is auxiliary; a failed forward is not retried.
			metrics.EventsForwarded.WithLabelValues("failure").Inc()
			cs.logger.Warn("CONSUMER", "Failed to forward post event", map[string]interface{}{
				"event":   payload.Event,
				"post_id": payload.PostId.String(),
				"error":   err.Error(),
			})
		} else {
			metrics.EventsForwarded.WithLabelValues("success").Inc()
		}
	}

	cs.logger.Debug("CONSUMER", "Post change processed", map[string]interface{}{
		"event":   payload.Event,
		"post_id": payload.PostId.String(),
	})
	msg.Ack()
}
