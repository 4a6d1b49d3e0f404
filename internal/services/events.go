package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"shopchat-backend/internal/models"
)

// ChatEventsChannel is the Redis pub/sub channel chat events are published on.
const ChatEventsChannel = "chat_events"

// EventPublisher receives one event per handled chat request.
type EventPublisher interface {
	Publish(ctx context.Context, evt models.ChatEvent)
}

// NoopEventPublisher drops every event.
type NoopEventPublisher struct{}

func (NoopEventPublisher) Publish(context.Context, models.ChatEvent) {}

// RedisEventPublisher fans chat events out over Redis pub/sub.
type RedisEventPublisher struct {
	redis   *redis.Client
	channel string
	timeout time.Duration
}

func NewRedisEventPublisher(client *redis.Client) *RedisEventPublisher {
	return &RedisEventPublisher{
		redis:   client,
		channel: ChatEventsChannel,
		timeout: 2 * time.Second,
	}
}

// Publish never fails the request; errors are only logged.
func (p *RedisEventPublisher) Publish(ctx context.Context, evt models.ChatEvent) {
	data, err := encodeEvent(evt)
	if err != nil {
		log.Printf("failed to encode chat event: %v", err)
		return
	}

	// Detached from the request so a client disconnect does not drop the event.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	if err := p.redis.Publish(pubCtx, p.channel, data).Err(); err != nil {
		log.Printf("failed to publish chat event %s: %v", evt.RequestID, err)
	}
}

func encodeEvent(evt models.ChatEvent) (string, error) {
	if evt.At.IsZero() {
		evt.At = time.Now().UTC()
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
