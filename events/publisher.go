package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Topics the league core publishes on. Delivery is fire-and-forget; nobody
// in this module ever waits on a subscriber.
const (
	TopicGameResults = "game:events:results"
	TopicLiveScores  = "game:events:live"
)

// Publisher is the outbound event channel. Failures are for the caller to
// log, never to propagate.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

type redisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(addr string) (Publisher, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("error connecting to redis at %s: %w", addr, err)
	}
	return &redisPublisher{client: client}, nil
}

func (p *redisPublisher) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error serializing event for %s: %w", topic, err)
	}
	if err := p.client.Publish(ctx, topic, data).Err(); err != nil {
		return fmt.Errorf("error publishing to %s: %w", topic, err)
	}
	return nil
}

// NopPublisher drops every event. Used when redis is not configured and in
// tests that don't care about events.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, topic string, payload any) error {
	return nil
}
