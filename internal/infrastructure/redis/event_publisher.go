package redis

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"

	"socialhub/internal/domain"
)

const bidEventsChannel = "auction_bid_events"

type RedisBidEventPublisher struct {
	client *redis.Client
}

func NewRedisBidEventPublisher(client *redis.Client) *RedisBidEventPublisher {
	return &RedisBidEventPublisher{client: client}
}

func (r *RedisBidEventPublisher) PublishBidEvent(ctx context.Context, event *domain.BidEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return r.client.Publish(ctx, bidEventsChannel, payload).Err()
}
