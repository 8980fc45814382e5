package redis

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"

	"socialhub/internal/domain"
	"socialhub/pkg/logger"
)

type RedisBidEventSubscriber struct {
	client *redis.Client
	log    logger.Logger
}

func NewRedisBidEventSubscriber(client *redis.Client, log logger.Logger) *RedisBidEventSubscriber {
	return &RedisBidEventSubscriber{
		client: client,
		log:    log,
	}
}

// SubscribeToBidEvents blocks until the context is canceled, invoking the
// handler for every bid event on the bus. Handler failures are logged and
// skipped; one bad event must not stall the stream.
func (r *RedisBidEventSubscriber) SubscribeToBidEvents(ctx context.Context, handler domain.BidEventHandler) error {
	pubsub := r.client.Subscribe(ctx, bidEventsChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()

	r.log.Info("Subscribed to bid events")

	for {
		select {
		case msg := <-ch:
			var event domain.BidEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				r.log.Error("Failed to parse bid event", "payload", msg.Payload, "error", err)
				continue
			}
			if err := handler(&event); err != nil {
				r.log.Error("Failed to handle bid event", "auction_id", event.AuctionID, "error", err)
			}

		case <-ctx.Done():
			r.log.Info("Bid event subscriber stopped")
			return ctx.Err()
		}
	}
}
