// Package notifier publishes status change events to interested consumers.
// Events go out over Redis pub/sub after the owning transaction commits, so a
// delivered event always refers to persisted state. Delivery is at-most-once;
// consumers needing history read the status log tables instead.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

const (
	orderChannel    = "orders.status-changed"
	shipmentChannel = "shipments.status-changed"
)

// RedisPublisher sends status change events to Redis pub/sub channels.
type RedisPublisher struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisPublisher connects to Redis at redisURL and verifies the connection
// with a ping.
//
// Example:
//
//	publisher, err := notifier.NewRedisPublisher(ctx, "redis://localhost:6379/0", logger)
func NewRedisPublisher(ctx context.Context, redisURL string, logger *slog.Logger) (*RedisPublisher, error) {
	if redisURL == "" {
		return nil, errs.NewValueIsRequiredError("redisURL")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisPublisher{client: client, logger: logger}, nil
}

type statusChangedMessage struct {
	EntityID   string `json:"entity_id"`
	Axis       string `json:"axis"`
	From       string `json:"from"`
	To         string `json:"to"`
	OccurredAt string `json:"occurred_at"`
}

// PublishOrderStatusChanged announces an order status or production change.
func (p *RedisPublisher) PublishOrderStatusChanged(ctx context.Context, event ports.StatusChangedEvent) error {
	return p.publish(ctx, orderChannel, event)
}

// PublishShipmentStatusChanged announces a shipment status change.
func (p *RedisPublisher) PublishShipmentStatusChanged(ctx context.Context, event ports.StatusChangedEvent) error {
	return p.publish(ctx, shipmentChannel, event)
}

func (p *RedisPublisher) publish(ctx context.Context, channel string, event ports.StatusChangedEvent) error {
	message := statusChangedMessage{
		EntityID:   event.EntityID.String(),
		Axis:       event.Axis,
		From:       event.From,
		To:         event.To,
		OccurredAt: event.OccurredAt.UTC().Format(time.RFC3339),
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal status event: %w", err)
	}

	if err := p.client.Publish(ctx, channel, payload).Err(); err != nil {
		p.logger.Error("failed to publish status event",
			"channel", channel,
			"entity_id", message.EntityID,
			"error", err,
		)
		return fmt.Errorf("failed to publish status event: %w", err)
	}
	return nil
}

// Close releases the Redis connection.
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
