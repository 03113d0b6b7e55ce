package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/pkg/common"

	"github.com/redis/go-redis/v9"
)

// EventRepository publishes triggered-alert events and mirrors the latest
// observed prices for other consumers.
type EventRepository interface {
	PublishTriggered(ctx context.Context, event *dto.TriggeredEvent) error
	RecordLastPrices(ctx context.Context, snapshot dto.PriceSnapshot) error
}

type eventRepository struct {
	redisClient *redis.Client
}

// NewEventRepository creates a new redis-backed EventRepository.
func NewEventRepository(redisClient *redis.Client) EventRepository {
	return &eventRepository{redisClient: redisClient}
}

func (r *eventRepository) PublishTriggered(ctx context.Context, event *dto.TriggeredEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal triggered event: %w", err)
	}

	if err := r.redisClient.XAdd(ctx, &redis.XAddArgs{
		Stream: common.RedisStreamAlertTriggered,
		Values: map[string]interface{}{"payload": payload},
	}).Err(); err != nil {
		return fmt.Errorf("failed to publish triggered event: %w", err)
	}
	return nil
}

func (r *eventRepository) RecordLastPrices(ctx context.Context, snapshot dto.PriceSnapshot) error {
	if len(snapshot) == 0 {
		return nil
	}

	pipe := r.redisClient.Pipeline()
	for symbol, price := range snapshot {
		pipe.Set(ctx, fmt.Sprintf(common.RedisKeyLastPrice, symbol), price, 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record last prices: %w", err)
	}
	return nil
}
