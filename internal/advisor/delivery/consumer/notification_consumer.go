package consumer

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/internal/advisor/repository"
	"golang-stock-advisor/pkg/common"
	"golang-stock-advisor/pkg/logger"
	"golang-stock-advisor/pkg/telegram"
	"golang-stock-advisor/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// NotificationConsumer delivers triggered-alert events from the Redis stream
// to their owners over Telegram.
type NotificationConsumer struct {
	redisClient *redis.Client
	userRepo    repository.UserRepository
	notifier    telegram.Notifier
	logger      *logger.Logger
	stopChan    chan struct{}
	wg          sync.WaitGroup
}

// NewNotificationConsumer creates a new NotificationConsumer.
func NewNotificationConsumer(redisClient *redis.Client, userRepo repository.UserRepository, notifier telegram.Notifier, log *logger.Logger) *NotificationConsumer {
	return &NotificationConsumer{
		redisClient: redisClient,
		userRepo:    userRepo,
		notifier:    notifier,
		logger:      log,
		stopChan:    make(chan struct{}),
	}
}

// Start begins the consumer loop.
func (c *NotificationConsumer) Start(ctx context.Context) {
	c.logger.Info("Notification consumer started")
	c.wg.Add(1)
	utils.GoSafe(func() {
		defer c.wg.Done()
		for {
			select {
			case <-ctx.Done():
				c.logger.Info("Notification consumer stopping due to context cancellation")
				return
			case <-c.stopChan:
				c.logger.Info("Notification consumer stopping")
				return
			default:
				c.processEvent(ctx)
			}
		}
	})
}

// Stop signals the consumer loop to exit and waits for it.
func (c *NotificationConsumer) Stop() {
	close(c.stopChan)
	c.wg.Wait()
}

func (c *NotificationConsumer) processEvent(ctx context.Context) {
	streams, err := c.redisClient.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    common.RedisStreamGroup,
		Consumer: common.RedisStreamConsumer,
		Streams:  []string{common.RedisStreamAlertTriggered, ">"},
		Count:    1,
		Block:    2 * time.Second,
		NoAck:    true,
	}).Result()

	if err != nil {
		if err == context.Canceled || err == redis.Nil {
			return
		}
		c.logger.Error("Failed to read from stream", logger.ErrorField(err))
		return
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return
	}

	message := streams[0].Messages[0]

	payload, ok := message.Values["payload"].(string)
	if !ok {
		c.logger.Error("field 'payload' not found or not a string in stream message", logger.Field("message_id", message.ID))
		c.ackNDel(ctx, message.ID)
		return
	}

	var event dto.TriggeredEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		c.logger.Error("Failed to unmarshal triggered event", logger.ErrorField(err), logger.Field("message_id", message.ID))
		// Acknowledge so a malformed message is never reprocessed.
		c.ackNDel(ctx, message.ID)
		return
	}

	if err := c.notify(ctx, &event); err != nil {
		c.logger.Error("Failed to deliver alert notification",
			logger.ErrorField(err),
			logger.Field("alert_id", event.AlertID))
		return
	}

	c.ackNDel(ctx, message.ID)
}

func (c *NotificationConsumer) notify(ctx context.Context, event *dto.TriggeredEvent) error {
	user, err := c.userRepo.GetByID(ctx, event.UserID)
	if err != nil {
		return err
	}

	msg := telegram.FormatTriggeredAlert(
		event.Symbol,
		string(event.Condition),
		event.TargetPrice,
		event.ObservedPrice,
		event.TriggeredAt,
	)
	if err := c.notifier.SendMessageUser(msg, user.TelegramID); err != nil {
		return err
	}

	c.logger.Info("Alert notification delivered",
		logger.Field("alert_id", event.AlertID),
		logger.StringField("symbol", event.Symbol))
	return nil
}

func (c *NotificationConsumer) ackNDel(ctx context.Context, messageID string) {
	if err := c.redisClient.XAck(ctx, common.RedisStreamAlertTriggered, common.RedisStreamGroup, messageID).Err(); err != nil {
		c.logger.Error("Failed to acknowledge message", logger.ErrorField(err), logger.Field("message_id", messageID))
	}
	if err := c.redisClient.XDel(ctx, common.RedisStreamAlertTriggered, messageID).Err(); err != nil {
		c.logger.Error("Failed to delete message", logger.ErrorField(err), logger.Field("message_id", messageID))
	}
}
