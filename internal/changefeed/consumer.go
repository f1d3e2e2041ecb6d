package changefeed

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hilthontt/scenario-tracker/internal/domain"
	"github.com/hilthontt/scenario-tracker/internal/infrastructure/contracts"
	"github.com/hilthontt/scenario-tracker/internal/infrastructure/logging"
	"github.com/hilthontt/scenario-tracker/internal/infrastructure/messaging"
	"github.com/rabbitmq/amqp091-go"
)

type Consumer struct {
	rabbitmq    *messaging.RabbitMQ
	audit       domain.AuditRepository
	maxAttempts int
	logger      logging.Logger
}

func NewConsumer(rabbitmq *messaging.RabbitMQ, audit domain.AuditRepository, maxAttempts int, logger logging.Logger) *Consumer {
	return &Consumer{
		rabbitmq:    rabbitmq,
		audit:       audit,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

// Listen consumes the feed until ctx is cancelled. Deliveries are handled
// one at a time; a failing event is redelivered up to maxAttempts and then
// dead-lettered, so one bad event cannot block the rest of the feed.
func (c *Consumer) Listen(ctx context.Context) error {
	return c.rabbitmq.ConsumeMessages(ctx, messaging.AuditQueue, c.maxAttempts, c.handle)
}

func (c *Consumer) handle(ctx context.Context, msg amqp091.Delivery) error {
	var envelope contracts.AmqpMessage
	if err := json.Unmarshal(msg.Body, &envelope); err != nil {
		// Malformed envelopes will never parse; drop instead of requeueing.
		c.logger.Error(logging.ChangeFeed, logging.Consume, "dropping unparseable message", map[logging.ExtraKey]any{
			logging.ErrorMessage: err.Error(),
		})
		return nil
	}

	var event ChangeEvent
	if err := json.Unmarshal(envelope.Data, &event); err != nil {
		c.logger.Error(logging.ChangeFeed, logging.Consume, "dropping unparseable change event", map[logging.ExtraKey]any{
			logging.EventID:      envelope.EventID,
			logging.ErrorMessage: err.Error(),
		})
		return nil
	}

	entry := deriveEntry(event, time.Now().UTC())

	if err := c.audit.Log(ctx, entry); err != nil {
		c.logger.Error(logging.ChangeFeed, logging.Derive, "failed to write audit entry", map[logging.ExtraKey]any{
			logging.EventID:      event.ID,
			logging.ScenarioID:   entry.ScenarioID,
			logging.ErrorMessage: err.Error(),
		})
		return err
	}

	c.logger.Info(logging.ChangeFeed, logging.Derive, "audit entry recorded", map[logging.ExtraKey]any{
		logging.EventID:    event.ID,
		logging.ScenarioID: entry.ScenarioID,
	})

	return nil
}
