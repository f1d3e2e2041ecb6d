package changefeed

import (
	"context"
	"encoding/json"

	"github.com/hilthontt/scenario-tracker/internal/infrastructure/contracts"
	"github.com/hilthontt/scenario-tracker/internal/infrastructure/messaging"
)

type Publisher struct {
	rabbitmq *messaging.RabbitMQ
}

func NewPublisher(rabbitmq *messaging.RabbitMQ) *Publisher {
	return &Publisher{
		rabbitmq: rabbitmq,
	}
}

func (p *Publisher) Publish(ctx context.Context, event ChangeEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.rabbitmq.PublishMessage(ctx, routingKey(event.Kind), contracts.AmqpMessage{
		EventID: event.ID,
		Data:    payload,
	})
}
