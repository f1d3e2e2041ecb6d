package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hilthontt/scenario-tracker/internal/infrastructure/contracts"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ScenarioExchange   = "scenario"
	DeadLetterExchange = "dlx"
)

type RabbitMQ struct {
	conn    *amqp.Connection
	Channel *amqp.Channel
}

func NewRabbitMQ(uri string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %v", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create channel: %v", err)
	}

	rmq := &RabbitMQ{
		conn:    conn,
		Channel: ch,
	}

	if err := rmq.declareTopology(); err != nil {
		rmq.Close()
		return nil, err
	}

	return rmq, nil
}

func (r *RabbitMQ) Close() {
	if r.Channel != nil {
		r.Channel.Close()
	}
	if r.conn != nil {
		r.conn.Close()
	}
}

func (r *RabbitMQ) declareTopology() error {
	if err := r.Channel.ExchangeDeclare(
		ScenarioExchange, "topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %v", ScenarioExchange, err)
	}

	if err := r.Channel.ExchangeDeclare(
		DeadLetterExchange, "fanout",
		true, false, false, false, nil,
	); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %v", DeadLetterExchange, err)
	}

	if err := r.declareAndBindQueue(DeadLetterQueue, []string{"#"}, DeadLetterExchange, nil); err != nil {
		return err
	}

	changeEvents := []string{
		contracts.EventScenarioInserted,
		contracts.EventScenarioModified,
		contracts.EventScenarioRemoved,
		contracts.EventScenarioUnknown,
	}

	// Quorum queue so redeliveries carry an x-delivery-count header; a
	// classic queue only flags Redelivered and the retry bound could never
	// be reached. Exhausted deliveries route to the DLX instead of
	// requeueing forever.
	args := amqp.Table{
		"x-queue-type":           "quorum",
		"x-dead-letter-exchange": DeadLetterExchange,
	}

	return r.declareAndBindQueue(AuditQueue, changeEvents, ScenarioExchange, args)
}

func (r *RabbitMQ) declareAndBindQueue(queueName string, messageTypes []string, exchange string, args amqp.Table) error {
	q, err := r.Channel.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		args,
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %v", queueName, err)
	}

	for _, msg := range messageTypes {
		if err := r.Channel.QueueBind(
			q.Name,   // queue name
			msg,      // routing key
			exchange, // exchange
			false,
			nil,
		); err != nil {
			return fmt.Errorf("failed to bind queue to %s: %v", queueName, err)
		}
	}

	return nil
}

func (r *RabbitMQ) PublishMessage(ctx context.Context, routingKey string, msg contracts.AmqpMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %v", err)
	}

	return r.Channel.PublishWithContext(ctx,
		ScenarioExchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// ConsumeMessages delivers queue messages to handler until ctx is
// cancelled. A handler error requeues the delivery until maxAttempts is
// reached; after that the message is rejected to the dead-letter exchange
// and dropped from the work queue.
func (r *RabbitMQ) ConsumeMessages(ctx context.Context, queueName string, maxAttempts int, handler func(ctx context.Context, msg amqp.Delivery) error) error {
	deliveries, err := r.Channel.Consume(
		queueName,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to consume from %s: %v", queueName, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel for %s closed", queueName)
			}

			if err := handler(ctx, msg); err != nil {
				if exhaustedDelivery(msg, maxAttempts) {
					_ = msg.Reject(false) // dead-letter
				} else {
					_ = msg.Nack(false, true) // requeue
				}
				continue
			}

			_ = msg.Ack(false)
		}
	}
}

// exhaustedDelivery reports whether this delivery is the message's last
// allowed attempt.
func exhaustedDelivery(msg amqp.Delivery, maxAttempts int) bool {
	return deliveryCount(msg) >= maxAttempts
}

// deliveryCount reads how many times the broker has handed us this message
// from the x-delivery-count header quorum queues attach on redelivery. The
// Redelivered flag is a fallback should the queue ever be redeclared
// classic.
func deliveryCount(msg amqp.Delivery) int {
	if v, ok := msg.Headers["x-delivery-count"]; ok {
		switch count := v.(type) {
		case int32:
			return int(count) + 1
		case int64:
			return int(count) + 1
		}
	}

	if msg.Redelivered {
		return 2
	}
	return 1
}
