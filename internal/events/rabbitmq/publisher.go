package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"storefront/internal/models"
	"storefront/pkg/lib/logger/sl"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	OrderPlacedType = "order.placed"
	publishTimeout  = 5 * time.Second
)

type Publisher struct {
	log       *slog.Logger
	pool      *ChannelPool
	queueName string
}

func NewPublisher(log *slog.Logger, pool *ChannelPool, queueName string) *Publisher {
	return &Publisher{
		log:       log,
		pool:      pool,
		queueName: queueName,
	}
}

// PublishOrderPlaced sends the event as a persistent JSON message on the
// default exchange, routed by queue name.
func (p *Publisher) PublishOrderPlaced(ctx context.Context, event models.OrderPlacedEvent) error {
	const op = "events.rabbitmq.PublishOrderPlaced"
	log := p.log.With("op", op, slog.String("order_id", event.OrderId.String()))

	msg, err := orderPlacedMessage(event)
	if err != nil {
		log.Error("Failed to encode event", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	ch, err := p.pool.Get(ctx)
	if err != nil {
		log.Error("Failed to get channel from pool", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	defer p.pool.Put(ch)

	if err := ch.PublishWithContext(ctx,
		"",          // exchange
		p.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		msg,
	); err != nil {
		log.Error("Failed to publish event", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Debug("order placed event published")
	return nil
}

func orderPlacedMessage(event models.OrderPlacedEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, err
	}

	return amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Type:         OrderPlacedType,
		MessageId:    event.OrderId.String(),
		Timestamp:    event.PlacedAt,
		Body:         body,
	}, nil
}
