package fulfillment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	databaseerrors "storefront/internal/database"
	"storefront/internal/events/rabbitmq"
	"storefront/internal/models"
	"storefront/pkg/lib/logger/sl"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

type OrderStorage interface {
	AdvanceOrderStatus(ctx context.Context, id uuid.UUID, from, to string) (bool, error)
}

// Processor moves placed orders into processing. Orders that already left
// pending are not touched.
type Processor struct {
	log    *slog.Logger
	orders OrderStorage
}

func NewProcessor(log *slog.Logger, orders OrderStorage) *Processor {
	return &Processor{
		log:    log,
		orders: orders,
	}
}

// Handle settles exactly one delivery. Messages that can never succeed are
// dropped; storage failures are requeued.
func (p *Processor) Handle(ctx context.Context, msg amqp.Delivery) {
	const op = "fulfillment.Handle"
	log := p.log.With("op", op, slog.Uint64("delivery_tag", msg.DeliveryTag))

	var event models.OrderPlacedEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil || event.OrderId == uuid.Nil {
		if err == nil {
			err = errors.New("order id is missing")
		}
		log.Warn("Dropping malformed message", sl.Err(err))
		p.settle(log, msg.Nack(false, false))
		return
	}
	log = log.With(slog.String("order_id", event.OrderId.String()))

	advanced, err := p.orders.AdvanceOrderStatus(ctx, event.OrderId, models.StatusPending, models.StatusProcessing)
	switch {
	case err == nil && advanced:
		log.Info("order is processing")
		p.settle(log, msg.Ack(false))
	case err == nil:
		log.Info("order is no longer pending, skipping")
		p.settle(log, msg.Ack(false))
	case errors.Is(err, databaseerrors.ErrNotFound):
		log.Warn("Dropping message for unknown order", sl.Err(err))
		p.settle(log, msg.Nack(false, false))
	default:
		log.Error("Failed to update order, requeueing", sl.Err(err))
		p.settle(log, msg.Nack(false, true))
	}
}

func (p *Processor) settle(log *slog.Logger, err error) {
	if err != nil {
		log.Error("Failed to settle message", sl.Err(err))
	}
}

// Worker consumes the queue on its own channel, one message at a time.
type Worker struct {
	id        int
	log       *slog.Logger
	channel   *amqp.Channel
	queueName string
	processor *Processor
}

func NewWorker(id int, log *slog.Logger, conn *amqp.Connection, queueName string, processor *Processor) (*Worker, error) {
	const op = "fulfillment.NewWorker"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open channel for worker %d: %w", op, id, err)
	}

	if err := rabbitmq.DeclareQueue(ch, queueName); err != nil {
		ch.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := ch.Qos(
		1,     // prefetch count
		0,     // prefetch size
		false, // global
	); err != nil {
		ch.Close()
		return nil, fmt.Errorf("%s: failed to set QoS for worker %d: %w", op, id, err)
	}

	return &Worker{
		id:        id,
		log:       log.With(slog.Int("worker", id)),
		channel:   ch,
		queueName: queueName,
		processor: processor,
	}, nil
}

// Start consumes until ctx is done or the broker closes the channel.
func (w *Worker) Start(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()
	defer w.channel.Close()

	msgs, err := w.channel.ConsumeWithContext(ctx,
		w.queueName,
		fmt.Sprintf("fulfillment-%d", w.id),
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		w.log.Error("Failed to register consumer", sl.Err(err))
		return
	}

	w.log.Info("worker started")
	for {
		select {
		case <-ctx.Done():
			w.log.Info("worker stopped")
			return
		case msg, ok := <-msgs:
			if !ok {
				w.log.Warn("delivery channel closed")
				return
			}
			w.processor.Handle(ctx, msg)
		}
	}
}
