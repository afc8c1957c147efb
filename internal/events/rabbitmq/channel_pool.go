package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"storefront/pkg/lib/logger/sl"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the part of *amqp.Channel the pool and the publisher use.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

// ChannelPool shares one connection between a fixed number of channels.
// Every channel declares the queue it publishes to.
type ChannelPool struct {
	log        *slog.Logger
	conn       *amqp.Connection
	channels   chan Channel
	newChannel func() (Channel, error)
	mu         sync.Mutex
	closed     bool
	queueName  string
}

func NewChannelPool(log *slog.Logger, url string, queueName string, size int) (*ChannelPool, error) {
	const op = "events.rabbitmq.NewChannelPool"

	if size < 1 {
		return nil, fmt.Errorf("%s: pool size must be positive, got %d", op, size)
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect to RabbitMQ: %w", op, err)
	}

	pool := newPool(log, size, nil)
	pool.conn = conn
	pool.queueName = queueName
	pool.newChannel = pool.createChannel

	if err := pool.fill(size); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("rabbitmq channel pool created", slog.Int("size", size), slog.String("queue", queueName))
	return pool, nil
}

func newPool(log *slog.Logger, size int, newChannel func() (Channel, error)) *ChannelPool {
	return &ChannelPool{
		log:        log,
		channels:   make(chan Channel, size),
		newChannel: newChannel,
	}
}

func (p *ChannelPool) fill(size int) error {
	for i := 0; i < size; i++ {
		ch, err := p.newChannel()
		if err != nil {
			return fmt.Errorf("failed to create channel %d: %w", i, err)
		}
		p.channels <- ch
	}
	return nil
}

func (p *ChannelPool) createChannel() (Channel, error) {
	ch, err := p.conn.Channel()
	if err != nil {
		return nil, err
	}

	if err := DeclareQueue(ch, p.queueName); err != nil {
		ch.Close()
		return nil, err
	}

	return ch, nil
}

// Get waits for a free channel. Closed channels are replaced on the way out.
func (p *ChannelPool) Get(ctx context.Context) (Channel, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case ch, ok := <-p.channels:
		if !ok {
			return nil, amqp.ErrClosed
		}
		if ch.IsClosed() {
			fresh, err := p.newChannel()
			if err != nil {
				p.Put(ch)
				return nil, err
			}
			return fresh, nil
		}
		return ch, nil
	}
}

// Put hands a channel back. Broken channels go back too so the slot is kept;
// Get replaces them. A channel that does not fit is closed.
func (p *ChannelPool) Put(ch Channel) {
	if ch == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		ch.Close()
		return
	}

	select {
	case p.channels <- ch:
	default:
		ch.Close()
	}
}

func (p *ChannelPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true

	close(p.channels)
	for ch := range p.channels {
		ch.Close()
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			p.log.Warn("failed to close rabbitmq connection", sl.Err(err))
		}
	}
	p.log.Info("rabbitmq channel pool closed")
}

// DeclareQueue declares a durable queue. Declaring is idempotent.
func DeclareQueue(ch *amqp.Channel, name string) error {
	_, err := ch.QueueDeclare(
		name,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %q: %w", name, err)
	}
	return nil
}
