package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

func Dial(url string) (*amqp.Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}
	return conn, nil
}

func declareEventsExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(
		EventsExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
}

type RabbitPublisher struct {
	ch       *amqp.Channel
	seq      Sequencer
	producer string
	now      func() time.Time
}

func NewRabbitPublisher(conn *amqp.Connection, seq Sequencer, producer string) (*RabbitPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := declareEventsExchange(ch); err != nil {
		return nil, fmt.Errorf("declare events exchange: %w", err)
	}

	if producer == "" {
		producer = DefaultProducer
	}

	return &RabbitPublisher{ch: ch, seq: seq, producer: producer, now: time.Now}, nil
}

func (p *RabbitPublisher) Close() error {
	return p.ch.Close()
}

func (p *RabbitPublisher) PublishOrderPlaced(ctx context.Context, meta EventMeta, payload OrderPlacedPayload) error {
	if meta.PartitionKey == "" {
		meta.PartitionKey = payload.UserID
	}
	return publish(ctx, p, OrderPlacedEventName, OrderPlacedRoutingKey, meta, payload)
}

func (p *RabbitPublisher) PublishSupportTicketSubmitted(ctx context.Context, meta EventMeta, payload SupportTicketPayload) error {
	if meta.PartitionKey == "" {
		meta.PartitionKey = payload.UserID
	}
	return publish(ctx, p, SupportTicketSubmittedEventName, SupportTicketRoutingKey, meta, payload)
}

// publish wraps payload in a v1 envelope with the next sequence number of
// its partition.
func publish[T any](ctx context.Context, p *RabbitPublisher, name, routingKey string, meta EventMeta, payload T) error {
	seq, err := p.nextSequence(ctx, meta.PartitionKey)
	if err != nil {
		return err
	}

	env := newEnvelope(name, meta, seq, p.producer, payload, p.now().UTC())
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal %s envelope: %w", name, err)
	}
	return p.publishJSON(ctx, routingKey, body)
}

func (p *RabbitPublisher) nextSequence(ctx context.Context, partitionKey string) (int64, error) {
	if p.seq == nil {
		return 0, nil
	}
	n, err := p.seq.Incr(ctx, "seq:"+partitionKey)
	if err != nil {
		return 0, fmt.Errorf("reserve sequence: %w", err)
	}
	return n, nil
}

func (p *RabbitPublisher) publishJSON(ctx context.Context, routingKey string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}
