package events

import (
	"context"
	"log"
)

type Publisher interface {
	PublishOrderPlaced(ctx context.Context, meta EventMeta, p OrderPlacedPayload) error
	PublishSupportTicketSubmitted(ctx context.Context, meta EventMeta, p SupportTicketPayload) error
	Close() error
}

// Sequencer hands out per-partition sequence numbers.
type Sequencer interface {
	Incr(ctx context.Context, key string) (int64, error)
}

// NopPublisher drops events; it is used when no broker is configured.
type NopPublisher struct {
	Logger *log.Logger
}

func (n NopPublisher) PublishOrderPlaced(ctx context.Context, meta EventMeta, p OrderPlacedPayload) error {
	if n.Logger != nil {
		n.Logger.Printf("events disabled: dropping %s for order %s", OrderPlacedEventName, p.OrderID)
	}
	return nil
}

func (n NopPublisher) PublishSupportTicketSubmitted(ctx context.Context, meta EventMeta, p SupportTicketPayload) error {
	if n.Logger != nil {
		n.Logger.Printf("events disabled: dropping %s for ticket %s", SupportTicketSubmittedEventName, p.TicketID)
	}
	return nil
}

func (NopPublisher) Close() error { return nil }
