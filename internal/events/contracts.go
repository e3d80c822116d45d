package events

import (
	"time"

	"github.com/soulstitch/storefront/internal/money"
)

const (
	EventsExchange = "soulstitch.events"

	OrderPlacedEventName            = "OrderPlaced"
	OrderPlacedRoutingKey           = "order.placed.v1"
	SupportTicketSubmittedEventName = "SupportTicketSubmitted"
	SupportTicketRoutingKey         = "support.ticket.submitted.v1"

	DefaultProducer = "storefront"
)

type OrderPlacedPayload struct {
	OrderID       string       `json:"orderId"`
	UserID        string       `json:"userId"`
	Items         string       `json:"items"`
	TotalAmount   money.Amount `json:"totalAmount"`
	PaymentMethod string       `json:"paymentMethod"`
	Timestamp     time.Time    `json:"timestamp"`
}

type SupportTicketPayload struct {
	TicketID  string    `json:"ticketId"`
	UserID    string    `json:"userId"`
	UserEmail string    `json:"userEmail"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
