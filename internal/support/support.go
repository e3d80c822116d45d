package support

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/soulstitch/storefront/internal/auth"
	"github.com/soulstitch/storefront/internal/docstore"
	"github.com/soulstitch/storefront/internal/events"
	"github.com/soulstitch/storefront/internal/payment"
)

const StatusPending = "Pending"

var ErrEmptyMessage = errors.New("message must not be empty")

var tickets = docstore.Root("support_tickets")

type Ticket struct {
	ID        string    `json:"id" bson:"id"`
	UserID    string    `json:"userId" bson:"userId"`
	UserEmail string    `json:"userEmail" bson:"userEmail"`
	Message   string    `json:"message" bson:"message"`
	Date      time.Time `json:"date" bson:"date"`
	Status    string    `json:"status" bson:"status"`
}

// Contact is the shop's chat number and the pre-filled opening message.
type Contact struct {
	Phone   string
	Message string
}

type Service struct {
	store     docstore.Store
	publisher events.Publisher
	contact   Contact
	logger    *log.Logger
	now       func() time.Time
}

func NewService(store docstore.Store, publisher events.Publisher, contact Contact, logger *log.Logger) *Service {
	return &Service{store: store, publisher: publisher, contact: contact, logger: logger, now: time.Now}
}

func (s *Service) Submit(ctx context.Context, user auth.Identity, message string) (Ticket, error) {
	if err := auth.RequireUser(user.UserID); err != nil {
		return Ticket{}, err
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return Ticket{}, ErrEmptyMessage
	}

	t := Ticket{
		ID:        uuid.NewString(),
		UserID:    user.UserID,
		UserEmail: user.Email,
		Message:   message,
		Date:      s.now().UTC(),
		Status:    StatusPending,
	}
	if err := s.store.Set(ctx, tickets.Doc(t.ID), t); err != nil {
		return Ticket{}, fmt.Errorf("save support ticket: %w", err)
	}

	err := s.publisher.PublishSupportTicketSubmitted(ctx, events.MetaFrom(ctx, t.UserID), events.SupportTicketPayload{
		TicketID:  t.ID,
		UserID:    t.UserID,
		UserEmail: t.UserEmail,
		Message:   t.Message,
		Timestamp: t.Date,
	})
	if err != nil {
		s.logger.Printf("publish SupportTicketSubmitted for %s: %v", t.ID, err)
	}
	return t, nil
}

// Tickets lists the user's own tickets, oldest first.
func (s *Service) Tickets(ctx context.Context, userID string) ([]Ticket, error) {
	if err := auth.RequireUser(userID); err != nil {
		return nil, err
	}
	out := []Ticket{}
	if err := s.store.List(ctx, tickets, docstore.Where("userId", userID), &out); err != nil {
		return nil, fmt.Errorf("list support tickets: %w", err)
	}
	return out, nil
}

func (s *Service) ChatLink() string {
	return payment.ChatLink(s.contact.Phone, s.contact.Message)
}
