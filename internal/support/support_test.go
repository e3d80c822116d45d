package support

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soulstitch/storefront/internal/auth"
	"github.com/soulstitch/storefront/internal/docstore"
	"github.com/soulstitch/storefront/internal/events"
)

type fakePublisher struct {
	events.NopPublisher
	ticketFn func(ctx context.Context, meta events.EventMeta, p events.SupportTicketPayload) error
}

func (f fakePublisher) PublishSupportTicketSubmitted(ctx context.Context, meta events.EventMeta, p events.SupportTicketPayload) error {
	return f.ticketFn(ctx, meta, p)
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()
	var published []events.SupportTicketPayload
	pub := fakePublisher{ticketFn: func(ctx context.Context, meta events.EventMeta, p events.SupportTicketPayload) error {
		assert.Equal(t, "u1", meta.PartitionKey)
		published = append(published, p)
		return nil
	}}
	svc := NewService(docstore.NewMemory(), pub, Contact{}, log.New(io.Discard, "", 0))

	ticket, err := svc.Submit(ctx, auth.Identity{UserID: "u1", Email: "a@b.co"}, "  Where is my order?  ")
	require.NoError(t, err)
	assert.Equal(t, "Where is my order?", ticket.Message)
	assert.Equal(t, StatusPending, ticket.Status)
	require.Len(t, published, 1)
	assert.Equal(t, ticket.ID, published[0].TicketID)

	list, err := svc.Tickets(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)

	other, err := svc.Tickets(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestSubmit_CarriesCorrelationID(t *testing.T) {
	var metas []events.EventMeta
	pub := fakePublisher{ticketFn: func(ctx context.Context, meta events.EventMeta, p events.SupportTicketPayload) error {
		metas = append(metas, meta)
		return nil
	}}
	svc := NewService(docstore.NewMemory(), pub, Contact{}, log.New(io.Discard, "", 0))

	ctx := events.WithCorrelationID(context.Background(), "cid-123")
	_, err := svc.Submit(ctx, auth.Identity{UserID: "u1"}, "help")
	require.NoError(t, err)
	require.Len(t, metas, 1)
	assert.Equal(t, "cid-123", metas[0].CorrelationID)
	assert.Equal(t, "u1", metas[0].PartitionKey)
}

func TestSubmit_Validation(t *testing.T) {
	svc := NewService(docstore.NewMemory(), events.NopPublisher{}, Contact{}, log.New(io.Discard, "", 0))

	_, err := svc.Submit(context.Background(), auth.Identity{UserID: "u1"}, "   ")
	require.ErrorIs(t, err, ErrEmptyMessage)

	_, err = svc.Submit(context.Background(), auth.Identity{}, "help")
	require.ErrorIs(t, err, auth.ErrNotAuthenticated)
}

func TestSubmit_PublishFailureKeepsTicket(t *testing.T) {
	pub := fakePublisher{ticketFn: func(ctx context.Context, meta events.EventMeta, p events.SupportTicketPayload) error {
		return errors.New("broker down")
	}}
	svc := NewService(docstore.NewMemory(), pub, Contact{}, log.New(io.Discard, "", 0))

	_, err := svc.Submit(context.Background(), auth.Identity{UserID: "u1"}, "help")
	require.NoError(t, err)

	list, err := svc.Tickets(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestChatLink(t *testing.T) {
	svc := NewService(docstore.NewMemory(), events.NopPublisher{}, Contact{Phone: "919318395641", Message: "Hello Soul & Stitch! I need help with my order."}, nil)
	assert.Equal(t, "whatsapp://send?phone=919318395641&text=Hello%20Soul%20%26%20Stitch%21%20I%20need%20help%20with%20my%20order.", svc.ChatLink())
}
