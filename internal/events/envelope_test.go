package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soulstitch/storefront/internal/money"
)

func TestOrderPlacedEnvelope(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	meta := EventMeta{CorrelationID: "c0a8e2b6-3c6a-4d7e-9c8f-1f2e3d4c5b6a", PartitionKey: "u1"}
	payload := OrderPlacedPayload{
		OrderID:       "o1",
		UserID:        "u1",
		Items:         "Red Cap",
		TotalAmount:   money.MustParse("200"),
		PaymentMethod: "Cash on Delivery",
		Timestamp:     now,
	}

	env := newEnvelope(OrderPlacedEventName, meta, 3, DefaultProducer, payload, now)
	require.NoError(t, env.Validate(OrderPlacedEventName))
	assert.NotEmpty(t, env.EventID)
	assert.Equal(t, int64(3), env.Sequence)

	body, err := json.Marshal(env)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "OrderPlaced", decoded["eventName"])
	assert.Equal(t, "u1", decoded["partitionKey"])
	p := decoded["payload"].(map[string]any)
	assert.Equal(t, float64(200), p["totalAmount"])

	env.EventName = "WrongName"
	require.Error(t, env.Validate(OrderPlacedEventName))
}

func TestEnvelopeValidate_RequiresPartitionKey(t *testing.T) {
	env := newEnvelope(SupportTicketSubmittedEventName, EventMeta{}, 0, DefaultProducer, SupportTicketPayload{}, time.Now())
	require.Error(t, env.Validate(SupportTicketSubmittedEventName))
}
