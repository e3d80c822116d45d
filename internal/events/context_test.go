package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetaFrom(t *testing.T) {
	assert.Equal(t, EventMeta{PartitionKey: "u1"}, MetaFrom(context.Background(), "u1"))

	ctx := WithCorrelationID(context.Background(), "cid-123")
	assert.Equal(t, EventMeta{CorrelationID: "cid-123", PartitionKey: "u1"}, MetaFrom(ctx, "u1"))
}
