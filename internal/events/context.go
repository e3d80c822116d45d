package events

import "context"

type ctxKey struct{}

// WithCorrelationID attaches the request correlation id so events published
// while handling the request carry it.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func CorrelationIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// MetaFrom builds the envelope metadata for an event keyed by partitionKey.
func MetaFrom(ctx context.Context, partitionKey string) EventMeta {
	return EventMeta{CorrelationID: CorrelationIDFrom(ctx), PartitionKey: partitionKey}
}
