package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/soulstitch/storefront/internal/docstore"
)

var orders = docstore.Root("orders")

func intents(userID string) docstore.Collection {
	return docstore.Sub("users", userID, "payment_intents")
}

type Repository interface {
	Create(ctx context.Context, o Order) error
	Get(ctx context.Context, orderID string) (Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)

	SaveIntent(ctx context.Context, in Intent) error
	GetIntent(ctx context.Context, userID, intentID string) (Intent, error)
	DeleteIntent(ctx context.Context, userID, intentID string) error
}

type repo struct {
	store docstore.Store
}

func NewRepository(store docstore.Store) Repository {
	return &repo{store: store}
}

func (r *repo) Create(ctx context.Context, o Order) error {
	if err := r.store.Set(ctx, orders.Doc(o.ID), o); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *repo) Get(ctx context.Context, orderID string) (Order, error) {
	var o Order
	if err := r.store.Get(ctx, orders.Doc(orderID), &o); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return Order{}, ErrNotFound
		}
		return Order{}, fmt.Errorf("get order %s: %w", orderID, err)
	}
	return o, nil
}

func (r *repo) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	out := []Order{}
	if err := r.store.List(ctx, orders, docstore.Where("userId", userID), &out); err != nil {
		return nil, fmt.Errorf("list orders for %s: %w", userID, err)
	}
	return out, nil
}

func (r *repo) SaveIntent(ctx context.Context, in Intent) error {
	if err := r.store.Set(ctx, intents(in.UserID).Doc(in.ID), in); err != nil {
		return fmt.Errorf("save payment intent: %w", err)
	}
	return nil
}

func (r *repo) GetIntent(ctx context.Context, userID, intentID string) (Intent, error) {
	var in Intent
	if err := r.store.Get(ctx, intents(userID).Doc(intentID), &in); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return Intent{}, ErrNotFound
		}
		return Intent{}, fmt.Errorf("get payment intent %s: %w", intentID, err)
	}
	return in, nil
}

func (r *repo) DeleteIntent(ctx context.Context, userID, intentID string) error {
	if err := r.store.Delete(ctx, intents(userID).Doc(intentID)); err != nil {
		return fmt.Errorf("delete payment intent %s: %w", intentID, err)
	}
	return nil
}
