package wishlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/soulstitch/storefront/internal/docstore"
)

type Repository interface {
	List(ctx context.Context, userID string) ([]Entry, error)
	Exists(ctx context.Context, userID, productID string) (bool, error)
	Upsert(ctx context.Context, userID string, e Entry) error
	Delete(ctx context.Context, userID, productID string) error
}

type repo struct {
	store docstore.Store
}

func NewRepository(store docstore.Store) Repository {
	return &repo{store: store}
}

func entries(userID string) docstore.Collection {
	return docstore.Sub("users", userID, "wishlist")
}

func (r *repo) List(ctx context.Context, userID string) ([]Entry, error) {
	out := []Entry{}
	if err := r.store.List(ctx, entries(userID), docstore.Filter{}, &out); err != nil {
		return nil, fmt.Errorf("list wishlist for %s: %w", userID, err)
	}
	return out, nil
}

func (r *repo) Exists(ctx context.Context, userID, productID string) (bool, error) {
	var e Entry
	err := r.store.Get(ctx, entries(userID).Doc(productID), &e)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get wishlist entry %s: %w", productID, err)
	}
	return true, nil
}

func (r *repo) Upsert(ctx context.Context, userID string, e Entry) error {
	if err := r.store.Set(ctx, entries(userID).Doc(e.ProductID), e); err != nil {
		return fmt.Errorf("save wishlist entry %s: %w", e.ProductID, err)
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, userID, productID string) error {
	if err := r.store.Delete(ctx, entries(userID).Doc(productID)); err != nil {
		return fmt.Errorf("delete wishlist entry %s: %w", productID, err)
	}
	return nil
}
