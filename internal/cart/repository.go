package cart

import (
	"context"
	"fmt"

	"github.com/soulstitch/storefront/internal/docstore"
)

type Repository interface {
	List(ctx context.Context, userID string) ([]Line, error)
	Insert(ctx context.Context, userID string, l Line) error
	Delete(ctx context.Context, userID, lineID string) error
}

type repo struct {
	store docstore.Store
}

func NewRepository(store docstore.Store) Repository {
	return &repo{store: store}
}

func lines(userID string) docstore.Collection {
	return docstore.Sub("users", userID, "cart")
}

func (r *repo) List(ctx context.Context, userID string) ([]Line, error) {
	out := []Line{}
	if err := r.store.List(ctx, lines(userID), docstore.Filter{}, &out); err != nil {
		return nil, fmt.Errorf("list cart for %s: %w", userID, err)
	}
	return out, nil
}

func (r *repo) Insert(ctx context.Context, userID string, l Line) error {
	if err := r.store.Set(ctx, lines(userID).Doc(l.LineID), l); err != nil {
		return fmt.Errorf("insert cart line: %w", err)
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, userID, lineID string) error {
	if err := r.store.Delete(ctx, lines(userID).Doc(lineID)); err != nil {
		return fmt.Errorf("delete cart line %s: %w", lineID, err)
	}
	return nil
}
