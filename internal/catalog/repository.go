package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/soulstitch/storefront/internal/docstore"
)

var ErrNotFound = errors.New("product not found")

var products = docstore.Root("products")

type Repository interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (Product, error)
	Upsert(ctx context.Context, p Product) error
}

type repo struct {
	store docstore.Store
}

func NewRepository(store docstore.Store) Repository {
	return &repo{store: store}
}

func (r *repo) List(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := r.store.List(ctx, products, docstore.Filter{}, &out); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return out, nil
}

func (r *repo) Get(ctx context.Context, id string) (Product, error) {
	var p Product
	if err := r.store.Get(ctx, products.Doc(id), &p); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return Product{}, ErrNotFound
		}
		return Product{}, fmt.Errorf("get product %s: %w", id, err)
	}
	if p.ID == "" {
		p.ID = id
	}
	return p, nil
}

func (r *repo) Upsert(ctx context.Context, p Product) error {
	if p.ID == "" {
		return errors.New("product id is required")
	}
	if err := r.store.Set(ctx, products.Doc(p.ID), p); err != nil {
		return fmt.Errorf("upsert product %s: %w", p.ID, err)
	}
	return nil
}
