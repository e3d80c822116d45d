package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/soulstitch/storefront/internal/docstore"
)

var users = docstore.Root("users")

type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Update(ctx context.Context, id string, fields map[string]any) error
}

type repo struct {
	store docstore.Store
}

func NewRepository(store docstore.Store) Repository {
	return &repo{store: store}
}

func (r *repo) Create(ctx context.Context, u User) error {
	if err := r.store.Set(ctx, users.Doc(u.ID), u); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *repo) GetByID(ctx context.Context, id string) (User, error) {
	var u User
	if err := r.store.Get(ctx, users.Doc(id), &u); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return User{}, ErrUserNotFound
		}
		return User{}, fmt.Errorf("get user %s: %w", id, err)
	}
	return u, nil
}

func (r *repo) GetByEmail(ctx context.Context, email string) (User, error) {
	var found []User
	if err := r.store.List(ctx, users, docstore.Where("email", email), &found); err != nil {
		return User{}, fmt.Errorf("find user by email: %w", err)
	}
	if len(found) == 0 {
		return User{}, ErrUserNotFound
	}
	return found[0], nil
}

func (r *repo) Update(ctx context.Context, id string, fields map[string]any) error {
	if err := r.store.Merge(ctx, users.Doc(id), fields); err != nil {
		return fmt.Errorf("update user %s: %w", id, err)
	}
	return nil
}
