package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// Service is the product accessor behind the home, details and seasonal
// screens. Every call reads the current catalog; nothing is held between
// requests.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Browse(ctx context.Context, query, category string) ([]Product, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(all, query, category), nil
}

func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Trending(ctx context.Context) ([]Product, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return Trending(all), nil
}

func (s *Service) Seasonal(ctx context.Context) ([]Section, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return Seasonal(all), nil
}

// Seed upserts the products from a JSON array, e.g. a fixture file loaded at
// startup. It returns the number of products written.
func (s *Service) Seed(ctx context.Context, r io.Reader) (int, error) {
	var items []Product
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return 0, fmt.Errorf("decode catalog seed: %w", err)
	}
	for i, p := range items {
		if err := s.repo.Upsert(ctx, p); err != nil {
			return i, err
		}
	}
	return len(items), nil
}
