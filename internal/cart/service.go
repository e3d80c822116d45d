package cart

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/soulstitch/storefront/internal/auth"
	"github.com/soulstitch/storefront/internal/cache"
	"github.com/soulstitch/storefront/internal/catalog"
)

const cacheTTL = 5 * time.Minute

var ErrMissingProduct = errors.New("product id is required")

type Service struct {
	repo   Repository
	cache  cache.Cache
	logger *log.Logger
	now    func() time.Time
}

func NewService(repo Repository, c cache.Cache, logger *log.Logger) *Service {
	return &Service{repo: repo, cache: c, logger: logger, now: time.Now}
}

func cacheKey(userID string) string { return "cart:" + userID }

// Add stores a new line with quantity 1 for the product.
func (s *Service) Add(ctx context.Context, userID string, p catalog.Product) (Line, error) {
	if err := auth.RequireUser(userID); err != nil {
		return Line{}, err
	}
	if p.ID == "" {
		return Line{}, ErrMissingProduct
	}

	l := Line{
		LineID:      uuid.NewString(),
		ProductID:   p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Image:       p.Image,
		Description: p.Description,
		Category:    p.Category,
		Quantity:    1,
		AddedAt:     s.now().UTC(),
	}
	if err := s.repo.Insert(ctx, userID, l); err != nil {
		return Line{}, err
	}
	s.invalidate(ctx, userID)
	return l, nil
}

func (s *Service) Remove(ctx context.Context, userID, lineID string) error {
	if err := auth.RequireUser(userID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, userID, lineID); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

// Lines reads the user's cart through the cache.
func (s *Service) Lines(ctx context.Context, userID string) ([]Line, error) {
	if err := auth.RequireUser(userID); err != nil {
		return nil, err
	}

	var cached []Line
	ok, err := s.cache.Get(ctx, cacheKey(userID), &cached)
	if err != nil {
		s.logger.Printf("cart cache read for %s: %v", userID, err)
	}
	if ok {
		return cached, nil
	}

	out, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, cacheKey(userID), out, cacheTTL); err != nil {
		s.logger.Printf("cart cache write for %s: %v", userID, err)
	}
	return out, nil
}

// Total never reports a zero total for a failed read; the error is returned instead.
func (s *Service) Total(ctx context.Context, userID string) (Summary, error) {
	ls, err := s.Lines(ctx, userID)
	if err != nil {
		return Summary{}, fmt.Errorf("load cart: %w", err)
	}
	return Summarize(ls), nil
}

func (s *Service) invalidate(ctx context.Context, userID string) {
	if err := s.cache.Delete(ctx, cacheKey(userID)); err != nil {
		s.logger.Printf("cart cache invalidate for %s: %v", userID, err)
	}
}
