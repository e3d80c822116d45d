package wishlist

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/soulstitch/storefront/internal/auth"
	"github.com/soulstitch/storefront/internal/cache"
	"github.com/soulstitch/storefront/internal/catalog"
)

const cacheTTL = 5 * time.Minute

var ErrMissingProduct = errors.New("product id is required")

// Service owns the liked state of products. Screens ask IsLiked instead of
// tracking their own flag; the cached list is dropped on every mutation so
// the next read goes back to the store.
type Service struct {
	repo   Repository
	cache  cache.Cache
	logger *log.Logger
	now    func() time.Time
}

func NewService(repo Repository, c cache.Cache, logger *log.Logger) *Service {
	return &Service{repo: repo, cache: c, logger: logger, now: time.Now}
}

func cacheKey(userID string) string { return "wishlist:" + userID }

// Toggle removes the product when present and saves it otherwise. It
// reports whether the product is liked afterwards.
func (s *Service) Toggle(ctx context.Context, userID string, p catalog.Product) (bool, error) {
	if err := validate(userID, p.ID); err != nil {
		return false, err
	}

	present, err := s.repo.Exists(ctx, userID, p.ID)
	if err != nil {
		return false, err
	}
	defer s.invalidate(ctx, userID)

	if present {
		if err := s.repo.Delete(ctx, userID, p.ID); err != nil {
			return true, err
		}
		return false, nil
	}
	if err := s.repo.Upsert(ctx, userID, s.entry(p)); err != nil {
		return false, err
	}
	return true, nil
}

// Save adds the product, leaving an existing entry in place.
func (s *Service) Save(ctx context.Context, userID string, p catalog.Product) error {
	if err := validate(userID, p.ID); err != nil {
		return err
	}
	defer s.invalidate(ctx, userID)
	return s.repo.Upsert(ctx, userID, s.entry(p))
}

func (s *Service) Remove(ctx context.Context, userID, productID string) error {
	if err := validate(userID, productID); err != nil {
		return err
	}
	defer s.invalidate(ctx, userID)
	return s.repo.Delete(ctx, userID, productID)
}

func (s *Service) List(ctx context.Context, userID string) ([]Entry, error) {
	if err := auth.RequireUser(userID); err != nil {
		return nil, err
	}

	var cached []Entry
	ok, err := s.cache.Get(ctx, cacheKey(userID), &cached)
	if err != nil {
		s.logger.Printf("wishlist cache read for %s: %v", userID, err)
	}
	if ok {
		return cached, nil
	}

	out, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, cacheKey(userID), out, cacheTTL); err != nil {
		s.logger.Printf("wishlist cache write for %s: %v", userID, err)
	}
	return out, nil
}

func (s *Service) IsLiked(ctx context.Context, userID, productID string) (bool, error) {
	list, err := s.List(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, e := range list {
		if e.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) entry(p catalog.Product) Entry {
	category := p.Category
	if category == "" {
		category = defaultCategory
	}
	return Entry{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Category:  category,
		SavedAt:   s.now().UTC(),
	}
}

func (s *Service) invalidate(ctx context.Context, userID string) {
	if err := s.cache.Delete(ctx, cacheKey(userID)); err != nil {
		s.logger.Printf("wishlist cache invalidate for %s: %v", userID, err)
	}
}

func validate(userID, productID string) error {
	if err := auth.RequireUser(userID); err != nil {
		return err
	}
	if productID == "" {
		return ErrMissingProduct
	}
	return nil
}
