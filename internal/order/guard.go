package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/soulstitch/storefront/internal/cache"
)

var ErrInFlight = errors.New("a checkout for this user is already in progress")

const guardTTL = 30 * time.Second

// Guard allows one checkout at a time per user. The marker expires after
// guardTTL so a crashed request cannot block the user for long.
type Guard struct {
	cache  cache.Cache
	logger *log.Logger
}

func NewGuard(c cache.Cache, logger *log.Logger) *Guard {
	return &Guard{cache: c, logger: logger}
}

func guardKey(userID string) string { return "checkout:inflight:" + userID }

// Acquire returns ErrInFlight while another checkout holds the user. The
// returned release only clears the marker this call set, so a checkout that
// outlives guardTTL cannot free a newer checkout's hold.
func (g *Guard) Acquire(ctx context.Context, userID string) (func(), error) {
	token := uuid.NewString()
	ok, err := g.cache.SetNX(ctx, guardKey(userID), token, guardTTL)
	if err != nil {
		return nil, fmt.Errorf("acquire checkout guard: %w", err)
	}
	if !ok {
		return nil, ErrInFlight
	}
	return func() {
		// Release even when the request context is already cancelled.
		if _, err := g.cache.DeleteIfEquals(context.WithoutCancel(ctx), guardKey(userID), token); err != nil {
			g.logger.Printf("release checkout guard for %s: %v", userID, err)
		}
	}, nil
}
