package httpapi

import (
	"context"
	"io"

	"github.com/soulstitch/storefront/internal/auth"
	"github.com/soulstitch/storefront/internal/cart"
	"github.com/soulstitch/storefront/internal/catalog"
	"github.com/soulstitch/storefront/internal/order"
	"github.com/soulstitch/storefront/internal/profile"
	"github.com/soulstitch/storefront/internal/support"
	"github.com/soulstitch/storefront/internal/wishlist"
)

// The interfaces below are the slices of each service the handlers call.

type CatalogService interface {
	Browse(ctx context.Context, query, category string) ([]catalog.Product, error)
	Get(ctx context.Context, id string) (catalog.Product, error)
	Trending(ctx context.Context) ([]catalog.Product, error)
	Seasonal(ctx context.Context) ([]catalog.Section, error)
}

type AuthService interface {
	SignUp(ctx context.Context, in auth.SignUpInput) (auth.Session, error)
	SignIn(ctx context.Context, email, password string) (auth.Session, error)
	SignOut(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (auth.Identity, error)
	User(ctx context.Context, userID string) (auth.User, error)
	UpdateProfile(ctx context.Context, userID string, in auth.ProfileUpdate) (auth.Profile, error)
}

type CartService interface {
	Add(ctx context.Context, userID string, p catalog.Product) (cart.Line, error)
	Remove(ctx context.Context, userID, lineID string) error
	Total(ctx context.Context, userID string) (cart.Summary, error)
}

type WishlistService interface {
	Toggle(ctx context.Context, userID string, p catalog.Product) (bool, error)
	Save(ctx context.Context, userID string, p catalog.Product) error
	Remove(ctx context.Context, userID, productID string) error
	List(ctx context.Context, userID string) ([]wishlist.Entry, error)
}

type OrderService interface {
	Place(ctx context.Context, c order.Customer, in order.Checkout) (order.Placement, error)
	Confirm(ctx context.Context, c order.Customer, intentID string) (order.Order, error)
	History(ctx context.Context, userID string) ([]order.Order, error)
	Get(ctx context.Context, userID, orderID string) (order.Order, error)
	Receipt(ctx context.Context, userID, orderID string) ([]byte, error)
}

type ProfileService interface {
	UploadPhoto(ctx context.Context, userID string, r io.Reader) (auth.Profile, error)
	SaveAddress(ctx context.Context, userID string, a profile.Address) (profile.Address, error)
	Address(ctx context.Context, userID string) (profile.Address, error)
}

type SupportService interface {
	Submit(ctx context.Context, user auth.Identity, message string) (support.Ticket, error)
	Tickets(ctx context.Context, userID string) ([]support.Ticket, error)
	ChatLink() string
}
