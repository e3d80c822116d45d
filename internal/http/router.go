package httpapi

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/soulstitch/storefront/internal/blob"
)

type Deps struct {
	Logger         *log.Logger
	RequestTimeout time.Duration
	AllowOrigins   []string

	Catalog   CatalogService
	Auth      AuthService
	Carts     CartService
	Wishlists WishlistService
	Orders    OrderService
	Profiles  ProfileService
	Support   SupportService
	Media     blob.Store

	// AuthRate limits sign-up, login and logout per client IP. Zero means 5
	// requests per minute with a burst of 5.
	AuthRate  rate.Limit
	AuthBurst int
}

func NewRouter(d Deps) http.Handler {
	h := NewHandler(d)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(CorrelationID)
	r.Use(corsHandler(d.AllowOrigins))

	r.Get("/health", h.Health)

	authRate, authBurst := d.AuthRate, d.AuthBurst
	if authRate == 0 {
		authRate, authBurst = rate.Every(time.Minute/5), 5
	}
	limiter := NewRateLimiter(authRate, authBurst)
	r.Route("/auth", func(r chi.Router) {
		r.Use(limiter.Limit)
		r.Post("/signup", h.SignUp)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	r.Get("/categories", h.Categories)
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Get("/trending", h.TrendingProducts)
		r.Get("/{id}", h.GetProduct)
	})
	r.Get("/collections/seasonal", h.SeasonalCollections)
	r.Get("/support/chat-link", h.ChatLink)
	r.Get("/media/*", h.Media)

	r.Route("/me", func(r chi.Router) {
		r.Use(h.Authenticate)

		r.Get("/", h.Me)
		r.Patch("/", h.UpdateMe)
		r.Put("/photo", h.UploadPhoto)
		r.Get("/address", h.GetAddress)
		r.Put("/address", h.SaveAddress)

		r.Get("/cart", h.GetCart)
		r.Post("/cart/items", h.AddCartItem)
		r.Delete("/cart/items/{lineId}", h.RemoveCartItem)

		r.Get("/wishlist", h.GetWishlist)
		r.Post("/wishlist/{productId}/toggle", h.ToggleWishlist)
		r.Put("/wishlist/{productId}", h.SaveWishlist)
		r.Delete("/wishlist/{productId}", h.RemoveWishlist)

		r.Post("/checkout", h.Checkout)
		r.Post("/checkout/intents/{intentId}/confirm", h.ConfirmPayment)
		r.Get("/orders", h.ListOrders)
		r.Get("/orders/{orderId}", h.GetOrder)
		r.Get("/orders/{orderId}/receipt", h.GetReceipt)

		r.Post("/support/tickets", h.SubmitTicket)
		r.Get("/support/tickets", h.ListTickets)
	})

	return r
}

func corsHandler(origins []string) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", HeaderCorrelationID},
		ExposedHeaders:   []string{HeaderCorrelationID},
		AllowCredentials: false,
	}).Handler
}
