package httpapi

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/soulstitch/storefront/internal/blob"
)

type Handler struct {
	catalog   CatalogService
	auth      AuthService
	carts     CartService
	wishlists WishlistService
	orders    OrderService
	profiles  ProfileService
	support   SupportService
	media     blob.Store
	logger    *log.Logger
	timeout   time.Duration
}

func NewHandler(d Deps) *Handler {
	timeout := d.RequestTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Handler{
		catalog:   d.Catalog,
		auth:      d.Auth,
		carts:     d.Carts,
		wishlists: d.Wishlists,
		orders:    d.Orders,
		profiles:  d.Profiles,
		support:   d.Support,
		media:     d.Media,
		logger:    d.Logger,
		timeout:   timeout,
	}
}

func (h *Handler) ctx(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.timeout)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "storefront",
	})
}
