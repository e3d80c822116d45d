package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/soulstitch/storefront/internal/cart"
)

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ctx(r)
	defer cancel()

	s, err := h.carts.Total(ctx, GetIdentity(r.Context()).UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// AddCartItem copies the current catalog product into a new cart line.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID string `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	productID := strings.TrimSpace(body.ProductID)
	if productID == "" {
		h.fail(w, r, cart.ErrMissingProduct)
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()

	p, err := h.catalog.Get(ctx, productID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	line, err := h.carts.Add(ctx, GetIdentity(r.Context()).UserID, p)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, line)
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ctx(r)
	defer cancel()

	if err := h.carts.Remove(ctx, GetIdentity(r.Context()).UserID, chi.URLParam(r, "lineId")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
