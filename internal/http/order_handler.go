package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/soulstitch/storefront/internal/order"
)

func customer(r *http.Request) order.Customer {
	id := GetIdentity(r.Context())
	return order.Customer{ID: id.UserID, Email: id.Email}
}

// Checkout places a cash-on-delivery order (201) or opens a payment intent
// for online and QR payments (202).
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var body order.Checkout
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()

	p, err := h.orders.Place(ctx, customer(r), body)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	status := http.StatusCreated
	if p.Order == nil {
		status = http.StatusAccepted
	}
	writeJSON(w, status, p)
}

func (h *Handler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ctx(r)
	defer cancel()

	o, err := h.orders.Confirm(ctx, customer(r), chi.URLParam(r, "intentId"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ctx(r)
	defer cancel()

	orders, err := h.orders.History(ctx, GetIdentity(r.Context()).UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ctx(r)
	defer cancel()

	o, err := h.orders.Get(ctx, GetIdentity(r.Context()).UserID, chi.URLParam(r, "orderId"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	ctx, cancel := h.ctx(r)
	defer cancel()

	pdf, err := h.orders.Receipt(ctx, GetIdentity(r.Context()).UserID, orderID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "receipt-"+orderID+".pdf"))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
