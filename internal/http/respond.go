package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/soulstitch/storefront/internal/auth"
	"github.com/soulstitch/storefront/internal/blob"
	"github.com/soulstitch/storefront/internal/cart"
	"github.com/soulstitch/storefront/internal/catalog"
	"github.com/soulstitch/storefront/internal/order"
	"github.com/soulstitch/storefront/internal/profile"
	"github.com/soulstitch/storefront/internal/support"
	"github.com/soulstitch/storefront/internal/wishlist"
)

type errorResponse struct {
	Error         string `json:"error"`
	CorrelationID string `json:"correlationId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusFor maps service errors onto HTTP status codes. Anything not listed
// is a 500 and its message is not shown to the client.
func statusFor(err error) int {
	switch {
	case errors.Is(err, auth.ErrNotAuthenticated),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrValidation),
		errors.Is(err, order.ErrValidation),
		errors.Is(err, profile.ErrValidation),
		errors.Is(err, support.ErrEmptyMessage),
		errors.Is(err, cart.ErrMissingProduct),
		errors.Is(err, wishlist.ErrMissingProduct):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, order.ErrNotFound),
		errors.Is(err, auth.ErrUserNotFound),
		errors.Is(err, profile.ErrNoAddress),
		errors.Is(err, blob.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrEmailTaken),
		errors.Is(err, order.ErrInFlight):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.Printf("%s %s failed (correlation %s): %v", r.Method, r.URL.Path, GetCorrelationID(r.Context()), err)
		msg = "internal server error"
	}
	writeJSON(w, status, errorResponse{Error: msg, CorrelationID: GetCorrelationID(r.Context())})
}
