package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/soulstitch/storefront/internal/auth"
)

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var body auth.SignUpInput
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()

	s, err := h.auth.SignUp(ctx, body)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()

	s, err := h.auth.SignIn(ctx, body.Email, body.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, auth.ErrNotAuthenticated.Error())
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()

	if err := h.auth.SignOut(ctx, token); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id := GetIdentity(r.Context())

	ctx, cancel := h.ctx(r)
	defer cancel()

	u, err := h.auth.User(ctx, id.UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u.Profile())
}

func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var body auth.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()

	p, err := h.auth.UpdateProfile(ctx, GetIdentity(r.Context()).UserID, body)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
