package httpapi

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"

	"github.com/soulstitch/storefront/internal/profile"
)

const maxPhotoBytes = 10 << 20

// UploadPhoto accepts either a raw image body or a multipart form with a
// "photo" file field.
func (h *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoBytes)

	var src io.Reader = r.Body
	if mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mt == "multipart/form-data" {
		f, _, err := r.FormFile("photo")
		if err != nil {
			writeError(w, http.StatusBadRequest, "missing photo file")
			return
		}
		defer f.Close()
		src = f
	}

	ctx, cancel := h.ctx(r)
	defer cancel()

	p, err := h.profiles.UploadPhoto(ctx, GetIdentity(r.Context()).UserID, src)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) GetAddress(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ctx(r)
	defer cancel()

	a, err := h.profiles.Address(ctx, GetIdentity(r.Context()).UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *Handler) SaveAddress(w http.ResponseWriter, r *http.Request) {
	var body profile.Address
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()

	a, err := h.profiles.SaveAddress(ctx, GetIdentity(r.Context()).UserID, body)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}
