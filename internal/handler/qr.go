package handler

import (
	"net/http"
	"strconv"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	defaultQRSize = 256
	maxQRSize     = 1024
)

// InvitationQR handles GET /invitation/qr.png. The PNG encodes the public
// RSVP page URL so it can be printed on invitations. ?size= sets the edge
// length in pixels.
func (h *Handler) InvitationQR(w http.ResponseWriter, r *http.Request) {
	size := defaultQRSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 64 || n > maxQRSize {
			writeError(w, r, http.StatusBadRequest, "invalid_size", "size must be between 64 and 1024")
			return
		}
		size = n
	}

	target := h.pageConfig().PublicURL
	if target == "" {
		writeError(w, r, http.StatusNotFound, "not_configured", "No public URL is configured")
		return
	}

	png, err := qrcode.Encode(target, qrcode.Medium, size)
	if err != nil {
		h.log.Error().Err(err).Str("url", target).Msg("failed to encode invitation QR code")
		writeError(w, r, http.StatusInternalServerError, "internal_error", "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(png)
}
