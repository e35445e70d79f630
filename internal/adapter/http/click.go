package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleAdClick resolves an ad's CTA URL and redirects the user there,
// recording the click in the background. Unknown ads result in HTTP 404.
// Internal errors are logged and treated as 404 to avoid leaking
// information on a public redirect endpoint.
func (h *Handler) handleAdClick(w http.ResponseWriter, r *http.Request) {
	adID := chi.URLParam(r, "id")
	if adID == "" {
		http.Error(w, "missing ad id", http.StatusBadRequest)
		return
	}
	ctaURL, err := h.svc.RegisterClick(r.Context(), adID)
	if err != nil {
		h.logger.Error("click error", slog.Any("error", err))
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, ctaURL, http.StatusFound)
}
