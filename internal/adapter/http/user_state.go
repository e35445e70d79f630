package httpadapter

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleDismiss records the requesting user's dismissal of an ad. The
// optional body may override the cooldown; otherwise the ad's own value
// and then the configured default apply. Requires an identified user.
func (h *Handler) handleDismiss(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		h.fail(w, http.StatusUnauthorized, "user required")
		return
	}
	adID := chi.URLParam(r, "id")

	var body struct {
		CooldownDays int `json:"cooldownDays"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.fail(w, http.StatusBadRequest, "invalid JSON")
			return
		}
	}
	if err := h.svc.DismissAd(r.Context(), uid, adID, body.CooldownDays); err != nil {
		h.respondErr(w, err)
		return
	}
	h.cache.MarkDismissed(adID)
	h.respond(w, http.StatusOK, nil)
}

// handleMarkSeen sets the one-way seen flag for a one-time promo. The
// optional `version` query parameter scopes the flag to an app version.
func (h *Handler) handleMarkSeen(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		h.fail(w, http.StatusUnauthorized, "user required")
		return
	}
	adID := chi.URLParam(r, "id")
	version := r.URL.Query().Get("version")
	if err := h.svc.MarkPromoSeen(r.Context(), uid, adID, version); err != nil {
		h.respondErr(w, err)
		return
	}
	h.cache.MarkSeen(adID)
	h.respond(w, http.StatusOK, nil)
}

// handleHasSeen reports whether the user has seen a promo, optionally
// scoped to a version. Anonymous users have never seen anything.
func (h *Handler) handleHasSeen(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	adID := chi.URLParam(r, "id")
	version := r.URL.Query().Get("version")
	seen, err := h.svc.HasSeenPromo(r.Context(), uid, adID, version)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	h.respond(w, http.StatusOK, map[string]bool{"seen": seen})
}
