package httpadapter

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"exo-ads/internal/db"
)

// handleAdminList returns every ad regardless of eligibility.
func (h *Handler) handleAdminList(w http.ResponseWriter, r *http.Request) {
	ads, err := h.repo.ListAdvertisements(r.Context())
	if err != nil {
		h.respondErr(w, err)
		return
	}
	out := make([]adPayload, len(ads))
	for i, ad := range ads {
		out[i] = toPayload(ad)
	}
	h.respond(w, http.StatusOK, out)
}

// handleAdminGet returns a single ad by id, 404 when missing so the admin
// UI can show "ad not found" instead of a generic error.
func (h *Handler) handleAdminGet(w http.ResponseWriter, r *http.Request) {
	ad, err := h.repo.GetAdvertisement(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondErr(w, err)
		return
	}
	h.respond(w, http.StatusOK, toPayload(*ad))
}

// handleAdminCreate stores a new ad. Placement and platform sets must be
// non-empty; an ad without them could never be shown.
func (h *Handler) handleAdminCreate(w http.ResponseWriter, r *http.Request) {
	var p adPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		h.fail(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if p.Title == "" || len(p.DisplayLocations) == 0 || len(p.TargetPlatforms) == 0 {
		h.fail(w, http.StatusBadRequest, "title, displayLocations and targetPlatforms are required")
		return
	}
	ad := p.toDomain()
	ad.ID = "" // store-assigned
	if err := h.repo.CreateAdvertisement(r.Context(), &ad); err != nil {
		h.respondErr(w, err)
		return
	}
	h.respond(w, http.StatusCreated, toPayload(ad))
}

// handleAdminUpdate overwrites the mutable fields of an existing ad.
func (h *Handler) handleAdminUpdate(w http.ResponseWriter, r *http.Request) {
	var p adPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		h.fail(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	ad := p.toDomain()
	ad.ID = chi.URLParam(r, "id")
	if err := h.repo.UpdateAdvertisement(r.Context(), &ad); err != nil {
		h.respondErr(w, err)
		return
	}
	h.respond(w, http.StatusOK, nil)
}

// handleAdminDelete removes an ad and its per-user records.
func (h *Handler) handleAdminDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.DeleteAdvertisement(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondErr(w, err)
		return
	}
	h.respond(w, http.StatusOK, nil)
}

// handleSeed bulk-creates the predefined promotional catalog in one
// atomic batch. Bootstrap tooling, not a runtime path.
func (h *Handler) handleSeed(w http.ResponseWriter, r *http.Request) {
	if err := db.Seed(r.Context(), h.svc); err != nil {
		h.respondErr(w, err)
		return
	}
	h.respond(w, http.StatusCreated, nil)
}
