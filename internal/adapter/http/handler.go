package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"exo-ads/internal/adapter/usecase"
	"exo-ads/internal/core/port"
	"exo-ads/internal/platform"
)

// Handler contains dependencies and routes. It is an inbound adapter for
// HTTP. Every response uses the {success, data, error} envelope so the
// web client can degrade to "show nothing" without exception handling.
type Handler struct {
	svc    port.AdvertisingService
	repo   port.AdRepository // admin CRUD bypasses the eligibility engine
	cache  *usecase.StateCache
	detect platform.Provider
	logger *slog.Logger
	router chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(svc port.AdvertisingService, repo port.AdRepository, cache *usecase.StateCache, detect platform.Provider, logger *slog.Logger) *Handler {
	h := &Handler{svc: svc, repo: repo, cache: cache, detect: detect, logger: logger}
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ads", h.handleGetAds)
		r.Post("/ads/{id}/dismiss", h.handleDismiss)
		r.Post("/ads/{id}/seen", h.handleMarkSeen)
		r.Get("/ads/{id}/seen", h.handleHasSeen)
		r.Post("/ads/{id}/events/{metric}", h.handleEvent)

		r.Route("/admin", func(r chi.Router) {
			r.Get("/ads", h.handleAdminList)
			r.Post("/ads", h.handleAdminCreate)
			r.Get("/ads/{id}", h.handleAdminGet)
			r.Put("/ads/{id}", h.handleAdminUpdate)
			r.Delete("/ads/{id}", h.handleAdminDelete)
			r.Post("/seed", h.handleSeed)
		})
	})
	r.Get("/ad/click/{id}", h.handleAdClick)
	r.Handle("/metrics", promhttp.Handler())

	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

// envelope is the uniform response shape of every JSON endpoint.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (h *Handler) respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: true, Data: data}); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

func (h *Handler) fail(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: false, Error: msg}); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// respondErr maps engine errors onto the envelope: not-found and
// validation errors keep their message, anything else is a store failure
// logged server-side and reported generically.
func (h *Handler) respondErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, port.ErrNotFound):
		h.fail(w, http.StatusNotFound, "not found")
	case errors.Is(err, port.ErrValidation):
		h.fail(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("store error", slog.Any("error", err))
		h.fail(w, http.StatusInternalServerError, "internal error")
	}
}

// userID extracts the requesting user, empty for anonymous visitors.
func userID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}
