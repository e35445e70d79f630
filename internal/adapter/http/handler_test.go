package httpadapter

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exo-ads/internal/adapter/usecase"
	"exo-ads/internal/core/domain"
	"exo-ads/internal/core/port"
	"exo-ads/internal/platform"
)

// fakeService is a hand-rolled port.AdvertisingService for handler tests.
type fakeService struct {
	stateCalls int
	stateFn    func(userID string, loc domain.DisplayLocation) ([]domain.AdvertisementWithState, error)
	dismissed  []string
	clickURL   string
}

func (f *fakeService) GetAdsForLocation(context.Context, domain.DisplayLocation, domain.Platform) ([]domain.Advertisement, error) {
	return nil, nil
}

func (f *fakeService) GetAdsWithUserState(_ context.Context, userID string, loc domain.DisplayLocation, _ domain.Platform) ([]domain.AdvertisementWithState, error) {
	f.stateCalls++
	if f.stateFn != nil {
		return f.stateFn(userID, loc)
	}
	return nil, nil
}

func (f *fakeService) DismissAd(_ context.Context, userID, adID string, _ int) error {
	f.dismissed = append(f.dismissed, userID+":"+adID)
	return nil
}

func (f *fakeService) MarkPromoSeen(context.Context, string, string, string) error { return nil }

func (f *fakeService) HasSeenPromo(context.Context, string, string, string) (bool, error) {
	return false, nil
}

func (f *fakeService) IncrementAnalytics(string, domain.Metric) {}

func (f *fakeService) RegisterClick(_ context.Context, adID string) (string, error) {
	if f.clickURL == "" {
		return "", port.ErrNotFound
	}
	return f.clickURL, nil
}

func (f *fakeService) SeedAdvertisements(context.Context, []domain.Advertisement) error { return nil }

func newTestHandler(svc *fakeService) *Handler {
	cache := usecase.NewStateCache(nil, 5*time.Minute)
	return NewHandler(svc, nil, cache, platform.NewUserAgentProvider(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func TestGetAdsRequiresLocation(t *testing.T) {
	h := newTestHandler(&fakeService{})
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ads", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)
}

func TestGetAdsEnvelope(t *testing.T) {
	svc := &fakeService{
		stateFn: func(string, domain.DisplayLocation) ([]domain.AdvertisementWithState, error) {
			return []domain.AdvertisementWithState{{
				Advertisement: domain.Advertisement{ID: "a", Title: "promo"},
				ShouldShow:    true,
			}}, nil
		},
	}
	h := newTestHandler(svc)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ads?location=page_slider", nil)
	req.Header.Set("X-User-ID", "u1")
	h.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.NotNil(t, env.Data)
}

func TestGetAdsCachesAnonymousWeb(t *testing.T) {
	svc := &fakeService{
		stateFn: func(string, domain.DisplayLocation) ([]domain.AdvertisementWithState, error) {
			return []domain.AdvertisementWithState{{
				Advertisement: domain.Advertisement{ID: "a"},
				ShouldShow:    true,
			}}, nil
		},
	}
	h := newTestHandler(svc)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ads?location=page_slider&platform=web", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, 1, svc.stateCalls, "second anonymous web request is served from cache")

	// Identified requests bypass the cache.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ads?location=page_slider&platform=web", nil)
	req.Header.Set("X-User-ID", "u1")
	h.Router().ServeHTTP(rec, req)
	assert.Equal(t, 2, svc.stateCalls)
}

func TestDismissRequiresUser(t *testing.T) {
	h := newTestHandler(&fakeService{})
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/ads/a/dismiss", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, decodeEnvelope(t, rec).Success)
}

func TestDismissMarksCache(t *testing.T) {
	svc := &fakeService{}
	h := newTestHandler(svc)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ads/a/dismiss", nil)
	req.Header.Set("X-User-ID", "u1")
	h.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"u1:a"}, svc.dismissed)
	assert.True(t, h.cache.IsDismissed("a"))
}

func TestClickRedirect(t *testing.T) {
	h := newTestHandler(&fakeService{clickURL: "https://exohunter.app/extension"})
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ad/click/a", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://exohunter.app/extension", rec.Header().Get("Location"))
}

func TestClickUnknownAd(t *testing.T) {
	h := newTestHandler(&fakeService{})
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ad/click/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEventUnknownMetric(t *testing.T) {
	h := newTestHandler(&fakeService{})
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/ads/a/events/conversions", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
