package httpadapter

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"exo-ads/internal/core/domain"
)

// adPayload is the JSON representation of an advertisement. Field names
// mirror what the web client persists and renders.
type adPayload struct {
	ID                  string     `json:"id"`
	Type                string     `json:"type"`
	UIVariant           string     `json:"uiVariant"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	BulletPoints        []string   `json:"bulletPoints,omitempty"`
	ImageURL            string     `json:"imageUrl"`
	LocalImagePath      string     `json:"localImagePath,omitempty"`
	CTAText             string     `json:"ctaText"`
	CTAURL              string     `json:"ctaUrl"`
	DisplayLocations    []string   `json:"displayLocations"`
	TargetPlatforms     []string   `json:"targetPlatforms"`
	Priority            int        `json:"priority"`
	IsActive            bool       `json:"isActive"`
	StartDate           *time.Time `json:"startDate,omitempty"`
	EndDate             *time.Time `json:"endDate,omitempty"`
	IsDismissible       bool       `json:"isDismissible"`
	DismissCooldownDays int        `json:"dismissCooldownDays"`
	Impressions         int64      `json:"impressions"`
	Clicks              int64      `json:"clicks"`
	Dismissals          int64      `json:"dismissals"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// adStatePayload extends adPayload with the requesting user's state.
type adStatePayload struct {
	adPayload
	ShouldShow     bool       `json:"shouldShow"`
	IsDismissed    bool       `json:"isDismissed"`
	DismissedUntil *time.Time `json:"dismissedUntil,omitempty"`
}

func toPayload(ad domain.Advertisement) adPayload {
	locations := make([]string, len(ad.DisplayLocations))
	for i, l := range ad.DisplayLocations {
		locations[i] = string(l)
	}
	platforms := make([]string, len(ad.TargetPlatforms))
	for i, p := range ad.TargetPlatforms {
		platforms[i] = string(p)
	}
	return adPayload{
		ID:                  ad.ID,
		Type:                string(ad.Type),
		UIVariant:           string(ad.UIVariant),
		Title:               ad.Title,
		Description:         ad.Description,
		BulletPoints:        ad.BulletPoints,
		ImageURL:            ad.ImageURL,
		LocalImagePath:      ad.LocalImagePath,
		CTAText:             ad.CTAText,
		CTAURL:              ad.CTAURL,
		DisplayLocations:    locations,
		TargetPlatforms:     platforms,
		Priority:            ad.Priority,
		IsActive:            ad.IsActive,
		StartDate:           ad.StartDate,
		EndDate:             ad.EndDate,
		IsDismissible:       ad.IsDismissible,
		DismissCooldownDays: ad.DismissCooldownDays,
		Impressions:         ad.Impressions,
		Clicks:              ad.Clicks,
		Dismissals:          ad.Dismissals,
		CreatedAt:           ad.CreatedAt,
		UpdatedAt:           ad.UpdatedAt,
	}
}

func (p adPayload) toDomain() domain.Advertisement {
	locations := make([]domain.DisplayLocation, len(p.DisplayLocations))
	for i, l := range p.DisplayLocations {
		locations[i] = domain.DisplayLocation(l)
	}
	platforms := make([]domain.Platform, len(p.TargetPlatforms))
	for i, pl := range p.TargetPlatforms {
		platforms[i] = domain.Platform(pl)
	}
	return domain.Advertisement{
		ID:                  p.ID,
		Type:                domain.AdvertisementType(p.Type),
		UIVariant:           domain.UIVariant(p.UIVariant),
		Title:               p.Title,
		Description:         p.Description,
		BulletPoints:        p.BulletPoints,
		ImageURL:            p.ImageURL,
		LocalImagePath:      p.LocalImagePath,
		CTAText:             p.CTAText,
		CTAURL:              p.CTAURL,
		DisplayLocations:    locations,
		TargetPlatforms:     platforms,
		Priority:            p.Priority,
		IsActive:            p.IsActive,
		StartDate:           p.StartDate,
		EndDate:             p.EndDate,
		IsDismissible:       p.IsDismissible,
		DismissCooldownDays: p.DismissCooldownDays,
	}
}

func toStatePayloads(ads []domain.AdvertisementWithState) []adStatePayload {
	out := make([]adStatePayload, len(ads))
	for i, ad := range ads {
		out[i] = adStatePayload{
			adPayload:      toPayload(ad.Advertisement),
			ShouldShow:     ad.ShouldShow,
			IsDismissed:    ad.IsDismissed,
			DismissedUntil: ad.DismissedUntil,
		}
	}
	return out
}

// handleGetAds returns the state-enriched ads for a placement. The
// placement comes from the required `location` query parameter; the
// platform from the optional `platform` parameter, falling back to
// user-agent detection. Anonymous web requests are served through the
// state cache (5-minute window) since their enrichment carries no
// per-user state; identified or non-web requests always hit the engine.
func (h *Handler) handleGetAds(w http.ResponseWriter, r *http.Request) {
	location := domain.DisplayLocation(r.URL.Query().Get("location"))
	if location == "" {
		h.fail(w, http.StatusBadRequest, "missing location")
		return
	}
	p := domain.Platform(r.URL.Query().Get("platform"))
	if p == "" {
		p = h.detect.Detect(r.UserAgent())
	}
	uid := userID(r)

	cacheable := uid == "" && p == domain.PlatformWeb
	if cacheable && !h.cache.ShouldRefetch() {
		if ads := h.cache.Ads(location); ads != nil {
			h.respond(w, http.StatusOK, toStatePayloads(ads))
			return
		}
	}

	ads, err := h.svc.GetAdsWithUserState(r.Context(), uid, location, p)
	if err != nil {
		if cacheable {
			h.cache.SetError(location, err)
		}
		h.respondErr(w, err)
		return
	}
	if cacheable {
		h.cache.SetAds(location, ads)
	}
	h.respond(w, http.StatusOK, toStatePayloads(ads))
}

// handleEvent records one analytics event for an ad. Fire-and-forget:
// the response never waits on the store and always reports success for a
// well-formed metric.
func (h *Handler) handleEvent(w http.ResponseWriter, r *http.Request) {
	adID := chi.URLParam(r, "id")
	metric := domain.Metric(chi.URLParam(r, "metric"))
	if !metric.Valid() {
		h.fail(w, http.StatusBadRequest, "unknown metric")
		return
	}
	h.svc.IncrementAnalytics(adID, metric)
	h.respond(w, http.StatusAccepted, nil)
}
