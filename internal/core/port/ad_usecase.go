package port

import (
	"context"

	"exo-ads/internal/core/domain"
)

// AdvertisingService defines the business operations exposed by the
// promotion engine. This interface is the primary port into the
// application domain; the HTTP adapter and tests program against it.
type AdvertisingService interface {
	// GetAdsForLocation returns the eligible ads for a placement on the
	// given platform, highest priority first. An empty platform falls back
	// to the runtime-detected one. Read-only; a store failure is returned
	// as an error and callers must degrade to showing nothing.
	GetAdsForLocation(ctx context.Context, location domain.DisplayLocation, platform domain.Platform) ([]domain.Advertisement, error)

	// GetAdsWithUserState composes GetAdsForLocation with the user's live
	// dismissals. An empty userID means anonymous: every ad comes back
	// with ShouldShow=true and IsDismissed=false.
	GetAdsWithUserState(ctx context.Context, userID string, location domain.DisplayLocation, platform domain.Platform) ([]domain.AdvertisementWithState, error)

	// DismissAd records (or refreshes) the user's dismissal of an ad.
	// cooldownDays <= 0 falls back to the ad's own cooldown, then the
	// configured default. Idempotent under retry: a repeat dismissal
	// resets the cooldown window. Always bumps the dismissals counter.
	DismissAd(ctx context.Context, userID, adID string, cooldownDays int) error

	// MarkPromoSeen sets the one-way seen flag for (user, ad). A no-op if
	// a record already exists.
	MarkPromoSeen(ctx context.Context, userID, adID, version string) error
	// HasSeenPromo reports whether the user has seen the promo. With a
	// non-empty version the check is scoped to that exact version.
	HasSeenPromo(ctx context.Context, userID, adID, version string) (bool, error)

	// IncrementAnalytics bumps one analytics counter, fire-and-forget:
	// the write happens in the background and failures are only logged.
	IncrementAnalytics(adID string, metric domain.Metric)

	// RegisterClick resolves the ad's CTA URL for redirection and records
	// the click in the background.
	RegisterClick(ctx context.Context, adID string) (string, error)

	// SeedAdvertisements bulk-creates ads from the predefined product
	// catalog in one atomic batch. Operational tooling, not a hot path.
	SeedAdvertisements(ctx context.Context, ads []domain.Advertisement) error
}
