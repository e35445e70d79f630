package port

import (
	"context"
	"errors"
	"time"

	"exo-ads/internal/core/domain"
)

var (
	// ErrNotFound is returned by single-entity lookups for a missing id.
	// Admin UIs distinguish it from transport failures.
	ErrNotFound = errors.New("not found")
	// ErrValidation is returned when an operation receives a malformed
	// argument, e.g. an unknown analytics metric.
	ErrValidation = errors.New("validation failed")
)

// AdRepository is the outbound persistence port for the promotion engine.
// Implementations must make counter increments and dismissal upserts
// atomic per record; any backend exposing query/get/upsert/atomic-add
// and batched writes can satisfy it.
type AdRepository interface {
	// FindByLocation returns all active ads placed at location whose
	// start/end window contains now, ordered by descending priority.
	// Platform filtering is left to the caller.
	FindByLocation(ctx context.Context, location domain.DisplayLocation, now time.Time) ([]domain.Advertisement, error)

	// GetAdvertisement returns an ad by id. ErrNotFound when missing.
	GetAdvertisement(ctx context.Context, id string) (*domain.Advertisement, error)
	// CreateAdvertisement stores a new ad and assigns its id and timestamps.
	CreateAdvertisement(ctx context.Context, ad *domain.Advertisement) error
	// UpdateAdvertisement overwrites the mutable fields of an existing ad
	// and bumps updated_at. Counters are not writable through this method.
	UpdateAdvertisement(ctx context.Context, ad *domain.Advertisement) error
	// DeleteAdvertisement removes an ad. ErrNotFound when missing.
	DeleteAdvertisement(ctx context.Context, id string) error
	// ListAdvertisements returns every ad regardless of eligibility, for
	// admin tooling.
	ListAdvertisements(ctx context.Context) ([]domain.Advertisement, error)

	// FindDismissalsForUser returns the user's dismissals that are still
	// live at now (show_again_after > now).
	FindDismissalsForUser(ctx context.Context, userID string, now time.Time) ([]domain.AdDismissal, error)
	// UpsertDismissal writes or overwrites the user's dismissal for an ad.
	// Lookups must always find at most one record per (user, ad).
	UpsertDismissal(ctx context.Context, userID string, d *domain.AdDismissal) error

	// FindSeenPromo returns the user's seen record for an ad, or
	// ErrNotFound when none exists.
	FindSeenPromo(ctx context.Context, userID, adID string) (*domain.SeenPromo, error)
	// CreateSeenPromo stores a seen record unless one already exists for
	// (user, ad); an existing record is left untouched (first-seen wins).
	CreateSeenPromo(ctx context.Context, userID string, p *domain.SeenPromo) error

	// IncrementCounter atomically adds 1 to one analytics counter of an ad.
	IncrementCounter(ctx context.Context, adID string, metric domain.Metric) error

	// SeedAdvertisements creates all given ads in a single atomic batch:
	// either every ad is stored or none are.
	SeedAdvertisements(ctx context.Context, ads []domain.Advertisement) error
}
