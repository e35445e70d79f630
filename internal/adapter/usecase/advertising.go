package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"exo-ads/internal/analytics"
	"exo-ads/internal/core/domain"
	"exo-ads/internal/core/port"
	"exo-ads/internal/platform"
)

// writeTimeout bounds background counter writes so a stuck store cannot
// leak goroutines.
const writeTimeout = 5 * time.Second

// Implementation check
var _ port.AdvertisingService = (*AdvertisingService)(nil)

// AdvertisingService implements the promotion eligibility engine. It
// orchestrates the repository, the platform provider and the analytics
// sink to implement the port.AdvertisingService interface.
type AdvertisingService struct {
	repo     port.AdRepository
	platform platform.Provider
	sink     analytics.Sink
	logger   *slog.Logger

	defaultCooldownDays int

	now func() time.Time
	bg  sync.WaitGroup
}

// NewAdvertisingService creates the engine. defaultCooldownDays applies
// when neither the caller nor the ad specify a dismissal cooldown; values
// below one day are coerced to 20.
func NewAdvertisingService(repo port.AdRepository, p platform.Provider, sink analytics.Sink, logger *slog.Logger, defaultCooldownDays int) *AdvertisingService {
	if defaultCooldownDays < 1 {
		defaultCooldownDays = 20
	}
	return &AdvertisingService{
		repo:                repo,
		platform:            p,
		sink:                sink,
		logger:              logger,
		defaultCooldownDays: defaultCooldownDays,
		now:                 time.Now,
	}
}

// GetAdsForLocation returns eligible ads for a placement, highest priority
// first. The repository pre-filters on activity, placement and date
// window; the domain predicate is re-applied here so platform targeting
// holds regardless of how coarse the backend's query capabilities are.
func (s *AdvertisingService) GetAdsForLocation(ctx context.Context, location domain.DisplayLocation, p domain.Platform) ([]domain.Advertisement, error) {
	if location == "" {
		return nil, fmt.Errorf("%w: empty display location", port.ErrValidation)
	}
	if p == "" {
		p = s.platform.Detect("")
	}
	now := s.now()
	ads, err := s.repo.FindByLocation(ctx, location, now)
	if err != nil {
		return nil, err
	}
	eligible := make([]domain.Advertisement, 0, len(ads))
	for _, ad := range ads {
		if ad.EligibleAt(location, p, now) {
			eligible = append(eligible, ad)
		}
	}
	return eligible, nil
}

// GetAdsWithUserState enriches the placement's ads with the user's
// dismissal state. Anonymous users (empty userID) have no suppressible
// history: every ad comes back showable.
//
// The decision rule: an ad is shown unless it has an unexpired dismissal
// record. The extra !IsDismissible clause guards against an ad being
// flipped non-dismissible after a dismissal was recorded.
func (s *AdvertisingService) GetAdsWithUserState(ctx context.Context, userID string, location domain.DisplayLocation, p domain.Platform) ([]domain.AdvertisementWithState, error) {
	ads, err := s.GetAdsForLocation(ctx, location, p)
	if err != nil {
		return nil, err
	}
	out := make([]domain.AdvertisementWithState, 0, len(ads))
	if userID == "" {
		for _, ad := range ads {
			out = append(out, domain.AdvertisementWithState{Advertisement: ad, ShouldShow: true})
		}
		return out, nil
	}

	dismissals, err := s.repo.FindDismissalsForUser(ctx, userID, s.now())
	if err != nil {
		return nil, err
	}
	dismissed := make(map[string]domain.AdDismissal, len(dismissals))
	for _, d := range dismissals {
		dismissed[d.AdID] = d
	}

	for _, ad := range ads {
		st := domain.AdvertisementWithState{Advertisement: ad}
		if d, ok := dismissed[ad.ID]; ok {
			st.IsDismissed = true
			until := d.ShowAgainAfter
			st.DismissedUntil = &until
		}
		st.ShouldShow = !st.IsDismissed || !ad.IsDismissible
		out = append(out, st)
	}
	return out, nil
}

// DismissAd writes or refreshes the user's dismissal of an ad. The
// cooldown is resolved as: explicit argument, then the ad's own value,
// then the configured default. Re-dismissing resets the window to the
// newest call's cooldown. The dismissals counter is always bumped, even
// on a refresh.
func (s *AdvertisingService) DismissAd(ctx context.Context, userID, adID string, cooldownDays int) error {
	if userID == "" || adID == "" {
		return fmt.Errorf("%w: user and ad ids are required", port.ErrValidation)
	}
	if cooldownDays <= 0 {
		ad, err := s.repo.GetAdvertisement(ctx, adID)
		if err != nil {
			return err
		}
		cooldownDays = ad.DismissCooldownDays
		if cooldownDays <= 0 {
			cooldownDays = s.defaultCooldownDays
		}
	}
	now := s.now()
	d := &domain.AdDismissal{
		AdID:           adID,
		DismissedAt:    now,
		ShowAgainAfter: now.AddDate(0, 0, cooldownDays),
	}
	if err := s.repo.UpsertDismissal(ctx, userID, d); err != nil {
		return err
	}
	s.bump(adID, domain.MetricDismissals)
	return nil
}

// MarkPromoSeen sets the one-way seen flag. First-seen wins; an existing
// record keeps its original timestamp and version.
func (s *AdvertisingService) MarkPromoSeen(ctx context.Context, userID, adID, version string) error {
	if userID == "" || adID == "" {
		return fmt.Errorf("%w: user and ad ids are required", port.ErrValidation)
	}
	p := &domain.SeenPromo{
		AdID:    adID,
		SeenAt:  s.now(),
		Version: version,
	}
	return s.repo.CreateSeenPromo(ctx, userID, p)
}

// HasSeenPromo reports whether the user has seen the promo. With a
// version the check only matches a record stored for that exact version,
// so "seen v1.0" does not suppress a "what's new in v1.1" modal.
func (s *AdvertisingService) HasSeenPromo(ctx context.Context, userID, adID, version string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	rec, err := s.repo.FindSeenPromo(ctx, userID, adID)
	if errors.Is(err, port.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if version != "" {
		return rec.Version == version, nil
	}
	return true, nil
}

// IncrementAnalytics bumps one analytics counter in the background.
// Failures are logged, never surfaced: ad metrics are best-effort and
// must not block rendering.
func (s *AdvertisingService) IncrementAnalytics(adID string, metric domain.Metric) {
	if !metric.Valid() {
		s.logger.Warn("unknown analytics metric", slog.String("metric", string(metric)), slog.String("ad_id", adID))
		return
	}
	s.bump(adID, metric)
	switch metric {
	case domain.MetricImpressions:
		s.sink.Emit(analytics.EventImpression, adID)
	case domain.MetricClicks:
		s.sink.Emit(analytics.EventCTAClicked, adID)
	}
}

// RegisterClick resolves the ad's CTA URL for redirection and records the
// click without waiting on the counter write.
func (s *AdvertisingService) RegisterClick(ctx context.Context, adID string) (string, error) {
	ad, err := s.repo.GetAdvertisement(ctx, adID)
	if err != nil {
		return "", err
	}
	s.bump(adID, domain.MetricClicks)
	s.sink.Emit(analytics.EventCTAClicked, adID)
	return ad.CTAURL, nil
}

// SeedAdvertisements bulk-creates ads in one atomic batch.
func (s *AdvertisingService) SeedAdvertisements(ctx context.Context, ads []domain.Advertisement) error {
	if len(ads) == 0 {
		return fmt.Errorf("%w: nothing to seed", port.ErrValidation)
	}
	return s.repo.SeedAdvertisements(ctx, ads)
}

// bump performs a detached atomic counter increment against the store.
func (s *AdvertisingService) bump(adID string, metric domain.Metric) {
	s.bg.Add(1)
	go func() {
		defer s.bg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		if err := s.repo.IncrementCounter(ctx, adID, metric); err != nil {
			s.logger.Warn("analytics increment failed",
				slog.String("ad_id", adID),
				slog.String("metric", string(metric)),
				slog.Any("error", err))
		}
	}()
}
