package domain

import (
	"slices"
	"time"
)

// AdvertisementType classifies what a promotion advertises.
type AdvertisementType string

const (
	TypeBrowserExtension AdvertisementType = "browser_extension"
	TypeMobileApp        AdvertisementType = "mobile_app"
	TypeWebApp           AdvertisementType = "web_app"
	TypeYoutubeVideo     AdvertisementType = "youtube_video"
	TypeSocialMedia      AdvertisementType = "social_media"
	TypeEventOffer       AdvertisementType = "event_offer"
)

// DisplayLocation is a named UI slot where ads may appear.
type DisplayLocation string

const (
	LocationPageSlider    DisplayLocation = "page_slider"
	LocationModalSlider   DisplayLocation = "modal_slider"
	LocationOneTimeModal  DisplayLocation = "one_time_modal"
	LocationDashboardCard DisplayLocation = "dashboard_card"
	LocationSettingsPage  DisplayLocation = "settings_page"
)

// UIVariant is a rendering style hint for the presentation layer.
type UIVariant string

const (
	VariantStandard UIVariant = "standard"
	VariantCompact  UIVariant = "compact"
	VariantBanner   UIVariant = "banner"
	VariantFeatured UIVariant = "featured"
)

// Platform identifies the runtime a user is browsing from.
type Platform string

const (
	PlatformWeb     Platform = "web"
	PlatformAndroid Platform = "android"
	PlatformIOS     Platform = "ios"
)

// Metric names one of the per-ad analytics counters.
type Metric string

const (
	MetricImpressions Metric = "impressions"
	MetricClicks      Metric = "clicks"
	MetricDismissals  Metric = "dismissals"
)

// Valid reports whether m is one of the known counters. Counter names end
// up interpolated into column identifiers, so the repository must reject
// anything else.
func (m Metric) Valid() bool {
	switch m {
	case MetricImpressions, MetricClicks, MetricDismissals:
		return true
	}
	return false
}

// Advertisement is a single promotional unit. Analytics counters are
// monotonically increasing and only ever bumped by atomic adds in the
// repository, never written from client state.
type Advertisement struct {
	ID             string
	Type           AdvertisementType
	UIVariant      UIVariant
	Title          string
	Description    string
	BulletPoints   []string
	ImageURL       string
	LocalImagePath string
	CTAText        string
	CTAURL         string

	DisplayLocations []DisplayLocation
	TargetPlatforms  []Platform
	Priority         int
	IsActive         bool
	StartDate        *time.Time // nil = unbounded
	EndDate          *time.Time // nil = unbounded

	IsDismissible       bool
	DismissCooldownDays int

	Impressions int64
	Clicks      int64
	Dismissals  int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EligibleAt reports whether the ad may be shown at the given placement on
// the given platform at time now. All conditions must hold: the ad is
// active, placed at location, targets platform and now falls inside the
// optional start/end window (inclusive on both ends).
func (a *Advertisement) EligibleAt(location DisplayLocation, platform Platform, now time.Time) bool {
	if !a.IsActive {
		return false
	}
	if !slices.Contains(a.DisplayLocations, location) {
		return false
	}
	if !slices.Contains(a.TargetPlatforms, platform) {
		return false
	}
	if a.StartDate != nil && now.Before(*a.StartDate) {
		return false
	}
	if a.EndDate != nil && now.After(*a.EndDate) {
		return false
	}
	return true
}
