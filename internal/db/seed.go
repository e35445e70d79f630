package db

import (
	"context"
	"time"

	"exo-ads/internal/core/domain"
	"exo-ads/internal/core/port"
)

// Seed bootstraps an environment with the predefined promotional catalog.
// The whole catalog is written in one atomic batch.
func Seed(ctx context.Context, svc port.AdvertisingService) error {
	return svc.SeedAdvertisements(ctx, DefaultCatalog())
}

// DefaultCatalog returns the predefined promotional products used for
// initial environment bootstrap. Ids are assigned by the store.
func DefaultCatalog() []domain.Advertisement {
	later := time.Now().AddDate(0, 3, 0)
	return []domain.Advertisement{
		{
			Type:        domain.TypeBrowserExtension,
			UIVariant:   domain.VariantFeatured,
			Title:       "ExoHunter Companion Extension",
			Description: "Spot new transit candidates without leaving your browser.",
			BulletPoints: []string{
				"Light-curve preview on hover",
				"One-click candidate bookmarking",
				"Daily discovery digest",
			},
			ImageURL:            "https://cdn.exohunter.app/promos/extension.png",
			LocalImagePath:      "/assets/promos/extension.png",
			CTAText:             "Add to browser",
			CTAURL:              "https://exohunter.app/extension",
			DisplayLocations:    []domain.DisplayLocation{domain.LocationPageSlider, domain.LocationDashboardCard},
			TargetPlatforms:     []domain.Platform{domain.PlatformWeb},
			Priority:            10,
			IsActive:            true,
			IsDismissible:       true,
			DismissCooldownDays: 20,
		},
		{
			Type:        domain.TypeMobileApp,
			UIVariant:   domain.VariantStandard,
			Title:       "ExoHunter on the go",
			Description: "Classify light curves from your phone, online or offline.",
			BulletPoints: []string{
				"Offline classification queue",
				"Push alerts for followed targets",
			},
			ImageURL:            "https://cdn.exohunter.app/promos/mobile.png",
			CTAText:             "Get the app",
			CTAURL:              "https://exohunter.app/mobile",
			DisplayLocations:    []domain.DisplayLocation{domain.LocationPageSlider, domain.LocationModalSlider},
			TargetPlatforms:     []domain.Platform{domain.PlatformAndroid, domain.PlatformIOS},
			Priority:            8,
			IsActive:            true,
			IsDismissible:       true,
			DismissCooldownDays: 14,
		},
		{
			Type:             domain.TypeYoutubeVideo,
			UIVariant:        domain.VariantCompact,
			Title:            "How transit photometry works",
			Description:      "A ten-minute walkthrough of the method behind every discovery.",
			ImageURL:         "https://cdn.exohunter.app/promos/video.png",
			CTAText:          "Watch now",
			CTAURL:           "https://youtube.com/watch?v=exohunter-transits",
			DisplayLocations: []domain.DisplayLocation{domain.LocationModalSlider, domain.LocationSettingsPage},
			TargetPlatforms:  []domain.Platform{domain.PlatformWeb, domain.PlatformAndroid, domain.PlatformIOS},
			Priority:         5,
			IsActive:         true,
			IsDismissible:    true,
		},
		{
			Type:             domain.TypeSocialMedia,
			UIVariant:        domain.VariantBanner,
			Title:            "Join the ExoHunter community",
			Description:      "Discuss candidates and vote on the discovery of the month.",
			ImageURL:         "https://cdn.exohunter.app/promos/community.png",
			CTAText:          "Follow us",
			CTAURL:           "https://social.exohunter.app",
			DisplayLocations: []domain.DisplayLocation{domain.LocationPageSlider},
			TargetPlatforms:  []domain.Platform{domain.PlatformWeb, domain.PlatformAndroid, domain.PlatformIOS},
			Priority:         3,
			IsActive:         true,
			IsDismissible:    true,
		},
		{
			Type:             domain.TypeEventOffer,
			UIVariant:        domain.VariantFeatured,
			Title:            "Citizen Science Month challenge",
			Description:      "Classify 100 light curves this month and earn the hunter badge.",
			ImageURL:         "https://cdn.exohunter.app/promos/event.png",
			CTAText:          "Join the challenge",
			CTAURL:           "https://exohunter.app/events/citizen-science-month",
			DisplayLocations: []domain.DisplayLocation{domain.LocationOneTimeModal, domain.LocationDashboardCard},
			TargetPlatforms:  []domain.Platform{domain.PlatformWeb, domain.PlatformAndroid, domain.PlatformIOS},
			Priority:         12,
			IsActive:         true,
			EndDate:          &later,
			IsDismissible:    false,
		},
	}
}
