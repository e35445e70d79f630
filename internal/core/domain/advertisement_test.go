package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEligibleAt(t *testing.T) {
	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	base := Advertisement{
		DisplayLocations: []DisplayLocation{LocationPageSlider, LocationModalSlider},
		TargetPlatforms:  []Platform{PlatformWeb},
		IsActive:         true,
	}

	t.Run("eligible with unbounded window", func(t *testing.T) {
		assert.True(t, base.EligibleAt(LocationPageSlider, PlatformWeb, now))
	})

	t.Run("inactive never shows", func(t *testing.T) {
		ad := base
		ad.IsActive = false
		ad.Priority = 100
		assert.False(t, ad.EligibleAt(LocationPageSlider, PlatformWeb, now))
	})

	t.Run("wrong placement", func(t *testing.T) {
		assert.False(t, base.EligibleAt(LocationSettingsPage, PlatformWeb, now))
	})

	t.Run("wrong platform", func(t *testing.T) {
		assert.False(t, base.EligibleAt(LocationPageSlider, PlatformIOS, now))
	})

	t.Run("window bounds are inclusive", func(t *testing.T) {
		ad := base
		ad.StartDate = &yesterday
		ad.EndDate = &tomorrow
		assert.True(t, ad.EligibleAt(LocationPageSlider, PlatformWeb, now))
		assert.True(t, ad.EligibleAt(LocationPageSlider, PlatformWeb, yesterday))
		assert.True(t, ad.EligibleAt(LocationPageSlider, PlatformWeb, tomorrow))
	})

	t.Run("not started yet", func(t *testing.T) {
		ad := base
		ad.StartDate = &tomorrow
		assert.False(t, ad.EligibleAt(LocationPageSlider, PlatformWeb, now))
	})

	t.Run("already ended", func(t *testing.T) {
		ad := base
		ad.EndDate = &yesterday
		assert.False(t, ad.EligibleAt(LocationPageSlider, PlatformWeb, now))
	})
}

func TestDismissalLive(t *testing.T) {
	now := time.Now()
	d := AdDismissal{ShowAgainAfter: now.Add(time.Hour)}
	assert.True(t, d.Live(now))
	assert.False(t, d.Live(now.Add(2*time.Hour)))
	assert.False(t, d.Live(d.ShowAgainAfter))
}

func TestMetricValid(t *testing.T) {
	assert.True(t, MetricImpressions.Valid())
	assert.True(t, MetricClicks.Valid())
	assert.True(t, MetricDismissals.Valid())
	assert.False(t, Metric("conversions").Valid())
	assert.False(t, Metric("impressions; DROP TABLE advertisements").Valid())
}
