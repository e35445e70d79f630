package domain

import "time"

// AdDismissal records a user-scoped, time-bounded suppression of one ad.
// At most one record exists per (user, ad); re-dismissing overwrites it.
type AdDismissal struct {
	ID             string
	AdID           string
	DismissedAt    time.Time
	ShowAgainAfter time.Time
}

// Live reports whether the dismissal still suppresses the ad at time now.
func (d *AdDismissal) Live(now time.Time) bool {
	return d.ShowAgainAfter.After(now)
}

// SeenPromo is a one-way, non-expiring flag recording that a user has
// already been shown a one-time promo. When Version is set, the flag only
// covers that app version, so a "what's new" promo can reappear once per
// release. First-seen wins: the record is never updated after creation.
type SeenPromo struct {
	ID      string
	AdID    string
	SeenAt  time.Time
	Version string // empty = unversioned
}

// AdvertisementWithState is an Advertisement enriched with the querying
// user's dismissal state. Derived on every eligibility query, never
// persisted.
type AdvertisementWithState struct {
	Advertisement
	ShouldShow     bool
	IsDismissed    bool
	DismissedUntil *time.Time
}
