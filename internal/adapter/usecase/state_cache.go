package usecase

import (
	"sync"
	"time"

	"exo-ads/internal/analytics"
	"exo-ads/internal/core/domain"
)

// DefaultCacheTTL is the refetch-suppression window: placements reuse the
// last fetched ad list for this long before asking the engine again. The
// window is advisory; callers may bypass it and fetch directly.
const DefaultCacheTTL = 5 * time.Minute

// placementState is the per-placement snapshot held by the cache.
type placementState struct {
	ads     []domain.AdvertisementWithState
	loading bool
	err     error
}

// sliderState tracks a slider cursor. When looping, Advance/Retreat wrap
// around the ad list; otherwise they clamp at the bounds.
type sliderState struct {
	index   int
	looping bool
}

// StateCache is the client-side state holder for ad placements: fetched
// ad snapshots, modal and slider UI state, local mirrors of dismissed and
// seen ad ids, and the refetch-suppression timestamp. It performs no
// store I/O itself and can be rebuilt from the store at any time, so
// Reset is always safe (e.g. on logout).
//
// Unlike the repository-backed engine, everything here is last-write-wins
// transient state. A mutex guards all fields since Go callers may touch
// the cache from multiple goroutines.
type StateCache struct {
	mu sync.RWMutex

	placements map[domain.DisplayLocation]*placementState
	sliders    map[domain.DisplayLocation]*sliderState

	modalOpen bool
	modalAdID string

	dismissed map[string]struct{}
	seen      map[string]struct{}

	lastFetchedAt time.Time
	ttl           time.Duration

	sink analytics.Sink
	now  func() time.Time
}

// NewStateCache builds an empty cache. A nil sink disables modal event
// emission; ttl <= 0 falls back to DefaultCacheTTL.
func NewStateCache(sink analytics.Sink, ttl time.Duration) *StateCache {
	if sink == nil {
		sink = analytics.NopSink{}
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	c := &StateCache{sink: sink, ttl: ttl, now: time.Now}
	c.init()
	return c
}

func (c *StateCache) init() {
	c.placements = make(map[domain.DisplayLocation]*placementState)
	c.sliders = make(map[domain.DisplayLocation]*sliderState)
	c.dismissed = make(map[string]struct{})
	c.seen = make(map[string]struct{})
	c.modalOpen = false
	c.modalAdID = ""
	c.lastFetchedAt = time.Time{}
}

// Reset restores the cache to its initial empty state. Callable at any
// time; no per-user dismissal or seen ids survive into the next session.
func (c *StateCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.init()
}

func (c *StateCache) placement(loc domain.DisplayLocation) *placementState {
	p, ok := c.placements[loc]
	if !ok {
		p = &placementState{}
		c.placements[loc] = p
	}
	return p
}

// SetLoading flags a placement as mid-fetch.
func (c *StateCache) SetLoading(loc domain.DisplayLocation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.placement(loc)
	p.loading = true
	p.err = nil
}

// SetAds stores a fetched, state-enriched ad list for a placement, stamps
// the refetch window and mirrors the dismissed ids into the local set. A
// slider cursor pointing past the new list is clamped back in range.
func (c *StateCache) SetAds(loc domain.DisplayLocation, ads []domain.AdvertisementWithState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.placement(loc)
	p.ads = ads
	p.loading = false
	p.err = nil
	c.lastFetchedAt = c.now()
	for _, ad := range ads {
		if ad.IsDismissed {
			c.dismissed[ad.ID] = struct{}{}
		}
	}
	if s, ok := c.sliders[loc]; ok && s.index >= len(ads) {
		s.index = max(0, len(ads)-1)
	}
}

// SetError records a failed fetch. The previous ad list is kept so the UI
// can keep rendering stale content if it wants to.
func (c *StateCache) SetError(loc domain.DisplayLocation, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.placement(loc)
	p.loading = false
	p.err = err
}

// Ads returns the last-fetched list for a placement.
func (c *StateCache) Ads(loc domain.DisplayLocation) []domain.AdvertisementWithState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if p, ok := c.placements[loc]; ok {
		return p.ads
	}
	return nil
}

// Loading reports whether a fetch is in flight for the placement.
func (c *StateCache) Loading(loc domain.DisplayLocation) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if p, ok := c.placements[loc]; ok {
		return p.loading
	}
	return false
}

// Err returns the placement's last fetch error, nil after any success.
func (c *StateCache) Err(loc domain.DisplayLocation) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if p, ok := c.placements[loc]; ok {
		return p.err
	}
	return nil
}

// OpenModal marks a modal open showing the given ad and emits the
// ad_modal_opened event.
func (c *StateCache) OpenModal(adID string) {
	c.mu.Lock()
	c.modalOpen = true
	c.modalAdID = adID
	c.mu.Unlock()
	c.sink.Emit(analytics.EventModalOpened, adID)
}

// CloseModal closes any open modal and emits ad_modal_closed. A no-op
// when no modal is open.
func (c *StateCache) CloseModal() {
	c.mu.Lock()
	open, adID := c.modalOpen, c.modalAdID
	c.modalOpen = false
	c.modalAdID = ""
	c.mu.Unlock()
	if open {
		c.sink.Emit(analytics.EventModalClosed, adID)
	}
}

// Modal returns whether a modal is open and which ad it shows.
func (c *StateCache) Modal() (adID string, open bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.modalAdID, c.modalOpen
}

// SetSliderLooping controls wrap-around for a placement's slider.
func (c *StateCache) SetSliderLooping(loc domain.DisplayLocation, looping bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slider(loc).looping = looping
}

func (c *StateCache) slider(loc domain.DisplayLocation) *sliderState {
	s, ok := c.sliders[loc]
	if !ok {
		s = &sliderState{}
		c.sliders[loc] = s
	}
	return s
}

// SliderIndex returns the active slide for a placement.
func (c *StateCache) SliderIndex(loc domain.DisplayLocation) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if s, ok := c.sliders[loc]; ok {
		return s.index
	}
	return 0
}

// Advance moves a placement's slider one slide forward, wrapping when
// looping is enabled and clamping at the last slide otherwise. Returns
// the new index.
func (c *StateCache) Advance(loc domain.DisplayLocation) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.slider(loc)
	n := c.slideCount(loc)
	if n == 0 {
		s.index = 0
		return 0
	}
	if s.index < n-1 {
		s.index++
	} else if s.looping {
		s.index = 0
	}
	return s.index
}

// Retreat moves a placement's slider one slide back, wrapping when
// looping is enabled and clamping at the first slide otherwise. Returns
// the new index.
func (c *StateCache) Retreat(loc domain.DisplayLocation) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.slider(loc)
	n := c.slideCount(loc)
	if n == 0 {
		s.index = 0
		return 0
	}
	if s.index > 0 {
		s.index--
	} else if s.looping {
		s.index = n - 1
	}
	return s.index
}

func (c *StateCache) slideCount(loc domain.DisplayLocation) int {
	if p, ok := c.placements[loc]; ok {
		return len(p.ads)
	}
	return 0
}

// MarkDismissed mirrors a dismissal into the local id set so placements
// can hide the ad without re-querying the store.
func (c *StateCache) MarkDismissed(adID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dismissed[adID] = struct{}{}
}

// MarkSeen mirrors a seen-promo flag into the local id set.
func (c *StateCache) MarkSeen(adID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seen[adID] = struct{}{}
}

// IsDismissed reports the locally-known dismissal state of an ad.
func (c *StateCache) IsDismissed(adID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.dismissed[adID]
	return ok
}

// HasSeen reports the locally-known seen state of an ad.
func (c *StateCache) HasSeen(adID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.seen[adID]
	return ok
}

// ShouldRefetch reports whether placements should hit the engine again:
// true when nothing was ever fetched or the TTL window has elapsed.
func (c *StateCache) ShouldRefetch() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.lastFetchedAt.IsZero() {
		return true
	}
	return c.now().Sub(c.lastFetchedAt) > c.ttl
}
