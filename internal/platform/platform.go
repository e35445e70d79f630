// Package platform classifies the runtime a request originates from.
package platform

import (
	"strings"

	"exo-ads/internal/core/domain"
)

// Provider reports the platform ads should be targeted at. It is kept as
// an interface so the engine can be tested without depending on runtime
// environment strings.
type Provider interface {
	Detect(userAgent string) domain.Platform
}

// UserAgentProvider classifies android/ios/web from a user agent string.
type UserAgentProvider struct{}

func NewUserAgentProvider() UserAgentProvider { return UserAgentProvider{} }

// Detect returns the platform for the given user agent. Anything that is
// not recognisably Android or iOS counts as web, including an empty UA.
func (UserAgentProvider) Detect(userAgent string) domain.Platform {
	ua := strings.ToLower(userAgent)
	switch {
	case strings.Contains(ua, "android"):
		return domain.PlatformAndroid
	case strings.Contains(ua, "iphone"), strings.Contains(ua, "ipad"), strings.Contains(ua, "ipod"):
		return domain.PlatformIOS
	default:
		return domain.PlatformWeb
	}
}

// Static always reports a fixed platform. Used in tests.
type Static struct {
	Platform domain.Platform
}

func (s Static) Detect(string) domain.Platform { return s.Platform }
