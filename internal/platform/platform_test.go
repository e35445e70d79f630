package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"exo-ads/internal/core/domain"
)

func TestDetect(t *testing.T) {
	p := NewUserAgentProvider()

	cases := []struct {
		ua   string
		want domain.Platform
	}{
		{"Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36", domain.PlatformAndroid},
		{"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)", domain.PlatformIOS},
		{"Mozilla/5.0 (iPad; CPU OS 16_6 like Mac OS X)", domain.PlatformIOS},
		{"Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/126.0", domain.PlatformWeb},
		{"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) Safari/605.1.15", domain.PlatformWeb},
		{"", domain.PlatformWeb},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, p.Detect(tc.ua), "ua=%q", tc.ua)
	}
}
