package configs

import "time"

// Ads holds tunables for the promotion engine and its client state cache.
type Ads struct {
	// DefaultCooldownDays applies when neither a dismissal request nor the
	// ad itself specify a cooldown.
	DefaultCooldownDays int `env:"DEFAULT_COOLDOWN_DAYS" envDefault:"20"`
	// CacheTTL is the refetch-suppression window of the client state cache.
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"5m"`
	// SeedOnStartup bulk-creates the predefined promotional catalog on
	// boot. Intended for fresh environments only.
	SeedOnStartup bool `env:"SEED_ON_STARTUP" envDefault:"false"`
}
