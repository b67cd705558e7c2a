package gems

// Config holds configuration for the gems family.
type Config struct {
	// Enabled toggles syncing and serving of the gems mirror.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// BaseURL is the root of a registry serving the compact index.
	BaseURL string `mapstructure:"base_url" default:"https://rubygems.org"`
	// Table is the mirror table of the family.
	Table string `mapstructure:"table" default:"remote_gems"`
}
