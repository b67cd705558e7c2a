package cache

// Config holds configuration for the rendered page cache.
type Config struct {
	// Enabled turns on invalidation against object storage.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Prefix is the object prefix cached pages live under.
	Prefix string `mapstructure:"prefix" default:"cache"`
	// Suffix is appended to every key to form the object name.
	Suffix string `mapstructure:"suffix" default:".html"`
}
