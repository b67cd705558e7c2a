package modules

// Config holds configuration for the modules family.
type Config struct {
	// Enabled toggles syncing and serving of the modules mirror.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// BaseURL is the root of a Forge v3 compatible API.
	BaseURL string `mapstructure:"base_url" default:"https://forgeapi.puppet.com"`
	// Table is the mirror table of the family.
	Table string `mapstructure:"table" default:"remote_modules"`
	// PageSize is the number of results requested per page.
	PageSize int `mapstructure:"page_size" default:"100"`
	// MaxPages bounds the module listing for development. Zero walks every page.
	MaxPages int `mapstructure:"max_pages" default:"0"`
}
