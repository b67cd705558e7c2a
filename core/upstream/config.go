package upstream

// Config holds configuration for requests against upstream registries.
type Config struct {
	// UserAgent is sent with every upstream request.
	UserAgent string `mapstructure:"user_agent" default:"catalog-mirror"`
	// TimeoutSeconds bounds a single upstream request, body included.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"120"`
	// RequestsPerSecond throttles requests per client. Zero disables throttling.
	RequestsPerSecond float64 `mapstructure:"requests_per_second" default:"5"`
}
