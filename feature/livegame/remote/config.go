package remote

// Config holds configuration for the remote authority client.
type Config struct {
	// BaseURL is the root of the remote API, e.g. https://api.example.com.
	BaseURL string `mapstructure:"base_url" default:"http://localhost:3000"`
	// TimeoutSeconds bounds each remote call.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
