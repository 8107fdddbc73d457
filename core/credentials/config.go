package credentials

// Config holds the credentials used to call the remote authority.
type Config struct {
	// AccessToken is the initial bearer token.
	AccessToken string `mapstructure:"access_token" default:""`
	// RefreshToken is exchanged for a new access token when the current one is rejected.
	RefreshToken string `mapstructure:"refresh_token" default:""`
	// TokenURL is the OAuth2 token endpoint. Without it tokens are never refreshed.
	TokenURL string `mapstructure:"token_url" default:""`
	// ClientID identifies the tracker to the token endpoint.
	ClientID string `mapstructure:"client_id" default:""`
	// ClientSecret authenticates the tracker to the token endpoint.
	ClientSecret string `mapstructure:"client_secret" default:""`
}
