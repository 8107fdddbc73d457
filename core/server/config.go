package server

import "fmt"

// Config holds configuration for the local tracker HTTP API.
type Config struct {
	// Host is the interface the API binds to. The API drives a single scorekeeper's
	// device, so it listens on loopback unless told otherwise.
	Host string `mapstructure:"host" default:"127.0.0.1"`
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables the check.
	ApiKey string `mapstructure:"api_key" default:""`
}

// Address returns the listen address.
func (c Config) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}
