package config

import (
	"reflect"
	"strings"

	"game-tracker/core/credentials"
	"game-tracker/core/database"
	"game-tracker/core/logger"
	"game-tracker/core/server"
	"game-tracker/core/storage"
	"game-tracker/feature/livegame"
	"game-tracker/feature/livegame/remote"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the local HTTP API.
	Server server.Config `mapstructure:"server"`
	// Database holds configuration for the local store.
	Database database.Config `mapstructure:"database"`
	// Remote holds configuration for the remote authority client.
	Remote remote.Config `mapstructure:"remote"`
	// Credentials holds the bearer credential settings for remote calls.
	Credentials credentials.Config `mapstructure:"credentials"`
	// Storage holds configuration for the archive object storage.
	Storage storage.Config `mapstructure:"storage"`
	// Tracker holds live game defaults.
	Tracker livegame.Config `mapstructure:"tracker"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. REMOTE_BASE_URL -> remote.base_url)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
