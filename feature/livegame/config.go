package livegame

// Config holds live game defaults.
type Config struct {
	// Team is the side recorded when a request does not name one ("one" or "two").
	Team string `mapstructure:"team" default:"one"`
}
