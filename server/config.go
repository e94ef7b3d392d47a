package server

import (
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/ottoh/crazyeights"
)

// Config is the server's environment-driven configuration
type Config struct {
	Addr          string        `env:"CRAZYEIGHTS_ADDR,default=:8000"`
	HandSize      int           `env:"CRAZYEIGHTS_HAND_SIZE,default=8"`
	UseJokers     bool          `env:"CRAZYEIGHTS_JOKERS,default=true"`
	Use2s         bool          `env:"CRAZYEIGHTS_TWOS_FORCE_DRAW,default=true"`
	Use7s         bool          `env:"CRAZYEIGHTS_SEVEN_SKIPS,default=true"`
	UseJacks      bool          `env:"CRAZYEIGHTS_JACK_REVERSES,default=true"`
	UseKings      bool          `env:"CRAZYEIGHTS_KING_GOES_AGAIN,default=true"`
	ComputerDelay time.Duration `env:"CRAZYEIGHTS_COMPUTER_DELAY,default=1s"`
}

// LoadConfig reads configuration from the environment
func LoadConfig() (Config, error) {
	var c Config
	err := envdecode.Decode(&c)
	return c, err
}

// DefaultConfig returns the configuration used when the environment
// is not consulted, e.g. in tests.
func DefaultConfig() Config {
	return Config{
		Addr:          ":8000",
		HandSize:      8,
		UseJokers:     true,
		Use2s:         true,
		Use7s:         true,
		UseJacks:      true,
		UseKings:      true,
		ComputerDelay: time.Second,
	}
}

// Ruleset maps the configured house rules into the engine's ruleset
func (c Config) Ruleset() crazyeights.Ruleset {
	return crazyeights.Ruleset{
		UseJokers:      c.UseJokers,
		Use2sForceDraw: c.Use2s,
		Use7Skip:       c.Use7s,
		UseJackReverse: c.UseJacks,
		UseKingGoAgain: c.UseKings,
		HandSize:       c.HandSize,
	}
}
