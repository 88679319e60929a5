// Package config loads engine settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds everything tunable from the environment. Defaults match the
// production values the clients assume.
type Config struct {
	HTTPAddr       string        `env:"HTTP_ADDR" envDefault:":5000"`
	UserServiceURL string        `env:"USER_SERVICE_URL" envDefault:"http://localhost:3000"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	TurnDuration   time.Duration `env:"TURN_DURATION" envDefault:"40s"`
	SettleDelay    time.Duration `env:"SETTLE_DELAY" envDefault:"1500ms"`
	TurnsPerPlayer int           `env:"TURNS_PER_PLAYER" envDefault:"2"`
	Debug          bool          `env:"DEBUG" envDefault:"false"`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
