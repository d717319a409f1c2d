// Package config reads the server settings from the environment.
package config

import (
	"errors"
	"time"

	"github.com/joeshaw/envdecode"
)

// Config holds every tunable of the serving process
type Config struct {
	Addr           string        `env:"TUPELO_ADDR,default=:8052"`
	TargetScore    int           `env:"TUPELO_TARGET_SCORE,default=52"`
	JoinTimeout    time.Duration `env:"TUPELO_JOIN_TIMEOUT,default=5s"`
	TokenSecret    string        `env:"TUPELO_TOKEN_SECRET"`
	TokenTTL       time.Duration `env:"TUPELO_TOKEN_TTL,default=24h"`
	ReapSchedule   string        `env:"TUPELO_REAP_SCHEDULE,default=@every 10m"`
	AllowedOrigins []string      `env:"TUPELO_ALLOWED_ORIGINS,default=*"`
	EventBuffer    int           `env:"TUPELO_EVENT_BUFFER,default=256"`
	Dev            bool          `env:"TUPELO_DEV,default=false"`
}

var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrMissingSecret = errors.New("TUPELO_TOKEN_SECRET must be set outside dev mode")
)

// Load decodes the environment into a Config. Unset variables take their
// defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot run with. An empty token
// secret is only allowed in dev mode, where the caller picks a random one.
func (c *Config) Validate() error {
	if c.Addr == "" || c.TargetScore <= 0 || c.JoinTimeout <= 0 ||
		c.TokenTTL <= 0 || c.EventBuffer <= 0 {
		return ErrInvalidConfig
	}
	if c.TokenSecret == "" && !c.Dev {
		return ErrMissingSecret
	}
	return nil
}
