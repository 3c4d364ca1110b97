package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds the API runtime settings, read from config.yaml when present
// with environment variables taking precedence.
type Config struct {
	HTTP     HTTP     `yaml:"http"`
	CORS     CORS     `yaml:"cors"`
	Database Database `yaml:"database"`
	Tickets  Tickets  `yaml:"tickets"`
}

type HTTP struct {
	Port            string        `yaml:"port" env:"PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type CORS struct {
	Origins []string `yaml:"origins" env:"CORS_ORIGINS" env-default:"http://localhost:5173,http://127.0.0.1:5173"`
}

type Database struct {
	// URL enables the Postgres-backed event directory when set. Ticket state
	// is always kept in memory.
	URL string `yaml:"url" env:"DATABASE_URL"`
}

type Tickets struct {
	ReservationTTL time.Duration `yaml:"reservation_ttl" env:"RESERVATION_TTL" env-default:"10m"`
}

// Load reads config.yaml when it exists, falling back to environment
// variables alone, then lets the environment override file values.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("config error: %w", err)
		}
		return cfg, nil
	}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	return cfg, nil
}
