package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port     int    `env:"PORT"      envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	RoundDuration time.Duration `env:"ROUND_DURATION" envDefault:"180s"`
	TickInterval  time.Duration `env:"TICK_INTERVAL"  envDefault:"1s"`

	// LocationsFile replaces the built-in catalog when set.
	LocationsFile string `env:"LOCATIONS_FILE"`

	// DatabaseURL enables the outcome archive when set.
	DatabaseURL    string        `env:"DATABASE_URL"`
	ArchiveTimeout time.Duration `env:"ARCHIVE_TIMEOUT" envDefault:"5s"`

	WSSendBuffer int `env:"WS_SEND_BUFFER" envDefault:"64"`
}

// Load reads the given .env files (".env" when none are named) into the
// process environment, then parses it. Missing files are skipped and
// variables already set win over file values.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}
	return Parse()
}

// Parse builds a Config from the environment alone.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.Port <= 0 || c.Port > 65535:
		return fmt.Errorf("invalid PORT %d", c.Port)
	case c.RoundDuration <= 0:
		return fmt.Errorf("ROUND_DURATION must be positive, got %s", c.RoundDuration)
	case c.TickInterval <= 0:
		return fmt.Errorf("TICK_INTERVAL must be positive, got %s", c.TickInterval)
	case c.ArchiveTimeout <= 0:
		return fmt.Errorf("ARCHIVE_TIMEOUT must be positive, got %s", c.ArchiveTimeout)
	case c.WSSendBuffer <= 0:
		return fmt.Errorf("WS_SEND_BUFFER must be positive, got %d", c.WSSendBuffer)
	}
	return nil
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
