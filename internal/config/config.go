// Package config loads server configuration from the environment and flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"uno-game/internal/database"
	"uno-game/internal/game"

	"github.com/caarlos0/env/v11"
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"
)

// maxSeats keeps a full deal plus the opening card within one deck.
const maxSeats = 10

// Config holds server configuration.
type Config struct {
	HTTPAddr       string   `env:"UNO_HTTP_ADDR" envDefault:":8080"`
	StaticDir      string   `env:"UNO_STATIC_DIR" envDefault:"web/static"`
	DBDriver       string   `env:"UNO_DB_DRIVER" envDefault:"sqlite3"`
	DBDSN          string   `env:"UNO_DB_DSN" envDefault:"./uno.db"`
	MaxPlayers     int      `env:"UNO_MAX_PLAYERS" envDefault:"8"`
	Stacking       bool     `env:"UNO_STACKING" envDefault:"true"`
	LogLevel       string   `env:"UNO_LOG_LEVEL" envDefault:"info"`
	AllowedOrigins []string `env:"UNO_ALLOWED_ORIGINS" envSeparator:","`
}

// ParseConfig reads the environment, then lets flags in args override it.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	if fs == nil {
		return Config{}, errors.New("flag parser is required")
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.StaticDir, "static-dir", cfg.StaticDir, "Directory served at /")
	fs.StringVar(&cfg.DBDriver, "db-driver", cfg.DBDriver, "Results database driver (sqlite3 or pgx)")
	fs.StringVar(&cfg.DBDSN, "db-dsn", cfg.DBDSN, "Results database DSN")
	fs.IntVar(&cfg.MaxPlayers, "max-players", cfg.MaxPlayers, "Maximum players per room")
	fs.BoolVar(&cfg.Stacking, "stacking", cfg.Stacking, "Allow stacking +2/+4 onto a pending draw")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that env and flag parsing cannot.
func (c Config) Validate() error {
	if c.DBDriver != database.DriverSQLite && c.DBDriver != database.DriverPostgres {
		return fmt.Errorf("db driver must be %s or %s, got %q", database.DriverSQLite, database.DriverPostgres, c.DBDriver)
	}
	if c.MaxPlayers < 2 || c.MaxPlayers > maxSeats {
		return fmt.Errorf("max players must be between 2 and %d, got %d", maxSeats, c.MaxPlayers)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

// Level returns the configured zerolog level.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// Rules returns the game rules selected by the configuration.
func (c Config) Rules() game.Rules {
	rules := game.DefaultRules()
	rules.MaxPlayers = c.MaxPlayers
	rules.Stacking = c.Stacking
	return rules
}
