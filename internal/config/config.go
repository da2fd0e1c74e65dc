// Package config reads server settings from the environment, after an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/DoyleJ11/breach-backend/internal/catalog"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Addr           string          `env:"ADDR" envDefault:":3001"`
	AllowedOrigins []string        `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"localhost:*,127.0.0.1:*"`
	DatabaseURL    string          `env:"DATABASE_URL"` // empty disables the round archive
	CatalogPath    string          `env:"CATALOG_PATH"`
	DefaultMatchID string          `env:"DEFAULT_MATCH_ID" envDefault:"match_1"`
	LogLevel       string          `env:"LOG_LEVEL" envDefault:"info"`
	LogDev         bool            `env:"LOG_DEV"`
	ArchiveBuffer  int             `env:"ARCHIVE_BUFFER" envDefault:"64"`
	Timings        catalog.Timings `envPrefix:"TIMING_"`
}

// Load reads the given dotenv files (".env" when none are named) and then the
// environment. Missing dotenv files are fine; real variables win over them.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return Parse()
}

// Parse reads Config from the process environment only.
func Parse() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	var err error
	if c.Addr == "" {
		err = multierr.Append(err, errors.New("ADDR is empty"))
	}
	if c.DefaultMatchID == "" {
		err = multierr.Append(err, errors.New("DEFAULT_MATCH_ID is empty"))
	}
	if c.ArchiveBuffer <= 0 {
		err = multierr.Append(err, fmt.Errorf("ARCHIVE_BUFFER must be positive, got %d", c.ArchiveBuffer))
	}
	if _, perr := zapcore.ParseLevel(c.LogLevel); perr != nil {
		err = multierr.Append(err, fmt.Errorf("LOG_LEVEL: %w", perr))
	}
	t := c.Timings
	for name, d := range map[string]time.Duration{
		"TIMING_OPERATOR_SELECT": t.OperatorSelect,
		"TIMING_PREP":            t.Prep,
		"TIMING_ACTION":          t.Action,
		"TIMING_ROUND_END":       t.RoundEnd,
		"TIMING_BOMB":            t.Bomb,
		"TIMING_DEFUSE":          t.Defuse,
	} {
		if d <= 0 {
			err = multierr.Append(err, fmt.Errorf("%s must be positive", name))
		}
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Logger builds the process logger: JSON in production, console when LogDev
// is set.
func (c Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if c.LogDev {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
