// Package config reads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/aaronzipp/twenty-questions/internal/game"
)

var validate = validator.New()

// Config holds everything the CLI needs before it can build a game handler.
type Config struct {
	// DBPath selects the SQLite store. Empty means an in-memory store seeded from the catalog.
	DBPath      string `env:"TWENTYQ_DB_PATH"`
	CatalogPath string `env:"TWENTYQ_CATALOG" envDefault:"data/catalog.yaml" validate:"required"`
	MetricsFile string `env:"TWENTYQ_METRICS_FILE"`
	Debug       string `env:"DEBUG"`

	StartTokens []string `env:"TWENTYQ_START_TOKENS" envSeparator:"," envDefault:"start,はじめる" validate:"min=1,dive,required"`
	YesTokens   []string `env:"TWENTYQ_YES_TOKENS" envSeparator:"," envDefault:"yes,はい" validate:"min=1,dive,required"`
	NoTokens    []string `env:"TWENTYQ_NO_TOKENS" envSeparator:"," envDefault:"no,いいえ" validate:"min=1,dive,required"`
}

// Load reads an optional .env file, then the process environment.
func Load() (Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit dotenv path. A missing file is not an error.
// Variables already set in the environment win over the file.
func LoadFile(dotenv string) (Config, error) {
	if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", dotenv, err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.StartTokens = trimAll(cfg.StartTokens)
	cfg.YesTokens = trimAll(cfg.YesTokens)
	cfg.NoTokens = trimAll(cfg.NoTokens)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field rules and that no token belongs to two classes.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	seen := map[string]string{}
	for class, tokens := range map[string][]string{
		"start": c.StartTokens,
		"yes":   c.YesTokens,
		"no":    c.NoTokens,
	} {
		for _, tok := range tokens {
			key := strings.ToLower(tok)
			if other, ok := seen[key]; ok && other != class {
				return fmt.Errorf("invalid config: token %q is both %s and %s", tok, other, class)
			}
			seen[key] = class
		}
	}
	return nil
}

// DebugEnabled reports whether DEBUG is set to anything.
func (c Config) DebugEnabled() bool {
	return c.Debug != ""
}

// Vocabulary builds the input vocabulary of the state machine.
func (c Config) Vocabulary() game.Vocabulary {
	return game.Vocabulary{
		Start: c.StartTokens,
		Yes:   c.YesTokens,
		No:    c.NoTokens,
	}
}

func trimAll(tokens []string) []string {
	out := tokens[:0]
	for _, t := range tokens {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
