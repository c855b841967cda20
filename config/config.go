// Package config loads runtime settings from the environment, an optional
// .env file and command-line overrides.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
)

type Config struct {
	// BaseURL is the root of the static tree holding novels/.
	BaseURL string `env:"NOVEL_READER_BASE_URL" envDefault:"http://localhost:8080/"`

	// Addr is the listen address of the serve command.
	Addr string `env:"NOVEL_READER_ADDR" envDefault:":8080"`

	// StaticDir, when set, is served under /novels/ by the serve command.
	StaticDir string `env:"NOVEL_READER_STATIC_DIR"`

	// Sanitize routes chapter markup through an HTML sanitizer before it is
	// rendered. Off by default: published content is trusted.
	Sanitize bool `env:"NOVEL_READER_SANITIZE" envDefault:"false"`

	// CORSOrigins lists origins allowed to fetch the static tree.
	CORSOrigins []string `env:"NOVEL_READER_CORS_ORIGINS" envDefault:"*" envSeparator:","`

	Debug bool `env:"NOVEL_READER_DEBUG" envDefault:"false"`
}

// Load reads envFile if it exists and then parses the environment.
// Variables already set in the environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %v: %w", envFile, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required, is.URL),
		validation.Field(&c.Addr, validation.Required),
	)
}
