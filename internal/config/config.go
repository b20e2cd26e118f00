// Package config loads runtime settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	StoreKind    string  `env:"PUNNETT_STORE" envDefault:"sqlite"`
	DBPath       string  `env:"PUNNETT_DB_PATH" envDefault:"punnettlab.db"`
	ArtifactsDir string  `env:"PUNNETT_ARTIFACTS_DIR" envDefault:"crosses"`
	ExportsDir   string  `env:"PUNNETT_EXPORTS_DIR" envDefault:"exports"`
	TraitsFile   string  `env:"PUNNETT_TRAITS_FILE"`
	Locale       string  `env:"PUNNETT_LOCALE" envDefault:"en"`
	Policy       string  `env:"PUNNETT_POLICY" envDefault:"permissive"`
	Speed        float64 `env:"PUNNETT_SPEED" envDefault:"1"`
	LogDir       string  `env:"PUNNETT_LOG_DIR"`
	Debug        bool    `env:"PUNNETT_DEBUG"`
}

// Load reads Config from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFrom reads Config from the given variables only, ignoring the process environment.
func LoadFrom(vars map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
