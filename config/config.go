// Package config reads the process configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

const EnvPrefix = "LOANPREDICTOR_"

// Config holds every setting that can be provided through the environment. Command line flags
// take precedence over these values.
type Config struct {
	ArtifactDir  string `env:"ARTIFACT_DIR" envDefault:"."`
	ModelFile    string `env:"MODEL_FILE"`
	ScalerFile   string `env:"SCALER_FILE"`
	EncoderFile  string `env:"ENCODER_FILE"`
	Addr         string `env:"ADDR" envDefault:"127.0.0.1:8080"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat    string `env:"LOG_FORMAT" envDefault:"text"`
	RangeOffset  int    `env:"RANGE_OFFSET" envDefault:"110"`
	NumericMin   int    `env:"NUMERIC_MIN" envDefault:"0"`
	NumericMax   int    `env:"NUMERIC_MAX" envDefault:"100"`
	NumericValue int    `env:"NUMERIC_DEFAULT" envDefault:"1"`
}

// ParseEnv populates target from environment variables.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the configuration from the environment
func Load() (*Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
