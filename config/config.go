// Package config loads the tunables a hosting program supplies to the
// koru core: the checker's symbolic stack height, the array algorithms'
// element-count ceiling, and the default fill-context policy. This package
// only sources their values from the environment or a YAML file. Of the
// core packages, only the checker takes one of them as an argument (the
// start height, via checker.CheckStart); no core function reads the
// ceiling or the fill policy.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"
)

// Config carries the tunables a hosting program supplies to the core.
type Config struct {
	// StartHeight is the checker's symbolic stack's initial size
	// (checker.DefaultStartHeight if unset).
	StartHeight int `env:"KORU_START_HEIGHT" yaml:"start_height"`
	// TooLarge is an element-count ceiling for a hosting program to
	// enforce; algo.Range does not read it and reports value.TooLarge only
	// when its element count overflows int.
	TooLarge int `env:"KORU_TOO_LARGE" yaml:"too_large"`
	// DefaultFill reports whether value.NullContext or a filled context is
	// used when a hosting program doesn't supply one explicitly.
	DefaultFill bool `env:"KORU_DEFAULT_FILL" yaml:"default_fill"`
}

// defaults holds the values Load and LoadFile start from; StartHeight
// matches checker.DefaultStartHeight.
var defaults = Config{
	StartHeight: 16,
	TooLarge:    1 << 26,
	DefaultFill: false,
}

// Load reads a Config from environment variables via env.Parse, filling
// unset fields from defaults first.
func Load() (Config, error) {
	cfg := defaults
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse environment: %w", err)
	}
	return cfg, nil
}

// LoadFile reads a Config from a YAML file, filling unset fields from
// defaults first, then overlaying environment variables on top.
func LoadFile(path string) (Config, error) {
	cfg := defaults

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse environment: %w", err)
	}
	return cfg, nil
}
