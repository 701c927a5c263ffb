// Package config loads CLI defaults from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/praetorian-inc/needle/pkg/matcher"
	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable that points at a config file.
const EnvVar = "NEEDLE_CONFIG"

// DefaultFile is looked up in the working directory when neither a flag nor
// EnvVar names a file.
const DefaultFile = ".needle.yaml"

// Config holds CLI defaults. Flags that are set explicitly take precedence.
type Config struct {
	Algorithm    string `yaml:"algorithm"`
	Modulus      int    `yaml:"modulus"`
	Base         int    `yaml:"base"`
	Format       string `yaml:"format"`
	Color        string `yaml:"color"`
	ContextLines int    `yaml:"context_lines"`
	Database     string `yaml:"database"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Algorithm:    string(matcher.AlgorithmKMP),
		Modulus:      matcher.DefaultModulus,
		Base:         matcher.DefaultBase,
		Format:       "human",
		Color:        "auto",
		ContextLines: 0,
		Database:     "needle.db",
	}
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the config file at path. An empty path resolves through EnvVar
// and then DefaultFile; a missing default file yields Default().
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		if env := os.Getenv(EnvVar); env != "" {
			path, explicit = env, true
		} else {
			path = DefaultFile
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values.
func (c Config) Validate() error {
	if _, err := matcher.ParseAlgorithm(c.Algorithm); err != nil {
		return err
	}
	if c.Modulus <= 0 {
		return matcher.ErrInvalidModulus
	}
	if c.Base < 0 {
		return matcher.ErrInvalidBase
	}
	switch c.Format {
	case "human", "json", "sarif":
	default:
		return fmt.Errorf("unknown output format: %s", c.Format)
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("unknown color mode: %s", c.Color)
	}
	if c.ContextLines < 0 {
		return fmt.Errorf("context_lines must not be negative")
	}
	return nil
}

// MatcherConfig converts the defaults into a matcher configuration.
func (c Config) MatcherConfig() (matcher.Config, error) {
	algo, err := matcher.ParseAlgorithm(c.Algorithm)
	if err != nil {
		return matcher.Config{}, err
	}
	return matcher.Config{Algorithm: algo, Modulus: c.Modulus, Base: c.Base}, nil
}
