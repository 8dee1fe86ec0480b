package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultPath = "./config.yaml"

// Load resolves the YAML file from CONFIG_PATH (fallback "./config.yaml")
// and delegates to LoadFile. Only an explicit CONFIG_PATH must exist.
func Load() (*Config, error) {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return LoadFile(path, true)
	}
	return LoadFile(defaultPath, false)
}

// LoadFile reads configuration from path and the environment.
// Priority: ENV > YAML > defaults (via env-default tags). When the file is
// absent and not required, ENV and defaults are used alone.
// An empty llm.api_key falls back to OPENAI_API_KEY.
func LoadFile(path string, required bool) (*Config, error) {
	var cfg Config

	err := readFile(path, &cfg)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !required:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	case err != nil:
		return nil, err
	}

	cfg.applyFallbacks()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

func readFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("config: file %s: %w", path, err)
	}
	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	return nil
}

// applyFallbacks fills settings that have a secondary source.
func (c *Config) applyFallbacks() {
	if c.LLM.APIKey == "" {
		c.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}
}
