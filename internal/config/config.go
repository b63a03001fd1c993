package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Provider   string           `yaml:"provider"`
	Model      string           `yaml:"model"`
	BaseURL    string           `yaml:"base_url,omitempty"`
	LogLevel   string           `yaml:"log_level"`
	DBPath     string           `yaml:"db_path"`
	PromptsDir string           `yaml:"prompts_dir,omitempty"`
	Keyring    KeyringConfig    `yaml:"keyring"`
	Generation GenerationConfig `yaml:"generation"`
}

// KeyringConfig names where API keys are looked up.
type KeyringConfig struct {
	Service        string `yaml:"service"`
	CredentialName string `yaml:"credential_name"`
}

// GenerationConfig carries sampling parameters sent with every turn.
type GenerationConfig struct {
	Temperature     float32 `yaml:"temperature"`
	TopP            float32 `yaml:"top_p"`
	TopK            int32   `yaml:"top_k"`
	MaxOutputTokens int     `yaml:"max_output_tokens"`
}

// Default returns a config with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads path, applies defaults and validates. An empty path or a missing
// default file yields the defaults; a missing explicit file is an error.
func Load(path string) (*Config, error) {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultConfigFile
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if c.Provider == "" {
		c.Provider = DefaultProvider
	}
	if strings.TrimSpace(c.Model) == "" && c.Provider == ProviderGemini {
		c.Model = DefaultModel
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Keyring.Service == "" {
		c.Keyring.Service = DefaultKeyringService
	}
	if c.Keyring.CredentialName == "" {
		c.Keyring.CredentialName = DefaultCredentialName[c.Provider]
	}
	if c.Generation.Temperature == 0 {
		c.Generation.Temperature = DefaultTemperature
	}
	if c.Generation.TopP == 0 {
		c.Generation.TopP = DefaultTopP
	}
	if c.Generation.TopK == 0 {
		c.Generation.TopK = DefaultTopK
	}
	if c.Generation.MaxOutputTokens == 0 {
		c.Generation.MaxOutputTokens = DefaultMaxOutputTokens
	}
}

// Validate checks provider and generation bounds.
func (c *Config) Validate() error {
	if _, ok := DefaultCredentialName[c.Provider]; !ok {
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("model is required for provider %s", c.Provider)
	}
	if c.Generation.Temperature < 0 || c.Generation.Temperature > 2 {
		return fmt.Errorf("temperature must be within [0, 2], got %v", c.Generation.Temperature)
	}
	if c.Generation.TopP <= 0 || c.Generation.TopP > 1 {
		return fmt.Errorf("top_p must be within (0, 1], got %v", c.Generation.TopP)
	}
	if c.Generation.TopK < 0 {
		return fmt.Errorf("top_k must not be negative, got %d", c.Generation.TopK)
	}
	if c.Generation.MaxOutputTokens <= 0 {
		return fmt.Errorf("max_output_tokens must be positive, got %d", c.Generation.MaxOutputTokens)
	}
	return nil
}
