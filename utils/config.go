package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Advisor AdvisorConfig `json:"advisor" yaml:"advisor"`
	Auth    AuthConfig    `json:"auth" yaml:"auth"`
	UI      UIConfig      `json:"ui" yaml:"ui"`
	Data    DataConfig    `json:"data" yaml:"data"`
}

// AdvisorConfig selects the text-generation provider used for mentoring advice
type AdvisorConfig struct {
	Provider       string                    `json:"provider" yaml:"provider"` // key into Providers
	TimeoutSeconds int                       `json:"timeout_seconds" yaml:"timeout_seconds"`
	Providers      map[string]ProviderConfig `json:"providers" yaml:"providers"`
}

// ProviderConfig represents LLM provider configuration
type ProviderConfig struct {
	DisplayName  string  `json:"display_name,omitempty" yaml:"display_name,omitempty"`
	APIKey       string  `json:"api_key" yaml:"api_key"`
	BaseURL      string  `json:"base_url" yaml:"base_url"`
	DefaultModel string  `json:"default_model" yaml:"default_model"`
	MaxTokens    int     `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty"`
	Temperature  float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
}

// AuthConfig controls credential hashing
type AuthConfig struct {
	HashCost int `json:"hash_cost,omitempty" yaml:"hash_cost,omitempty"` // bcrypt cost, 0 = default
}

// UIConfig represents UI configuration
type UIConfig struct {
	WindowWidth  int `json:"window_width" yaml:"window_width"`
	WindowHeight int `json:"window_height" yaml:"window_height"`
}

// DataConfig represents data storage configuration
type DataConfig struct {
	DBPath string `json:"db_path" yaml:"db_path"`
}

// LoadConfig loads configuration from a JSON or YAML file and applies
// environment overrides (a .env file in the working directory is honoured)
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if isYAML(configPath) {
		err = yaml.Unmarshal(data, &config)
	} else {
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.applyDefaults()

	// Missing .env is the normal case
	_ = godotenv.Load()
	config.applyEnvOverrides()

	config.Data.DBPath = expandPath(config.Data.DBPath)

	return &config, nil
}

// SaveConfig saves configuration to file
func SaveConfig(configPath string, config *Config) error {
	var (
		data []byte
		err  error
	)
	if isYAML(configPath) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Ensure directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyDefaults fills fields the file left out from DefaultConfig, so a
// partial config never ends up with an empty database path
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Advisor.Provider == "" {
		c.Advisor.Provider = defaults.Advisor.Provider
	}
	if c.Advisor.TimeoutSeconds <= 0 {
		c.Advisor.TimeoutSeconds = defaults.Advisor.TimeoutSeconds
	}
	if c.Advisor.Providers == nil {
		c.Advisor.Providers = make(map[string]ProviderConfig)
	}
	for name, provider := range defaults.Advisor.Providers {
		if _, ok := c.Advisor.Providers[name]; !ok {
			c.Advisor.Providers[name] = provider
		}
	}
	if c.UI.WindowWidth <= 0 {
		c.UI.WindowWidth = defaults.UI.WindowWidth
	}
	if c.UI.WindowHeight <= 0 {
		c.UI.WindowHeight = defaults.UI.WindowHeight
	}
	if c.Data.DBPath == "" {
		c.Data.DBPath = defaults.Data.DBPath
	}
}

// applyEnvOverrides fills provider API keys from the environment.
// API_KEY is accepted as a generic fallback for Gemini.
func (c *Config) applyEnvOverrides() {
	if c.Advisor.Providers == nil {
		c.Advisor.Providers = make(map[string]ProviderConfig)
	}

	overrides := map[string][]string{
		"gemini": {"GEMINI_API_KEY", "API_KEY"},
		"openai": {"OPENAI_API_KEY"},
	}
	for name, keys := range overrides {
		for _, key := range keys {
			value := os.Getenv(key)
			if value == "" {
				continue
			}
			provider := c.Advisor.Providers[name]
			provider.APIKey = value
			c.Advisor.Providers[name] = provider
			break
		}
	}

	if provider := os.Getenv("EDU_ADVISOR_PROVIDER"); provider != "" {
		c.Advisor.Provider = provider
	}
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// expandPath expands ~ and relative paths
func expandPath(path string) string {
	if len(path) == 0 {
		return path
	}

	// Expand ~
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[1:])
		}
	}

	// Make absolute
	absPath, err := filepath.Abs(path)
	if err == nil {
		return absPath
	}

	return path
}

// GetConfigPath returns the default config path
func GetConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to current directory
		return "./config/default.json"
	}

	return filepath.Join(configDir, "edu-messenger", "config.json")
}

// DefaultConfig returns the configuration written on first start
func DefaultConfig() *Config {
	return &Config{
		Advisor: AdvisorConfig{
			Provider:       "gemini",
			TimeoutSeconds: 30,
			Providers: map[string]ProviderConfig{
				"gemini": {
					DisplayName:  "Gemini",
					DefaultModel: "gemini-3-flash-preview",
					Temperature:  0.7,
				},
				"openai": {
					DisplayName:  "OpenAI",
					BaseURL:      "https://api.openai.com/v1",
					DefaultModel: "gpt-4o-mini",
					MaxTokens:    1024,
					Temperature:  0.7,
				},
			},
		},
		UI: UIConfig{
			WindowWidth:  1100,
			WindowHeight: 720,
		},
		Data: DataConfig{
			DBPath: "./data/edu-messenger.db",
		},
	}
}

// EnsureDefaultConfig creates a default config file if it doesn't exist
func EnsureDefaultConfig() (string, error) {
	configPath := GetConfigPath()

	// Check if config exists
	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil
	}

	if err := SaveConfig(configPath, DefaultConfig()); err != nil {
		return "", err
	}

	return configPath, nil
}
