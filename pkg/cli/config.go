package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// UserConfig represents ~/.appseed/config.yaml.
type UserConfig struct {
	CurrentProfile string             `yaml:"current-profile"`
	Profiles       map[string]Profile `yaml:"profiles"`
}

// Profile is a single named connection configuration.
type Profile struct {
	Endpoint  string `yaml:"endpoint,omitempty"`
	ProjectID string `yaml:"project-id,omitempty"`
	APIKey    string `yaml:"api-key,omitempty"`
}

// ActiveProfile returns the profile to use based on the override or current-profile.
func (c *UserConfig) ActiveProfile(override string) Profile {
	name := c.CurrentProfile
	if override != "" {
		name = override
	}
	if p, ok := c.Profiles[name]; ok {
		return p
	}
	return Profile{}
}

// ConfigDir returns the path to ~/.appseed/.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".appseed")
}

// ConfigPath returns the path to ~/.appseed/config.yaml.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// LoadUserConfig reads ~/.appseed/config.yaml.
func LoadUserConfig() (*UserConfig, error) {
	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg UserConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Profiles == nil {
		cfg.Profiles = map[string]Profile{}
	}
	return &cfg, nil
}

// SaveUserConfig writes ~/.appseed/config.yaml.
func SaveUserConfig(cfg *UserConfig) error {
	if err := os.MkdirAll(ConfigDir(), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(ConfigPath(), data, 0o600)
}

// saveProfile records bootstrap credentials in the named (or active) profile.
func saveProfile(override, endpoint, apiKey, projectID string) error {
	cfg, err := LoadUserConfig()
	if err != nil {
		cfg = &UserConfig{Profiles: map[string]Profile{}}
	}
	name := override
	if name == "" {
		name = cfg.CurrentProfile
	}
	if name == "" {
		name = "default"
		cfg.CurrentProfile = name
	}
	if cfg.Profiles == nil {
		cfg.Profiles = map[string]Profile{}
	}
	cfg.Profiles[name] = Profile{
		Endpoint:  endpoint,
		ProjectID: projectID,
		APIKey:    apiKey,
	}
	return SaveUserConfig(cfg)
}
