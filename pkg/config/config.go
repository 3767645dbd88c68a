package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/rubiojr/tracklog/pkg/log"
)

//go:embed config.toml.sample
var configTemplate string

// Rule kinds accepted by SetRule.
const (
	KindFile = "file"
	KindTag  = "tag"
)

var ErrUnknownRuleKind = errors.New("unknown rule kind (want file or tag)")

type Config struct {
	Enabled bool            `toml:"enabled"`
	Files   map[string]bool `toml:"files"`
	Tags    map[string]bool `toml:"tags"`
}

func GetDefaultConfig() *Config {
	return &Config{
		Enabled: true,
		Files:   make(map[string]bool),
		Tags:    make(map[string]bool),
	}
}

// LoadConfig reads the rule file at configPath. A missing file yields the
// default configuration.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig decodes TOML rules. Keys absent from data keep their defaults.
func ParseConfig(data []byte) (*Config, error) {
	config := GetDefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if config.Files == nil {
		config.Files = make(map[string]bool)
	}
	if config.Tags == nil {
		config.Tags = make(map[string]bool)
	}

	return config, nil
}

func (c *Config) SaveConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// SaveTemplateConfig writes the commented sample rule file.
func (c *Config) SaveTemplateConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(configPath, []byte(configTemplate), 0644)
}

func (c *Config) SetFileRule(name string, enabled bool) {
	c.Files[name] = enabled
}

func (c *Config) SetTagRule(tag string, enabled bool) {
	c.Tags[tag] = enabled
}

// SetRule sets a file or tag rule depending on kind.
func (c *Config) SetRule(kind, name string, enabled bool) error {
	switch kind {
	case KindFile:
		c.SetFileRule(name, enabled)
	case KindTag:
		c.SetTagRule(name, enabled)
	default:
		return fmt.Errorf("%q: %w", kind, ErrUnknownRuleKind)
	}
	return nil
}

// Apply replaces the rules in s with the ones in c and sets the global switch
// in a single step. Discovery state in s is kept.
func (c *Config) Apply(s *log.Settings) {
	s.ReplaceRules(c.Enabled, c.Files, c.Tags)
}

// GetConfigDir returns the configuration directory for tracklog
func GetConfigDir() (string, error) {
	// Use XDG_CONFIG_HOME if set, otherwise use ~/.config
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "tracklog"), nil
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}
