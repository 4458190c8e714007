package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

const (
	// DefaultSheetRange is read when SHEET_RANGE is unset.
	DefaultSheetRange = "Sheet1!A:B"
	DefaultPort       = 3000
)

// Config holds everything the service reads from its environment. YAML tags
// cover the optional local config file used outside production.
type Config struct {
	CredentialsJSON string `yaml:"googleCredentials"`
	SheetID         string `yaml:"sheetId"`
	SheetRange      string `yaml:"sheetRange"`
	Port            int    `yaml:"port"`
	Environment     string `yaml:"environment"`
}

// FromEnv builds a Config from environment variables alone.
func FromEnv() Config {
	var cfg Config
	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg
}

// Load reads a YAML config file and overlays environment variables on top,
// so a local file never shadows what the deployment sets.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("couldn't parse config file %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

// Production reports whether the service runs in production mode, where
// local config-file loading is disabled.
func (c Config) Production() bool {
	return c.Environment == "production"
}

func (c *Config) applyEnv() {
	if v := os.Getenv("GOOGLE_CREDENTIALS"); v != "" {
		c.CredentialsJSON = v
	}
	if v := os.Getenv("SHEET_ID"); v != "" {
		c.SheetID = v
	}
	if v := os.Getenv("SHEET_RANGE"); v != "" {
		c.SheetRange = v
	}
	if v := os.Getenv("ENVIRONMENT"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
}

func (c *Config) applyDefaults() {
	if c.SheetRange == "" {
		c.SheetRange = DefaultSheetRange
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
}
