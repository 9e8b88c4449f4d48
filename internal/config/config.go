package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration. Secrets never live in the
// YAML file; they are read from the environment and their absence is fatal.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`
	Auth struct {
		AccessTTLSeconds  int64 `yaml:"access_ttl_seconds"`
		SessionTTLSeconds int64 `yaml:"session_ttl_seconds"`
		RefreshTTLSeconds int64 `yaml:"refresh_ttl_seconds"`
		CSRFTTLSeconds    int64 `yaml:"csrf_ttl_seconds"`
		SecureCookies     bool  `yaml:"secure_cookies"`
		LoginRateLimit    struct {
			PerMinute int `yaml:"per_minute"`
			Burst     int `yaml:"burst"`
		} `yaml:"login_rate_limit"`
	} `yaml:"auth"`

	// Populated from env, not YAML.
	AccessTokenSecret      []byte `yaml:"-"`
	RefreshTokenHashSecret []byte `yaml:"-"`
}

func (c *Config) AccessTTL() time.Duration  { return time.Duration(c.Auth.AccessTTLSeconds) * time.Second }
func (c *Config) SessionTTL() time.Duration { return time.Duration(c.Auth.SessionTTLSeconds) * time.Second }
func (c *Config) RefreshTTL() time.Duration { return time.Duration(c.Auth.RefreshTTLSeconds) * time.Second }
func (c *Config) CSRFTTL() time.Duration    { return time.Duration(c.Auth.CSRFTTLSeconds) * time.Second }

// LoadConfig reads configuration from the specified YAML file and overlays
// the mandatory environment secrets.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	config.applyDefaults()

	if err := config.loadSecrets(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = ":8080"
	}
	if c.Auth.AccessTTLSeconds == 0 {
		c.Auth.AccessTTLSeconds = 900 // 15m
	}
	if c.Auth.SessionTTLSeconds == 0 {
		c.Auth.SessionTTLSeconds = 300 // 5m sliding window
	}
	if c.Auth.RefreshTTLSeconds == 0 {
		c.Auth.RefreshTTLSeconds = 86400 // 1d
	}
	if c.Auth.CSRFTTLSeconds == 0 {
		c.Auth.CSRFTTLSeconds = 7200 // 2h
	}
	if c.Auth.LoginRateLimit.PerMinute == 0 {
		c.Auth.LoginRateLimit.PerMinute = 10
	}
	if c.Auth.LoginRateLimit.Burst == 0 {
		c.Auth.LoginRateLimit.Burst = 3
	}
}

// loadSecrets fails rather than defaulting to a known secret.
func (c *Config) loadSecrets() error {
	access := os.Getenv("ACCESS_TOKEN_SECRET")
	if access == "" {
		return fmt.Errorf("ACCESS_TOKEN_SECRET environment variable is not set")
	}
	refresh := os.Getenv("REFRESH_TOKEN_HASH_SECRET")
	if refresh == "" {
		return fmt.Errorf("REFRESH_TOKEN_HASH_SECRET environment variable is not set")
	}
	c.AccessTokenSecret = []byte(access)
	c.RefreshTokenHashSecret = []byte(refresh)
	return nil
}
