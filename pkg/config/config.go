package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Quotes struct {
		BaseURL           string        `yaml:"base_url"`
		APIKey            string        `yaml:"api_key"`
		Timeout           time.Duration `yaml:"timeout"`
		RequestsPerMinute int           `yaml:"requests_per_minute"`
	} `yaml:"quotes"`
	Cache struct {
		TTL   time.Duration `yaml:"ttl"`
		Redis struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("ALPHAVANTAGE_API_KEY"); v != "" {
		c.Quotes.APIKey = v
	}
	if v := os.Getenv("QUOTES_BASE_URL"); v != "" {
		c.Quotes.BaseURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Enabled = true
		c.Cache.Redis.Addr = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}

	// validate after overrides so secrets can come from the environment
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Quotes.BaseURL == "" {
		return fmt.Errorf("quotes.base_url is required")
	}
	if c.Quotes.APIKey == "" {
		return fmt.Errorf("quotes.api_key is required")
	}
	if c.Quotes.Timeout <= 0 {
		c.Quotes.Timeout = 30 * time.Second
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = 15 * time.Minute
	}
	if c.Cache.Redis.Enabled && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("cache.redis.addr is required when redis is enabled")
	}
	return nil
}
