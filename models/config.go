// Package models defines data structures for configuration and crawl output.
package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWorkerCount = 10
	DefaultTimeout     = 5 * time.Second
	DefaultUserAgent   = "Mozilla/5.0"
	DefaultCacheTTL    = 24 * time.Hour
)

// CrawlConfig holds runtime configuration for a crawl.
// Values come from an optional YAML file, then CLI flags override them.
type CrawlConfig struct {
	Domains     []string      `yaml:"domains,omitempty"`
	WorkerCount int           `yaml:"workers"`
	Timeout     time.Duration `yaml:"timeout"`
	UserAgent   string        `yaml:"user_agent"`

	// CacheDir enables the on-disk metadata cache when set.
	CacheDir string        `yaml:"cache_dir,omitempty"`
	CacheTTL time.Duration `yaml:"cache_ttl,omitempty"`
}

// DefaultCrawlConfig returns the configuration used when no file is given.
func DefaultCrawlConfig() *CrawlConfig {
	return &CrawlConfig{
		WorkerCount: DefaultWorkerCount,
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		CacheTTL:    DefaultCacheTTL,
	}
}

// LoadConfig reads a YAML config file on top of the defaults.
// Fields missing from the file keep their default values.
func LoadConfig(path string) (*CrawlConfig, error) {
	config := DefaultCrawlConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return config, nil
}

// Validate checks that the config can drive a crawl.
func (c *CrawlConfig) Validate() error {
	if c.WorkerCount < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", c.WorkerCount)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0, got %s", c.Timeout)
	}
	if c.CacheDir != "" && c.CacheTTL <= 0 {
		return fmt.Errorf("cache_ttl must be > 0 when cache_dir is set, got %s", c.CacheTTL)
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	return nil
}
