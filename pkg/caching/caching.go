// Package caching keeps link metadata on disk between runs so repeated
// crawls of overlapping sites skip pages fetched recently.
package caching

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dtnitsch/linkscout/models"
	"gopkg.in/yaml.v3"
)

// Cache is a file-per-URL metadata cache with a TTL.
type Cache struct {
	path string
	ttl  time.Duration
}

// NewCache creates a new Cache instance.
// The cache path will be created if it doesn't exist.
func NewCache(path string, ttl time.Duration) (*Cache, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive, got %s", ttl)
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{
		path: path,
		ttl:  ttl,
	}, nil
}

// key generates a SHA256 hash of the URL to use as a filename.
func (c *Cache) key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return fmt.Sprintf("%x.yaml", hash)
}

// Get returns the cached metadata for url if present and not expired.
func (c *Cache) Get(url string) (models.PageMetadata, bool) {
	filePath := filepath.Join(c.path, c.key(url))

	info, err := os.Stat(filePath)
	if err != nil {
		return models.PageMetadata{}, false
	}
	if time.Since(info.ModTime()) > c.ttl {
		return models.PageMetadata{}, false // expired
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return models.PageMetadata{}, false
	}

	var meta models.PageMetadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return models.PageMetadata{}, false
	}
	return meta, true
}

// Set stores meta for url. Writes go through a temp file so concurrent
// readers never see a partial entry.
func (c *Cache) Set(url string, meta models.PageMetadata) error {
	data, err := yaml.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	filePath := filepath.Join(c.path, c.key(url))
	tmp, err := os.CreateTemp(c.path, ".entry-*")
	if err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), filePath); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}
