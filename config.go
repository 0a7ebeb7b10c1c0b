package velosearch

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// EmbeddingConfig configures the embedding service endpoint.
type EmbeddingConfig struct {
	Host  string `yaml:"host"`
	Model string `yaml:"model"`
}

// Config is the application configuration for the search engine.
type Config struct {
	// CatalogPath is the product catalog JSON file. Ignored when
	// CatalogDB is set.
	CatalogPath string `yaml:"catalog_path"`

	// CatalogDB, when set, reads the catalog blob from a BadgerDB store
	// at this directory instead of a plain file.
	CatalogDB string `yaml:"catalog_db,omitempty"`

	// CacheDir is the directory holding the persisted embedding artifacts.
	CacheDir string `yaml:"cache_dir"`

	// PoolSize is the worker pool size for catalog encoding.
	// Zero selects a default based on the CPU count.
	PoolSize int `yaml:"pool_size,omitempty"`

	// BatchSize is the number of product texts encoded per embedder call.
	BatchSize int `yaml:"batch_size,omitempty"`

	Embedding EmbeddingConfig `yaml:"embedding"`
}

// defaultConfig places the catalog and the embedding cache under ./data.
func defaultConfig() *Config {
	return &Config{
		CatalogPath: "data/product_catalog.json",
		CacheDir:    "data/embeddings",
		BatchSize:   32,
		Embedding: EmbeddingConfig{
			Host:  "http://localhost:11434/v1",
			Model: "all-minilm",
		},
	}
}

func applyConfigDefaults(cfg *Config) {
	def := defaultConfig()
	if cfg.CatalogPath == "" && cfg.CatalogDB == "" {
		cfg.CatalogPath = def.CatalogPath
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = def.CacheDir
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = def.BatchSize
	}
	if cfg.Embedding.Host == "" {
		cfg.Embedding.Host = def.Embedding.Host
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = def.Embedding.Model
	}
}

// LoadConfig reads a YAML config from path. A missing file returns the
// defaults; a present but malformed file is an error.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}
