// Copyright 2025 Pedalworks Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package velosearch implements a product-embedding cache and vector
// similarity search core.
//
// On every startup the engine fingerprints the raw catalog source, decides
// whether previously persisted embeddings are still valid, rebuilds and
// persists them when not, and then serves exact cosine top-K queries over
// the immutable in-memory index. The chat and HTTP layers that consume it
// are external collaborators calling Initialize once and Search per turn.
package velosearch

import (
	"io"
	"log/slog"

	"github.com/pedalworks/velosearch/ai"
	"github.com/pedalworks/velosearch/ai/openai"
	"github.com/pedalworks/velosearch/catalog"
	badgersource "github.com/pedalworks/velosearch/catalog/badger"
	"github.com/pedalworks/velosearch/storage"
)

// Open wires an Engine from application configuration: a file or BadgerDB
// catalog source, a cache store rooted at the configured directory, and an
// OpenAI-compatible embedding provider. Call Initialize on the returned
// engine before searching.
func Open(cfg *Config, opts ...Option) (*Engine, error) {
	applyConfigDefaults(cfg)

	var source catalog.Source
	var sourceCloser io.Closer
	if cfg.CatalogDB != "" {
		blobSource, err := badgersource.OpenBlobSource(cfg.CatalogDB, false)
		if err != nil {
			return nil, err
		}
		source = blobSource
		sourceCloser = blobSource
	} else {
		source = catalog.NewFileSource(cfg.CatalogPath)
	}
	// A BadgerDB source holds a directory lock; release it on any wiring
	// failure so a retried Open does not find the database busy.
	closeSource := func() {
		if sourceCloser != nil {
			sourceCloser.Close()
		}
	}

	store, err := storage.NewStore(cfg.CacheDir)
	if err != nil {
		closeSource()
		return nil, err
	}

	provider, err := openai.NewProvider(ai.NewConfig(
		ai.WithHost(cfg.Embedding.Host),
		ai.WithModel(cfg.Embedding.Model),
	))
	if err != nil {
		closeSource()
		return nil, err
	}

	engineOpts := opts
	if cfg.PoolSize > 0 {
		engineOpts = append([]Option{WithPoolSize(cfg.PoolSize)}, opts...)
	}
	if cfg.BatchSize > 0 {
		engineOpts = append([]Option{WithBatchSize(cfg.BatchSize)}, engineOpts...)
	}

	engine, err := NewEngine(source, store, provider, engineOpts...)
	if err != nil {
		provider.Close()
		closeSource()
		return nil, err
	}

	slog.Default().Debug("engine opened", "cache_dir", cfg.CacheDir)
	return engine, nil
}
