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


package velosearch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/pedalworks/velosearch/ai"
	"github.com/pedalworks/velosearch/catalog"
	"github.com/pedalworks/velosearch/core"
	"github.com/pedalworks/velosearch/index"
	"github.com/pedalworks/velosearch/storage"
)

// State is the engine lifecycle state. Ready is terminal for the process;
// a changed catalog is only observed by restarting and re-initializing.
type State int32

const (
	StateUninitialized State = iota
	StateLoading
	StateBuilding
	StatePersisting
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateBuilding:
		return "building"
	case StatePersisting:
		return "persisting"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Engine owns the product catalog, the embedding cache and the vector
// index, and answers similarity queries. Initialization is single-writer
// and synchronous to completion; once Ready, the catalog and index are
// immutable and Search needs no synchronization beyond reference sharing.
type Engine struct {
	source   catalog.Source
	store    *storage.Store
	provider ai.EmbeddingProvider
	logger   *slog.Logger

	poolSize  int
	batchSize int

	mu    sync.Mutex // serializes Initialize
	state atomic.Int32

	products    core.Catalog
	texts       []string
	fingerprint core.Fingerprint
	idx         *index.Flat
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithPoolSize sets the worker pool size for catalog encoding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(e *Engine) error {
		if size < 1 {
			size = 1
		}
		e.poolSize = size
		return nil
	}
}

// WithBatchSize sets how many product texts are encoded per embedder call.
// Default is 32.
func WithBatchSize(size int) Option {
	return func(e *Engine) error {
		if size < 1 {
			size = 1
		}
		e.batchSize = size
		return nil
	}
}

// NewEngine creates an engine over the given catalog source, cache store
// and embedding provider. The engine starts Uninitialized; call Initialize
// before Search.
func NewEngine(source catalog.Source, store *storage.Store, provider ai.EmbeddingProvider, opts ...Option) (*Engine, error) {
	if source == nil {
		return nil, catalog.ErrSourceRequired
	}
	if store == nil {
		return nil, ErrStoreRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	e := &Engine{
		source:    source,
		store:     store,
		provider:  provider,
		logger:    slog.Default(),
		poolSize:  poolSize,
		batchSize: 32,
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	return State(e.state.Load())
}

// Initialize loads the catalog, decides cache validity and either loads
// the persisted artifacts or rebuilds them. It blocks until the engine is
// Ready. Catalog parse failures and encoder unavailability are fatal and
// propagate; persistence failures are logged and the in-memory index
// serves the current process anyway.
func (e *Engine) Initialize(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.State() != StateUninitialized {
		return ErrAlreadyInitialized
	}
	e.state.Store(int32(StateLoading))

	err := e.initialize(ctx)
	if err != nil {
		e.state.Store(int32(StateUninitialized))
		return err
	}

	e.state.Store(int32(StateReady))
	return nil
}

func (e *Engine) initialize(ctx context.Context) error {
	raw, err := e.source.ReadAll(ctx)
	if err != nil {
		return fmt.Errorf("read catalog source: %w", err)
	}

	products, texts, err := catalog.Load(raw)
	if err != nil {
		return err
	}
	fp := core.FingerprintBytes(raw)

	e.products = products
	e.texts = texts
	e.fingerprint = fp

	validity := storage.Classify(e.store.Observe(fp))
	e.logger.Info("catalog loaded", "products", len(products), "cache", validity.String())

	if validity == storage.Valid {
		idx, err := e.loadCache(len(products))
		if err == nil {
			e.idx = idx
			e.logger.Info("loaded embeddings from cache", "rows", idx.Len(), "dim", idx.Dim())
			return nil
		}
		// Deserialization failures degrade to a rebuild, never an error.
		e.logger.Warn("cache load failed, rebuilding", "err", err)
	}

	return e.rebuild(ctx)
}

// loadCache deserializes both persisted artifacts and cross-checks them
// against the loaded catalog. A failure in either artifact invalidates the
// whole cache; there is no partial reuse.
func (e *Engine) loadCache(rows int) (*index.Flat, error) {
	matrix, err := e.store.LoadMatrix()
	if err != nil {
		return nil, err
	}
	if len(matrix) != rows {
		return nil, fmt.Errorf("%w: embeddings matrix has %d rows, catalog has %d", index.ErrCorruptArtifact, len(matrix), rows)
	}

	idx, err := e.store.LoadIndex()
	if err != nil {
		return nil, err
	}
	if idx.Len() != rows {
		return nil, fmt.Errorf("%w: index has %d rows, catalog has %d", index.ErrCorruptArtifact, idx.Len(), rows)
	}
	return idx, nil
}

func (e *Engine) rebuild(ctx context.Context) error {
	e.state.Store(int32(StateBuilding))

	matrix, err := e.encodeCatalog(ctx, e.texts)
	if err != nil {
		return err
	}

	idx, err := index.New(matrix)
	if err != nil {
		return err
	}
	e.idx = idx

	e.state.Store(int32(StatePersisting))
	if err := e.store.Persist(matrix, idx, e.fingerprint); err != nil {
		// Non-fatal: only cross-restart caching degrades.
		e.logger.Warn("failed to persist cache artifacts", "err", err)
	} else {
		meta := e.store.Metadata(e.fingerprint, idx.Dim())
		e.logger.Info("persisted embeddings",
			"rows", idx.Len(), "dim", meta.Dimension, "fingerprint", meta.Fingerprint.String())
	}

	return nil
}

// encodeCatalog embeds all product texts in batches on a worker pool.
// Batches write to disjoint matrix ranges, so no locking is needed for the
// results. A context cancellation aborts the build before anything is
// persisted, which the next start treats the same as a missing cache.
func (e *Engine) encodeCatalog(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	pool, err := ants.NewPool(e.poolSize)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	embedder := e.provider.Embedder()
	matrix := make([][]float32, len(texts))

	var (
		wg       sync.WaitGroup
		errMu    sync.Mutex
		firstErr error
	)
	record := func(err error) {
		errMu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		errMu.Unlock()
	}
	failed := func() bool {
		errMu.Lock()
		defer errMu.Unlock()
		return firstErr != nil
	}

	for start := 0; start < len(texts); start += e.batchSize {
		if err := ctx.Err(); err != nil {
			record(err)
			break
		}
		if failed() {
			break
		}

		end := min(start+e.batchSize, len(texts))
		batch := texts[start:end]
		rows := matrix[start:end]

		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if failed() {
				return
			}
			vectors, err := embedder.EmbedTexts(ctx, batch)
			if err != nil {
				record(err)
				return
			}
			if len(vectors) != len(batch) {
				record(fmt.Errorf("embedding result mismatch: expected %d, received %d", len(batch), len(vectors)))
				return
			}
			copy(rows, vectors)
		})
		if submitErr != nil {
			wg.Done()
			record(submitErr)
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		if errors.Is(firstErr, context.Canceled) || errors.Is(firstErr, context.DeadlineExceeded) {
			return nil, firstErr
		}
		return nil, fmt.Errorf("%w: %w", ai.ErrEncoderUnavailable, firstErr)
	}
	return matrix, nil
}

// Search encodes the query with the same embedder and normalization
// pipeline used for the indexed product texts and returns up to limit
// catalog entries ranked by cosine similarity.
// Returns ErrNotReady before initialization completes; limit <= 0 returns
// an empty result; limit beyond the catalog size returns every product.
func (e *Engine) Search(ctx context.Context, query string, limit int) ([]core.SearchResult, error) {
	if e.State() != StateReady {
		return nil, ErrNotReady
	}
	if limit <= 0 {
		return []core.SearchResult{}, nil
	}

	vector, err := e.provider.Embedder().EmbedText(ctx, core.NormalizeSearchText(query))
	if err != nil {
		e.logger.Error("error encoding query", "err", err)
		return nil, fmt.Errorf("encode query: %w", err)
	}

	hits, err := e.idx.Search(vector, limit)
	if err != nil {
		return nil, err
	}

	results := make([]core.SearchResult, len(hits))
	for i, hit := range hits {
		results[i] = core.SearchResult{
			Product: e.products[hit.Row],
			Score:   hit.Score,
		}
	}
	return results, nil
}

// Products returns the full ordered catalog for non-search listing use.
// Valid once the engine is Ready; earlier it returns nil. The returned
// slice is a copy, so callers cannot disturb the catalog rows the index
// ranks against.
func (e *Engine) Products() core.Catalog {
	if e.State() != StateReady {
		return nil
	}
	out := make(core.Catalog, len(e.products))
	copy(out, e.products)
	return out
}

// Fingerprint returns the fingerprint of the loaded catalog source.
func (e *Engine) Fingerprint() core.Fingerprint {
	return e.fingerprint
}

// Close releases the embedding provider and, when the catalog source owns
// resources of its own (such as a BadgerDB handle), the source as well.
// The engine must not be used after Close.
func (e *Engine) Close() error {
	err := e.provider.Close()
	if closer, ok := e.source.(io.Closer); ok {
		if cerr := closer.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
