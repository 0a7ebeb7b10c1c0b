package velosearch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pedalworks/velosearch/ai"
	"github.com/pedalworks/velosearch/ai/mock"
	"github.com/pedalworks/velosearch/catalog"
	"github.com/pedalworks/velosearch/core"
	"github.com/pedalworks/velosearch/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bikeCatalog = `[
  {
    "id": "bike-001",
    "name": "Mountain Bike",
    "type": "mountain",
    "brand": "Trailblazer",
    "price_eur": 1299.99,
    "intended_use": ["trail", "off-road"],
    "frame_material": "aluminum",
    "suspension": "full",
    "gears": 21,
    "weight_kg": 13.5
  },
  {
    "id": "bike-002",
    "name": "Road Bike",
    "type": "road",
    "brand": "Speedster",
    "price_eur": 999.5,
    "intended_use": ["commuting", "fitness"],
    "frame_material": "carbon",
    "suspension": "none",
    "gears": 18,
    "weight_kg": 8.2
  },
  {
    "id": "bike-003",
    "name": "Cargo E-Bike",
    "type": "cargo",
    "brand": "HaulMaster",
    "price_eur": 3499,
    "intended_use": ["cargo", "family"],
    "frame_material": "steel",
    "suspension": "front",
    "gears": 9,
    "weight_kg": 28.4,
    "motor_power_w": 250,
    "battery_capacity_wh": 500,
    "range_km": 80,
    "max_load_kg": 80
  }
]`

type testEnv struct {
	catalogPath string
	cacheDir    string
	provider    *mock.MockProvider
	engine      *Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{
		catalogPath: filepath.Join(dir, "catalog.json"),
		cacheDir:    filepath.Join(dir, "embeddings"),
	}
	require.NoError(t, os.WriteFile(env.catalogPath, []byte(bikeCatalog), 0644))
	env.newEngine(t)
	return env
}

// newEngine simulates a process restart: a fresh engine and provider over
// the same catalog and cache directory.
func (env *testEnv) newEngine(t *testing.T) {
	t.Helper()
	store, err := storage.NewStore(env.cacheDir)
	require.NoError(t, err)
	env.provider = mock.NewMockProvider()
	env.engine, err = NewEngine(
		catalog.NewFileSource(env.catalogPath), store, env.provider,
		WithPoolSize(2), WithBatchSize(2),
	)
	require.NoError(t, err)
}

func TestNewEngineValidation(t *testing.T) {
	store, err := storage.NewStore(t.TempDir())
	require.NoError(t, err)
	source := catalog.NewFileSource("catalog.json")
	provider := mock.NewMockProvider()

	t.Run("nil source", func(t *testing.T) {
		_, err := NewEngine(nil, store, provider)
		assert.ErrorIs(t, err, catalog.ErrSourceRequired)
	})
	t.Run("nil store", func(t *testing.T) {
		_, err := NewEngine(source, nil, provider)
		assert.ErrorIs(t, err, ErrStoreRequired)
	})
	t.Run("nil provider", func(t *testing.T) {
		_, err := NewEngine(source, store, nil)
		assert.ErrorIs(t, err, ErrProviderRequired)
	})
}

func TestInitializeBuildsAndReachesReady(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	assert.Equal(t, StateUninitialized, env.engine.State())
	require.NoError(t, env.engine.Initialize(ctx))
	assert.Equal(t, StateReady, env.engine.State())
	assert.Len(t, env.engine.Products(), 3)
	assert.Positive(t, env.provider.GetMockEmbedder().CallCount())
}

func TestInitializeTwiceRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.engine.Initialize(ctx))
	require.ErrorIs(t, env.engine.Initialize(ctx), ErrAlreadyInitialized)
}

func TestSearchBeforeReady(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.engine.Search(context.Background(), "bike", 3)
	require.ErrorIs(t, err, ErrNotReady)
}

func TestInitializeParseErrorFatal(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(env.catalogPath, []byte(`{"not":"an array"`), 0644))

	err := env.engine.Initialize(context.Background())
	require.ErrorIs(t, err, catalog.ErrParse)
	assert.Equal(t, StateUninitialized, env.engine.State())
}

func TestInitializeEncoderUnavailableFatal(t *testing.T) {
	env := newTestEnv(t)
	env.provider.GetMockEmbedder().EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("connection refused")
	}

	err := env.engine.Initialize(context.Background())
	require.ErrorIs(t, err, ai.ErrEncoderUnavailable)

	// An aborted build must not leave a fingerprint behind.
	assert.NoFileExists(t, filepath.Join(env.cacheDir, "catalog_hash.txt"))
}

func TestInitializeAbortedByContext(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := env.engine.Initialize(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, filepath.Join(env.cacheDir, "catalog_hash.txt"))
}

func TestIdempotentRestart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.engine.Initialize(ctx))
	firstFP := env.engine.Fingerprint()
	firstResults, err := env.engine.Search(ctx, "bike for trails", 3)
	require.NoError(t, err)

	env.newEngine(t)
	require.NoError(t, env.engine.Initialize(ctx))

	// Unchanged catalog: same fingerprint, load path taken, no re-encoding
	// of the catalog.
	assert.Equal(t, firstFP, env.engine.Fingerprint())
	assert.Zero(t, env.provider.GetMockEmbedder().CallCount())

	secondResults, err := env.engine.Search(ctx, "bike for trails", 3)
	require.NoError(t, err)
	require.Len(t, secondResults, len(firstResults))
	for i := range firstResults {
		assert.Equal(t, firstResults[i].Product.ID, secondResults[i].Product.ID)
		assert.InDelta(t, float64(firstResults[i].Score), float64(secondResults[i].Score), 1e-5)
	}
}

func TestInvalidationOnByteChange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.engine.Initialize(ctx))
	firstFP := env.engine.Fingerprint()

	// A whitespace-only change still invalidates.
	raw, err := os.ReadFile(env.catalogPath)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(env.catalogPath, append(raw, '\n'), 0644))

	env.newEngine(t)
	require.NoError(t, env.engine.Initialize(ctx))

	assert.NotEqual(t, firstFP, env.engine.Fingerprint())
	assert.Positive(t, env.provider.GetMockEmbedder().CallCount(), "rebuild must re-encode the catalog")
}

func TestNewProductReachableAfterRestart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.engine.Initialize(ctx))

	grown := bikeCatalog[:len(bikeCatalog)-1] + `,
  {
    "id": "bike-004",
    "name": "Gravel Bike",
    "type": "gravel",
    "brand": "DustRider",
    "price_eur": 1850,
    "intended_use": ["gravel", "adventure"],
    "frame_material": "titanium",
    "suspension": "none",
    "gears": 22,
    "weight_kg": 9.8
  }
]`
	require.NoError(t, os.WriteFile(env.catalogPath, []byte(grown), 0644))

	env.newEngine(t)
	require.NoError(t, env.engine.Initialize(ctx))
	require.Len(t, env.engine.Products(), 4)

	results, err := env.engine.Search(ctx, "gravel adventure", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "bike-004", results[0].Product.ID)
}

func TestCorruptCacheTriggersRebuild(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.engine.Initialize(ctx))

	require.NoError(t, os.WriteFile(filepath.Join(env.cacheDir, "vector_index.bin"), []byte("garbage"), 0644))

	env.newEngine(t)
	require.NoError(t, env.engine.Initialize(ctx))
	assert.Equal(t, StateReady, env.engine.State())
	assert.Positive(t, env.provider.GetMockEmbedder().CallCount())

	results, err := env.engine.Search(ctx, "bike", 3)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestCorruptEmbeddingsTriggersRebuild(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.engine.Initialize(ctx))

	// Index and fingerprint intact; only the embeddings artifact is bad.
	require.NoError(t, os.WriteFile(filepath.Join(env.cacheDir, "product_embeddings.bin"), []byte("garbage"), 0644))

	env.newEngine(t)
	require.NoError(t, env.engine.Initialize(ctx))
	assert.Equal(t, StateReady, env.engine.State())
	assert.Positive(t, env.provider.GetMockEmbedder().CallCount(),
		"corrupt embeddings artifact must trigger a rebuild")

	results, err := env.engine.Search(ctx, "bike", 3)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestSelfMatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.engine.Initialize(ctx))

	for _, p := range env.engine.Products() {
		text := core.ProductText(&p)
		results, err := env.engine.Search(ctx, text, 1)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, p.ID, results[0].Product.ID, "query %q", text)
		assert.InDelta(t, 1.0, float64(results[0].Score), 1e-5)
	}
}

// Index-time and query-time normalization must stay one pipeline: a query
// differing from an indexed text only in whitespace still scores maximal.
func TestNormalizationSymmetry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.engine.Initialize(ctx))

	p := env.engine.Products()[0]
	text := "  " + core.ProductText(&p) + " \n"
	results, err := env.engine.Search(ctx, text, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, p.ID, results[0].Product.ID)
	assert.InDelta(t, 1.0, float64(results[0].Score), 1e-5)
}

func TestBoundedResults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.engine.Initialize(ctx))

	results, err := env.engine.Search(ctx, "bike", 100)
	require.NoError(t, err)
	require.Len(t, results, 3)

	seen := map[string]bool{}
	for _, r := range results {
		assert.False(t, seen[r.Product.ID], "duplicate product %s", r.Product.ID)
		seen[r.Product.ID] = true
	}
}

func TestNonPositiveLimit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.engine.Initialize(ctx))

	for _, limit := range []int{0, -5} {
		results, err := env.engine.Search(ctx, "bike", limit)
		require.NoError(t, err)
		assert.Empty(t, results)
	}
}

func TestEndToEndScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.engine.Initialize(ctx))

	trail, err := env.engine.Search(ctx, "bike for trails", 2)
	require.NoError(t, err)
	require.Len(t, trail, 2)
	assert.Equal(t, "bike-001", trail[0].Product.ID)

	cargo, err := env.engine.Search(ctx, "motor cargo", 3)
	require.NoError(t, err)
	require.Len(t, cargo, 3)
	assert.Equal(t, "bike-003", cargo[0].Product.ID)
	assert.Greater(t, cargo[0].Score, cargo[1].Score)
	assert.Greater(t, cargo[0].Score, cargo[2].Score)
}

func TestProductsBeforeReady(t *testing.T) {
	env := newTestEnv(t)
	assert.Nil(t, env.engine.Products())
}

func TestProductsMutationDoesNotAffectEngine(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.engine.Initialize(ctx))

	listed := env.engine.Products()
	require.Len(t, listed, 3)
	listed[0].ID = "mutated"
	listed[0].Name = "Mutated"

	assert.Equal(t, "bike-001", env.engine.Products()[0].ID)

	results, err := env.engine.Search(ctx, "bike for trails", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "bike-001", results[0].Product.ID)
}

// closableSource wraps a file source and records whether Close was called.
type closableSource struct {
	catalog.Source
	closed bool
}

func (s *closableSource) Close() error {
	s.closed = true
	return nil
}

func TestCloseReleasesSource(t *testing.T) {
	env := newTestEnv(t)
	store, err := storage.NewStore(env.cacheDir)
	require.NoError(t, err)

	source := &closableSource{Source: catalog.NewFileSource(env.catalogPath)}
	provider := mock.NewMockProvider()
	engine, err := NewEngine(source, store, provider)
	require.NoError(t, err)

	require.NoError(t, engine.Close())
	assert.True(t, source.closed)
	assert.True(t, provider.Closed())
}

func TestConcurrentSearches(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.engine.Initialize(ctx))

	done := make(chan error, 16)
	for i := 0; i < 16; i++ {
		go func() {
			_, err := env.engine.Search(ctx, "mountain bike", 2)
			done <- err
		}()
	}
	for i := 0; i < 16; i++ {
		require.NoError(t, <-done)
	}
}
