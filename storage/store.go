package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pedalworks/velosearch/core"
	"github.com/pedalworks/velosearch/index"
)

// Artifact file names inside the cache directory.
const (
	embeddingsArtifact  = "product_embeddings.bin"
	indexArtifact       = "vector_index.bin"
	fingerprintArtifact = "catalog_hash.txt"
)

// Store persists and loads embedding artifacts rooted at a cache directory.
type Store struct {
	dir    string
	logger *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// NewStore creates a store rooted at dir. The directory is created lazily
// on the first persist.
func NewStore(dir string, opts ...StoreOption) (*Store, error) {
	if dir == "" {
		return nil, ErrCacheDirRequired
	}
	s := &Store{
		dir:    dir,
		logger: slog.Default().With("component", "cache-store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Metadata is the triple that determines whether persisted artifacts may
// be reused: the fingerprint they were built from, where they live, and
// the vector dimension.
type Metadata struct {
	Fingerprint     core.Fingerprint
	EmbeddingsPath  string
	IndexPath       string
	FingerprintPath string
	Dimension       int
}

// Metadata describes the artifacts the store would persist for the given
// fingerprint and dimension.
func (s *Store) Metadata(fp core.Fingerprint, dim int) Metadata {
	return Metadata{
		Fingerprint:     fp,
		EmbeddingsPath:  filepath.Join(s.dir, embeddingsArtifact),
		IndexPath:       filepath.Join(s.dir, indexArtifact),
		FingerprintPath: filepath.Join(s.dir, fingerprintArtifact),
		Dimension:       dim,
	}
}

// Observe gathers the validity observations for the current fingerprint.
// Unreadable artifacts count as absent; Observe never fails.
func (s *Store) Observe(current core.Fingerprint) Observations {
	obs := Observations{
		EmbeddingsPresent:  fileExists(filepath.Join(s.dir, embeddingsArtifact)),
		IndexPresent:       fileExists(filepath.Join(s.dir, indexArtifact)),
		CurrentFingerprint: current,
	}

	stored, err := s.LoadFingerprint()
	if err == nil {
		obs.FingerprintPresent = true
		obs.StoredFingerprint = stored
	}
	return obs
}

// Persist writes the artifact triple. Write order is the crash-safety
// contract: embeddings first, then the index, then the fingerprint, which
// is written only after both others succeeded. Each artifact is written to
// a temp file and renamed into place.
func (s *Store) Persist(matrix [][]float32, idx *index.Flat, fp core.Fingerprint) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	data, err := index.MarshalMatrix(matrix)
	if err != nil {
		return fmt.Errorf("encode embeddings: %w", err)
	}
	if err := s.writeArtifact(embeddingsArtifact, data); err != nil {
		return fmt.Errorf("persist embeddings: %w", err)
	}

	data, err = idx.Marshal()
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}
	if err := s.writeArtifact(indexArtifact, data); err != nil {
		return fmt.Errorf("persist index: %w", err)
	}

	if err := s.writeArtifact(fingerprintArtifact, []byte(fp.String())); err != nil {
		return fmt.Errorf("persist fingerprint: %w", err)
	}

	s.logger.Debug("persisted cache artifacts", "dir", s.dir, "fingerprint", fp.String())
	return nil
}

// LoadMatrix reads and decodes the raw embeddings artifact.
func (s *Store) LoadMatrix() ([][]float32, error) {
	data, err := s.readArtifact(embeddingsArtifact)
	if err != nil {
		return nil, err
	}
	return index.UnmarshalMatrix(data)
}

// LoadIndex reads and decodes the vector index artifact.
func (s *Store) LoadIndex() (*index.Flat, error) {
	data, err := s.readArtifact(indexArtifact)
	if err != nil {
		return nil, err
	}
	return index.Unmarshal(data)
}

// LoadFingerprint reads the stored fingerprint.
func (s *Store) LoadFingerprint() (core.Fingerprint, error) {
	data, err := s.readArtifact(fingerprintArtifact)
	if err != nil {
		return "", err
	}
	return core.Fingerprint(strings.TrimSpace(string(data))), nil
}

func (s *Store) writeArtifact(name string, data []byte) error {
	target := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

func (s *Store) readArtifact(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactMissing, name)
		}
		return nil, err
	}
	return data, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
