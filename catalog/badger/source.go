package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/pedalworks/velosearch/catalog"
)

// catalogKey is the key under which the catalog document blob is stored.
const catalogKey = "catalog:document"

// BlobSource stores the raw catalog document in a BadgerDB key-value store
// and exposes it as a catalog.Source. It is the "equivalent blob provider"
// alternative to reading the catalog from a plain file.
type BlobSource struct {
	db     *badger.DB
	logger *slog.Logger
}

var _ catalog.Source = (*BlobSource)(nil)

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// OpenBlobSource opens a BadgerDB-backed catalog source at the given path.
// Creates the directory if it doesn't exist. Pass inMemory=true for an
// ephemeral store, used mainly by tests.
func OpenBlobSource(filePath string, inMemory bool) (*BlobSource, error) {
	var opts badger.Options

	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		info, err := os.Stat(filePath)
		if err != nil {
			if os.IsNotExist(err) {
				if err := os.MkdirAll(filePath, 0755); err != nil {
					return nil, err
				}
				info, err = os.Stat(filePath)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", filePath)
		}
		opts = badger.DefaultOptions(filePath)
	}

	opts.Logger = &badgerLoggerAdapter{logger: slog.Default()}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &BlobSource{
		db:     db,
		logger: slog.Default(),
	}, nil
}

// ReadAll returns the stored catalog document bytes.
// Returns catalog.ErrNotFound if no document has been put yet.
func (s *BlobSource) ReadAll(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var raw []byte
	err := s.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(catalogKey))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return catalog.ErrNotFound
			}
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// Put replaces the stored catalog document with raw.
func (s *BlobSource) Put(ctx context.Context, raw []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *badger.Txn) error {
		return tx.Set([]byte(catalogKey), raw)
	})
}

// Close closes the underlying BadgerDB database.
func (s *BlobSource) Close() error {
	return s.db.Close()
}
