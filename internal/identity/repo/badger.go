package repo

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
)

// BadgerConfig holds configuration for the embedded slot backend.
type BadgerConfig struct {
	// Path is the directory for BadgerDB files. Ignored when InMemory is true.
	Path string
	// InMemory enables in-memory mode (no disk persistence). Useful for tests.
	InMemory bool
	// SyncWrites enables synchronous writes for durability.
	SyncWrites bool
}

// DefaultBadgerConfig returns the durable on-disk configuration.
func DefaultBadgerConfig(path string) BadgerConfig {
	return BadgerConfig{Path: path, SyncWrites: true}
}

// BadgerSlot stores slot payloads in an embedded BadgerDB, the backend for
// client-local runs where no database server exists.
type BadgerSlot struct {
	db *badger.DB
}

// OpenBadgerSlot opens (creating if needed) a BadgerDB-backed slot store.
func OpenBadgerSlot(cfg BadgerConfig) (*BadgerSlot, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, errors.New("badger slot requires a path")
		}
		if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
			return nil, fmt.Errorf("create badger dir: %w", err)
		}
		opts = badger.DefaultOptions(cfg.Path).WithSyncWrites(cfg.SyncWrites)
	}
	opts = opts.WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerSlot{db: db}, nil
}

// Close releases the underlying database.
func (r *BadgerSlot) Close() error { return r.db.Close() }

func (r *BadgerSlot) Load(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		payload, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrSlotEmpty
		}
		return nil, err
	}
	return payload, nil
}

func (r *BadgerSlot) Save(ctx context.Context, key string, payload []byte) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), payload)
	})
}

func (r *BadgerSlot) Delete(ctx context.Context, key string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}
