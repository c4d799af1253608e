// Package badger provides a BadgerDB-backed key-value store for link
// collections.
package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/dosTaiyaki/linklist"
)

// Ensure DB implements linklist.KeyValue at compile time.
var _ linklist.KeyValue = (*DB)(nil)

// DB represents a connection to an embedded Badger database.
type DB struct {
	db  *badger.DB
	dir string
}

// NewDB creates a new DB instance stored in dir.
// An empty dir keeps everything in memory.
func NewDB(dir string) *DB {
	return &DB{dir: dir}
}

// Open opens the database, creating dir if needed.
func (db *DB) Open() error {
	opts := badger.DefaultOptions(db.dir).WithLogger(nil)
	if db.dir == "" {
		opts = opts.WithInMemory(true)
	}

	conn, err := badger.Open(opts)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	db.db = conn
	return nil
}

// Close closes the database.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// Get returns the value stored under key.
func (db *DB) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var value []byte
	err := db.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		// Values are only valid inside the transaction.
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, linklist.Errorf(linklist.ENOTFOUND, "key %q not found", key)
	} else if err != nil {
		return nil, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	if value == nil {
		value = []byte{}
	}
	return value, nil
}

// Set replaces the value under key in one transaction.
func (db *DB) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return linklist.Errorf(linklist.EINVALID, "key required")
	}

	err := db.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}
