// Package localstore persists the client's durable local state (session
// credentials, vote cache) in an embedded badger database. It is the Go
// counterpart of the browser's localStorage: read once at startup to seed
// state without a network round trip, cleared on logout or credential expiry.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("localstore: not found")

// Store is a namespaced JSON record store.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// Open opens (creating if needed) the store at dir.
func Open(dir string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(dir).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	logger.Debug("local store opened", "dir", dir)
	return &Store{db: db, logger: logger}, nil
}

// OpenInMemory opens an ephemeral store. Used in tests and by callers that
// opt out of persistence.
func OpenInMemory(logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory store: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

// Get unmarshals the value stored under key into out.
// Returns ErrNotFound when the key is absent.
func (s *Store) Get(key string, out any) error {
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("get %s: %w", key, err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, out)
		})
	})
	return err
}

// Put marshals val and stores it under key.
func (s *Store) Put(key string, val any) error {
	data, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(key), data); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
		return nil
	})
}

// Delete removes the value under key. Deleting an absent key is a no-op.
func (s *Store) Delete(keys ...string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		for _, key := range keys {
			if err := txn.Delete([]byte(key)); err != nil {
				return fmt.Errorf("delete %s: %w", key, err)
			}
		}
		return nil
	})
}

// Close flushes and closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
