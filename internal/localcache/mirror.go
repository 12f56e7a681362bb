// Package localcache maintains a disk-backed mirror of recently seen cache
// entries, so ignitectl can serve a best-effort answer for "cache get
// --offline" when the server is unreachable.
package localcache

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// Mirror records the last rendered value seen for a given cache name and
// key, keyed by an embedded Badger LSM store rather than anything
// server-side: it exists entirely for offline lookups and is never
// consulted when a live read succeeds.
type Mirror struct {
	db *badger.DB
}

// Open opens (creating if necessary) a Mirror backed by a Badger store at
// dir.
func Open(dir string) (*Mirror, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open local mirror: %w", err)
	}
	return &Mirror{db: db}, nil
}

// Close releases the underlying store.
func (m *Mirror) Close() error {
	return m.db.Close()
}

func mirrorKey(cacheName, key string) []byte {
	return []byte(cacheName + "\x00" + key)
}

// Record stores the last-known rendered value for cacheName/key.
func (m *Mirror) Record(cacheName, key, value string) error {
	return m.db.Update(func(txn *badger.Txn) error {
		return txn.Set(mirrorKey(cacheName, key), []byte(value))
	})
}

// Lookup returns the last-known rendered value for cacheName/key and
// whether one was recorded.
func (m *Mirror) Lookup(cacheName, key string) (string, bool, error) {
	var value string
	var found bool
	err := m.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(mirrorKey(cacheName, key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			value = string(val)
			return nil
		})
	})
	if err != nil {
		return "", false, err
	}
	return value, found, nil
}
