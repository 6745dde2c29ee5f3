// Package bbolt implements the ports.KeywordStore interface using bbolt
// (embedded B+ tree). All dictionaries live in one top-level bucket,
// keyed by name, JSON-serialized. Writes are transactional — a crash
// mid-write cannot corrupt previously committed dictionaries.
package bbolt

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/corey/textscan/internal/ports"
	bolt "go.etcd.io/bbolt"
)

// ErrNotFound is returned (wrapped) when a dictionary does not exist.
var ErrNotFound = errors.New("dictionary not found")

var bucketDictionaries = []byte("dictionaries")

// Store implements ports.KeywordStore backed by bbolt.
type Store struct {
	db *bolt.DB
}

// NewStore opens (or creates) a bbolt database at the given path.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketDictionaries)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("bbolt init: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveDictionary creates or replaces a dictionary by name.
// Created is preserved from any existing entry; Updated is set to now.
func (s *Store) SaveDictionary(d *ports.Dictionary) error {
	if d == nil {
		return fmt.Errorf("nil dictionary")
	}
	if d.Name == "" {
		return fmt.Errorf("dictionary name is empty")
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketDictionaries)

		now := time.Now().UTC()
		stored := *d
		stored.Updated = now
		stored.Created = now
		if prev := b.Get([]byte(d.Name)); prev != nil {
			var old ports.Dictionary
			if err := json.Unmarshal(prev, &old); err == nil && !old.Created.IsZero() {
				stored.Created = old.Created
			}
		}

		data, err := json.Marshal(&stored)
		if err != nil {
			return fmt.Errorf("marshal dictionary %q: %w", d.Name, err)
		}
		return b.Put([]byte(d.Name), data)
	})
}

// LoadDictionary retrieves a dictionary by name.
func (s *Store) LoadDictionary(name string) (*ports.Dictionary, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		// Copy bytes out of the transaction (bbolt slices are only valid within tx)
		if v := tx.Bucket(bucketDictionaries).Get([]byte(name)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("dictionary %q: %w", name, ErrNotFound)
	}

	var d ports.Dictionary
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("unmarshal dictionary %q: %w", name, err)
	}
	return &d, nil
}

// ListDictionaries returns all stored dictionary names, sorted.
func (s *Store) ListDictionaries() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketDictionaries).ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// DeleteDictionary removes a dictionary. Idempotent.
func (s *Store) DeleteDictionary(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketDictionaries).Delete([]byte(name))
	})
}
