// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the hexagonal architecture. Domain logic depends
// only on these interfaces, never on concrete implementations.
package ports

import "time"

// Dictionary is a named keyword set. The scanner builds one automaton
// over the union of all active dictionaries; each match reports back
// which dictionary its keyword came from.
type Dictionary struct {
	Name     string    `json:"name"`
	Keywords []string  `json:"keywords"`
	Created  time.Time `json:"created"`
	Updated  time.Time `json:"updated"`
}

// KeywordStore persists keyword dictionaries to durable storage.
//
// Crash safety: SaveDictionary must be transactional. A crash mid-write
// must not corrupt previously committed dictionaries.
type KeywordStore interface {
	// SaveDictionary creates or replaces a dictionary by name.
	// Keywords are stored as given; the scanner deduplicates.
	SaveDictionary(d *Dictionary) error

	// LoadDictionary retrieves a dictionary by name.
	// Returns an error wrapping ErrNotFound if it does not exist.
	LoadDictionary(name string) (*Dictionary, error)

	// ListDictionaries returns all stored dictionary names, sorted.
	ListDictionaries() ([]string, error)

	// DeleteDictionary removes a dictionary.
	// Idempotent: deleting a nonexistent dictionary is not an error.
	DeleteDictionary(name string) error
}
