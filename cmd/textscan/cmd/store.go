package cmd

import (
	"github.com/corey/textscan/internal/adapters/bbolt"
	"github.com/corey/textscan/internal/config"
	"github.com/corey/textscan/internal/ports"
)

// openStore opens the configured bbolt store. Returns a nil store and a
// no-op cleanup when no store_path is configured.
func openStore(cfg *config.Config) (ports.KeywordStore, func(), error) {
	if cfg.StorePath == "" {
		return nil, func() {}, nil
	}
	s, err := bbolt.NewStore(cfg.StorePath)
	if err != nil {
		return nil, nil, err
	}
	return s, func() { s.Close() }, nil
}

// mustStore opens the configured bbolt store, erroring when none is
// configured — for the keywords subcommands, which are meaningless
// without one.
func mustStore(cfg *config.Config) (*bbolt.Store, func(), error) {
	if cfg.StorePath == "" {
		return nil, nil, errNoStore
	}
	s, err := bbolt.NewStore(cfg.StorePath)
	if err != nil {
		return nil, nil, err
	}
	return s, func() { s.Close() }, nil
}
