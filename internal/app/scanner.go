// Package app wires configuration, persistence, and the matching
// engine into the textscan scanner service.
package app

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/corey/textscan/ahocorasick"
	"github.com/corey/textscan/internal/config"
	"github.com/corey/textscan/internal/ports"
)

// FileMatch is one keyword occurrence in a scanned input, located by
// line and column. Column is a 1-based rune offset within the line.
type FileMatch struct {
	Path       string `json:"path"`
	Line       int    `json:"line"`
	Column     int    `json:"column"`
	Keyword    string `json:"keyword"`
	Dictionary string `json:"dictionary"`
	Text       string `json:"text"` // the matching line
}

// Scanner holds the compiled automaton over all configured dictionaries
// and scans inputs line by line. Keywords are single-line by
// construction; a keyword containing a newline would never match.
//
// Reload swaps in a freshly built automaton; scans running concurrently
// keep using the one they started with.
type Scanner struct {
	cfg   *config.Config
	store ports.KeywordStore // nil when no store is configured
	log   zerolog.Logger

	mu      sync.RWMutex
	ac      *ahocorasick.Automaton
	sources []string // keyword index -> dictionary name
}

// NewScanner builds a scanner from config plus an optional keyword
// store, compiling the automaton up front.
func NewScanner(cfg *config.Config, store ports.KeywordStore, log zerolog.Logger) (*Scanner, error) {
	s := &Scanner{cfg: cfg, store: store, log: log}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload rebuilds the automaton from all configured sources: inline
// keywords, keyword files, and the store. Called at startup and by the
// watch loop when a keyword file changes.
func (s *Scanner) Reload() error {
	ac := ahocorasick.New()
	var sources []string

	add := func(dict string, keywords []string) {
		for _, kw := range keywords {
			if kw == "" {
				s.log.Warn().Str("dictionary", dict).Msg("skipping empty keyword")
				continue
			}
			idx := ac.AddKeyword(kw)
			if idx == len(sources) {
				sources = append(sources, dict)
			} else {
				// Duplicate across dictionaries: first one keeps it.
				s.log.Debug().Str("keyword", kw).Str("dictionary", dict).
					Str("kept", sources[idx]).Msg("duplicate keyword")
			}
		}
	}

	for _, d := range s.cfg.Dictionaries {
		keywords := d.Keywords
		if d.File != "" {
			var err error
			keywords, err = config.ReadKeywordFile(d.File)
			if err != nil {
				return fmt.Errorf("dictionary %q: %w", d.Name, err)
			}
		}
		add(d.Name, keywords)
	}

	if s.store != nil {
		names, err := s.store.ListDictionaries()
		if err != nil {
			return fmt.Errorf("list dictionaries: %w", err)
		}
		for _, name := range names {
			d, err := s.store.LoadDictionary(name)
			if err != nil {
				return fmt.Errorf("load dictionary %q: %w", name, err)
			}
			add(name, d.Keywords)
		}
	}

	ac.Build()

	s.mu.Lock()
	s.ac = ac
	s.sources = sources
	s.mu.Unlock()

	s.log.Info().
		Int("keywords", ac.NumKeywords()).
		Int("states", ac.NumStates()).
		Msg("automaton built")
	return nil
}

// snapshot returns the current automaton and source table. The automaton
// is built and read-only; concurrent scans are safe.
func (s *Scanner) snapshot() (*ahocorasick.Automaton, []string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ac, s.sources
}

// KeywordCount returns the number of distinct keywords loaded.
func (s *Scanner) KeywordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ac.NumKeywords()
}

// DictionaryFiles returns the keyword file paths referenced by the
// configuration — the set the watch loop monitors.
func (s *Scanner) DictionaryFiles() []string {
	var paths []string
	for _, d := range s.cfg.Dictionaries {
		if d.File != "" {
			paths = append(paths, d.File)
		}
	}
	return paths
}

// ScanReader scans r line by line and returns every keyword occurrence.
// path is used only to label results. The scan.max_matches cap stops
// reading early via the lazy match iterator instead of truncating a
// full result list.
func (s *Scanner) ScanReader(r io.Reader, path string) ([]FileMatch, error) {
	ac, sources := s.snapshot()

	limit := s.cfg.Scan.MaxMatches
	var matches []FileMatch

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		for it := ac.Iter(line); ; {
			m, ok := it.Next()
			if !ok {
				break
			}
			matches = append(matches, FileMatch{
				Path:       path,
				Line:       lineNo,
				Column:     m.Start + 1,
				Keyword:    ac.Keyword(m.Keyword),
				Dictionary: sources[m.Keyword],
				Text:       line,
			})
			if limit > 0 && len(matches) >= limit {
				return matches, nil
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}
	return matches, nil
}

// ScanFile scans a file on disk.
func (s *Scanner) ScanFile(path string) ([]FileMatch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return s.ScanReader(f, path)
}

// WatchAndReload wires a watcher to the scanner: any change to a
// configured keyword file triggers a Reload. Returns without error when
// no keyword files are configured.
func (s *Scanner) WatchAndReload(w ports.Watcher) error {
	files := s.DictionaryFiles()
	if len(files) == 0 {
		s.log.Debug().Msg("no keyword files to watch")
		return nil
	}
	return w.Watch(files, func(path string) {
		s.log.Info().Str("file", path).Msg("keyword file changed, reloading")
		if err := s.Reload(); err != nil {
			s.log.Error().Err(err).Msg("reload failed")
		}
	})
}
