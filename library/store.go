package library

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Default file names, matching the original deployment's data files.
const (
	CatalogFile = "books.txt"
	RosterFile  = "users.txt"
)

// Store hydrates and persists library state as two flat text files, one
// record per line. A missing file means an empty collection; malformed or
// duplicate-id lines are skipped with a diagnostic and never abort startup.
type Store struct {
	CatalogPath string
	RosterPath  string

	log *slog.Logger
}

// NewStore wires a store for the given data directory.
func NewStore(dir string, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		CatalogPath: filepath.Join(dir, CatalogFile),
		RosterPath:  filepath.Join(dir, RosterFile),
		log:         log,
	}
}

// FirstRun reports whether neither data file exists yet. Data files that
// exist but hold no records are an emptied library, not a first run.
func (s *Store) FirstRun() bool {
	_, catErr := os.Stat(s.CatalogPath)
	_, rosErr := os.Stat(s.RosterPath)
	return errors.Is(catErr, fs.ErrNotExist) && errors.Is(rosErr, fs.ErrNotExist)
}

// Load reads both data files and returns the hydrated library.
func (s *Store) Load() (*Library, error) {
	lib := New()
	if err := s.loadLines(s.CatalogPath, func(line string) error {
		b, err := DecodeBook(line)
		if err != nil {
			return err
		}
		return lib.AddBook(b)
	}); err != nil {
		return nil, err
	}
	if err := s.loadLines(s.RosterPath, func(line string) error {
		p, err := DecodePatron(line)
		if err != nil {
			return err
		}
		return lib.AddPatron(p)
	}); err != nil {
		return nil, err
	}
	return lib, nil
}

func (s *Store) loadLines(path string, add func(line string) error) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Info("data file missing, starting empty", "path", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		if err := add(line); err != nil {
			s.log.Warn("skipping record", "path", path, "line", lineNo, "reason", err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

// Save overwrites both data files with the library's current state.
func (s *Store) Save(lib *Library) error {
	var catalog strings.Builder
	for _, b := range lib.Books {
		catalog.WriteString(EncodeBook(b))
		catalog.WriteByte('\n')
	}
	if err := writeFile(s.CatalogPath, catalog.String()); err != nil {
		return err
	}

	var roster strings.Builder
	for _, p := range lib.Patrons {
		roster.WriteString(EncodePatron(p))
		roster.WriteByte('\n')
	}
	return writeFile(s.RosterPath, roster.String())
}

func writeFile(path, contents string) error {
	// Ensure the data directory exists so first-run saves succeed.
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
