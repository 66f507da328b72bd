// Package exclusions maintains the durable set of project names the
// discoverer permanently skips.
package exclusions

import (
	"encoding/json"
	"os"
	"sort"

	"arcv/internal/errors"
	"arcv/internal/lockfile"
)

// document is the on-disk shape of the exclusion file.
type document struct {
	Version int      `json:"version"`
	Names   []string `json:"names"`
}

const currentVersion = 1

// Store is a handle on the exclusion file. It follows the same
// lock-and-atomic-rewrite discipline as the ledger.
type Store struct {
	path  string
	names map[string]struct{}
}

// Open loads the exclusion store at path. A missing file yields an empty
// store; an unparseable one is fatal, like a corrupt ledger.
func Open(path string) (*Store, error) {
	s := &Store{
		path:  path,
		names: make(map[string]struct{}),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, errors.New(errors.LedgerCorrupt, "failed to read exclusion file", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.New(errors.LedgerCorrupt,
			"exclusion file is not valid JSON: "+path, err)
	}
	if doc.Version > currentVersion {
		return nil, errors.Newf(errors.LedgerCorrupt,
			"exclusion file version %d not supported (max: %d)", doc.Version, currentVersion)
	}
	for _, name := range doc.Names {
		s.names[name] = struct{}{}
	}

	return s, nil
}

// Path returns the location of the exclusion file.
func (s *Store) Path() string {
	return s.path
}

// Contains reports whether name is excluded.
func (s *Store) Contains(name string) bool {
	_, ok := s.names[name]
	return ok
}

// List returns the excluded names, sorted.
func (s *Store) List() []string {
	out := make([]string, 0, len(s.names))
	for name := range s.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Add puts name on the exclusion list. Adding a name that is already
// present is a no-op success.
func (s *Store) Add(name string) error {
	if name == "" {
		return errors.Newf(errors.ConfigInvalid, "exclusion name must not be empty")
	}
	if s.Contains(name) {
		return nil
	}
	s.names[name] = struct{}{}
	if err := s.save(); err != nil {
		delete(s.names, name)
		return err
	}
	return nil
}

// Remove takes name off the exclusion list. Removing an absent name is a
// no-op success.
func (s *Store) Remove(name string) error {
	if !s.Contains(name) {
		return nil
	}
	delete(s.names, name)
	if err := s.save(); err != nil {
		s.names[name] = struct{}{}
		return err
	}
	return nil
}

func (s *Store) save() error {
	lock, err := lockfile.Acquire(s.path + ".lock")
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()

	doc := document{Version: currentVersion, Names: s.List()}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.New(errors.InternalError, "failed to marshal exclusion list", err)
	}
	if err := lockfile.WriteAtomic(s.path, data, 0644); err != nil {
		return errors.New(errors.InternalError, "failed to write exclusion list", err)
	}
	return nil
}
