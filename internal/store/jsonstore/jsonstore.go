package jsonstore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// JSON-backed key/value storage. One file holds every key, each value is
// a JSON document of its own. Single process, no locking.

// FileName is the state file created inside the state directory.
const FileName = "state.json"

const (
	tmpSuffix     = ".tmp"
	corruptSuffix = ".corrupt"
)

// ErrCorrupt is returned by Get when a stored value does not decode into v.
var ErrCorrupt = errors.New("corrupt stored value")

type Store struct {
	path string
}

// Open returns a store backed by dir/state.json. The directory is created
// on first write.
func Open(dir string) *Store {
	return &Store{path: filepath.Join(dir, FileName)}
}

func (s *Store) Path() string { return s.path }

// CorruptPath is where an unparseable state file is moved before the
// store writes over it.
func (s *Store) CorruptPath() string { return s.path + corruptSuffix }

// load reads the whole file. A missing or unreadable-as-JSON file is an
// empty store; malformed reports the latter.
func (s *Store) load() (kv map[string]json.RawMessage, malformed bool, err error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]json.RawMessage{}, false, nil
		}
		return nil, false, errors.Wrap(err, "read file")
	}
	kv = map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &kv); err != nil || kv == nil {
		return map[string]json.RawMessage{}, true, nil
	}
	return kv, false, nil
}

// loadForWrite is load for mutations: a malformed file is moved to
// CorruptPath so the write that follows does not destroy it.
func (s *Store) loadForWrite() (map[string]json.RawMessage, error) {
	kv, malformed, err := s.load()
	if err != nil || !malformed {
		return kv, err
	}
	if err := os.Rename(s.path, s.CorruptPath()); err != nil {
		return nil, errors.Wrap(err, "move aside malformed state file")
	}
	return kv, nil
}

func (s *Store) save(kv map[string]json.RawMessage) error {
	b, err := json.MarshalIndent(kv, "", "  ")
	if err != nil {
		return errors.Wrap(err, "json marshal")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(err, "mkdir")
	}
	tmp := s.path + tmpSuffix
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return errors.Wrap(err, "write file")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(err, "rename")
	}
	return nil
}

// Get decodes the value stored under key into v. found is false when the
// key is absent; a value that does not decode yields ErrCorrupt.
func (s *Store) Get(key string, v interface{}) (found bool, err error) {
	kv, _, err := s.load()
	if err != nil {
		return false, err
	}
	raw, ok := kv[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, errors.Wrapf(ErrCorrupt, "%s: %v", key, err)
	}
	return true, nil
}

// Set replaces the value stored under key, keeping every other key.
func (s *Store) Set(key string, v interface{}) error {
	kv, err := s.loadForWrite()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "json marshal %s", key)
	}
	kv[key] = raw
	return s.save(kv)
}

// Delete removes key. Removing a missing key is not an error.
func (s *Store) Delete(key string) error {
	kv, err := s.loadForWrite()
	if err != nil {
		return err
	}
	if _, ok := kv[key]; !ok {
		return nil
	}
	delete(kv, key)
	return s.save(kv)
}
