package todo

import (
	"github.com/pkg/errors"

	"github.com/Makepad-fr/homeroom/internal/model"
	"github.com/Makepad-fr/homeroom/internal/store/jsonstore"
)

// Key is the state-store key holding the todo list.
const Key = "todos"

var ErrIndexOutOfRange = errors.New("index out of range")

// Backend is the key/value storage the list lives in.
type Backend interface {
	Get(key string, v interface{}) (bool, error)
	Set(key string, v interface{}) error
}

// Store keeps the todo list as a single value. Every mutation reads the
// whole list, changes it and writes the whole list back.
type Store struct {
	kv Backend
}

func NewStore(kv Backend) *Store {
	return &Store{kv: kv}
}

// List returns the persisted records. A corrupt value reads as empty.
func (s *Store) List() ([]model.TodoRecord, error) {
	var items []model.TodoRecord
	if _, err := s.kv.Get(Key, &items); err != nil {
		if !errors.Is(err, jsonstore.ErrCorrupt) {
			return nil, errors.Wrap(err, "load todos")
		}
		items = nil
	}
	if items == nil {
		items = []model.TodoRecord{}
	}
	return items, nil
}

// Add appends text, exactly as given, as a pending record. Empty text is
// ignored and reports added == false.
func (s *Store) Add(text string) (added bool, err error) {
	if text == "" {
		return false, nil
	}
	items, err := s.List()
	if err != nil {
		return false, err
	}
	items = append(items, model.TodoRecord{Text: text})
	return true, s.save(items)
}

// Toggle flips the done flag of the record at the 0-based index i.
func (s *Store) Toggle(i int) error {
	items, err := s.List()
	if err != nil {
		return err
	}
	if err := checkIndex(i, len(items)); err != nil {
		return err
	}
	items[i].Done = !items[i].Done
	return s.save(items)
}

// Remove deletes the record at the 0-based index i; later records shift down.
func (s *Store) Remove(i int) error {
	items, err := s.List()
	if err != nil {
		return err
	}
	if err := checkIndex(i, len(items)); err != nil {
		return err
	}
	items = append(items[:i], items[i+1:]...)
	return s.save(items)
}

func (s *Store) save(items []model.TodoRecord) error {
	return errors.Wrap(s.kv.Set(Key, items), "save todos")
}

func checkIndex(i, n int) error {
	if i < 0 || i >= n {
		return errors.Wrapf(ErrIndexOutOfRange, "have %d, got %d", n, i)
	}
	return nil
}

// Stats counts done and pending records.
func Stats(items []model.TodoRecord) (done, pending int) {
	for _, it := range items {
		if it.Done {
			done++
		} else {
			pending++
		}
	}
	return
}
