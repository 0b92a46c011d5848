package profile

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/Makepad-fr/homeroom/internal/model"
)

// ClassKey is the state-store key holding the selected class.
const ClassKey = "userClass"

// Backend is the key/value storage the selection lives in.
type Backend interface {
	Get(key string, v interface{}) (bool, error)
	Set(key string, v interface{}) error
}

// Class returns the persisted class, or model.DefaultClass when none was
// chosen or the stored value is unusable.
func Class(kv Backend) string {
	var name string
	if found, err := kv.Get(ClassKey, &name); err != nil || !found {
		return model.DefaultClass
	}
	if name = strings.TrimSpace(name); name == "" {
		return model.DefaultClass
	}
	return name
}

// SetClass persists the selected class.
func SetClass(kv Backend, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("empty class name")
	}
	return errors.Wrap(kv.Set(ClassKey, name), "save class")
}
