package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/homeroom/internal/store/jsonstore"
)

func TestClass(t *testing.T) {
	kv := jsonstore.Open(t.TempDir())
	assert.Equal(t, "21HR", Class(kv))

	require.NoError(t, SetClass(kv, " 23HR "))
	assert.Equal(t, "23HR", Class(kv))

	assert.Error(t, SetClass(kv, "  "))
	assert.Equal(t, "23HR", Class(kv))

	require.NoError(t, kv.Set(ClassKey, 42))
	assert.Equal(t, "21HR", Class(kv))
}

type memKV map[string]interface{}

func (m memKV) Get(key string, v interface{}) (bool, error) {
	val, ok := m[key]
	if !ok {
		return false, nil
	}
	*(v.(*string)) = val.(string)
	return true, nil
}

func (m memKV) Set(key string, v interface{}) error {
	m[key] = v
	return nil
}

func TestClass_AnyBackend(t *testing.T) {
	kv := memKV{}
	assert.Equal(t, "21HR", Class(kv))
	require.NoError(t, SetClass(kv, "22HR"))
	assert.Equal(t, "22HR", kv[ClassKey])
	assert.Equal(t, "22HR", Class(kv))
}
