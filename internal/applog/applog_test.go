package applog

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)
	l.Debugf("hidden %d", 1)
	l.Errorf("shown %d", 2)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown 2")

	buf.Reset()
	New(&buf, true).Debugf("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestOpen_File(t *testing.T) {
	p := filepath.Join(t.TempDir(), "logs", "homeroom.log")
	l, closeFn, err := Open(p, nil, false)
	require.NoError(t, err)
	l.Infof("hello")
	require.NoError(t, closeFn())

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), "hello")
}
