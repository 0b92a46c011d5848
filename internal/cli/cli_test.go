package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/homeroom/internal/dashboard"
)

var jst = time.FixedZone("JST", 9*60*60)

const sampleData = `{
  "timeSettings": [{"start": "09:00", "end": "09:50"}, {"start": "10:00", "end": "10:50"}],
  "schedules": {
    "21HR": {"Mon": ["数学", "英語"]},
    "22HR": {"Mon": ["美術"]}
  },
  "tests": [{"name": "中間テスト", "date": "2026-10-21T12:00:00+09:00"}]
}`

type env struct {
	dir, state, data string
}

func newEnv(t *testing.T) env {
	t.Helper()
	dir := t.TempDir()
	data := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(data, []byte(sampleData), 0o600))
	return env{dir: dir, state: filepath.Join(dir, "state"), data: data}
}

func (e env) run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errb bytes.Buffer
	full := append([]string{}, args...)
	full = append(full, "--state-dir", e.state, "--data-url", e.data, "--theme", "mono")
	code = Run(full, Options{
		Stdout: &out,
		Stderr: &errb,
		Dir:    e.dir,
		Now:    func() time.Time { return time.Date(2026, 10, 19, 9, 30, 0, 0, jst) },
	})
	return code, out.String(), errb.String()
}

func TestToday(t *testing.T) {
	e := newEnv(t)
	code, out, _ := e.run(t, "today")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "[21HR]")
	assert.Contains(t, out, "09:30:00")
	assert.Contains(t, out, "2026年10月19日(月)")
	assert.Contains(t, out, "月曜日")
	assert.Contains(t, out, "数学")
	assert.Contains(t, out, "10:00開始 (30分後)")
	assert.Contains(t, out, "あと 3 日")
}

func TestToday_JSON(t *testing.T) {
	e := newEnv(t)
	code, out, _ := e.run(t, "today", "--json", "--class", "22HR")
	require.Equal(t, 0, code)

	var snap dashboard.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.Equal(t, "22HR", snap.Class)
	require.Len(t, snap.Schedule, 1)
	assert.Equal(t, "美術", snap.Schedule[0].Subject)
	assert.True(t, snap.Schedule[0].Current)
	assert.Equal(t, dashboard.TextAfterSchool, snap.NextClassSubject)
}

func TestToday_MissingDataFallsBack(t *testing.T) {
	e := newEnv(t)
	e.data = filepath.Join(e.dir, "nope.json")
	code, out, stderr := e.run(t, "today")
	require.Equal(t, 0, code)
	assert.Contains(t, stderr, "データの読み込みに失敗しました")
	assert.Contains(t, out, dashboard.TextNoClassesToday)
	assert.Contains(t, out, dashboard.TextNoTests)
}

func TestTodo_Lifecycle(t *testing.T) {
	e := newEnv(t)

	code, out, _ := e.run(t, "todo", "add", "数学の", "宿題")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "added")
	code, _, _ = e.run(t, "todo", "add", "pack bag")
	require.Equal(t, 0, code)

	code, _, _ = e.run(t, "todo", "done", "2")
	require.Equal(t, 0, code)

	code, out, _ = e.run(t, "todo", "ls")
	require.Equal(t, 0, code)
	assert.Contains(t, out, " 1. [ ] 数学の 宿題")
	assert.Contains(t, out, "Total 2")

	code, out, _ = e.run(t, "todo", "ls", "--group")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Pending")
	assert.Contains(t, out, "pack bag")

	code, _, _ = e.run(t, "todo", "rm", "1")
	require.Equal(t, 0, code)

	raw, err := os.ReadFile(filepath.Join(e.state, "state.json"))
	require.NoError(t, err)
	var state map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &state))
	assert.JSONEq(t, `[{"text":"pack bag","done":true}]`, string(state["todos"]))
}

func TestTodo_Errors(t *testing.T) {
	e := newEnv(t)

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"add without text", []string{"todo", "add"}, 2},
		{"add blank text", []string{"todo", "add", "   "}, 2},
		{"done not a number", []string{"todo", "done", "x"}, 2},
		{"rm missing index", []string{"todo", "rm"}, 2},
		{"done out of range", []string{"todo", "done", "5"}, 1},
		{"rm zero", []string{"todo", "rm", "0"}, 1},
		{"unknown command", []string{"nope"}, 2},
		{"unknown flag", []string{"today", "--nope"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := e.run(t, tt.args...)
			assert.Equal(t, tt.code, code)
			assert.Contains(t, stderr, "✖")
		})
	}
}

func TestClass(t *testing.T) {
	e := newEnv(t)

	code, out, _ := e.run(t, "class")
	require.Equal(t, 0, code)
	assert.Equal(t, "21HR\n", out)

	code, _, _ = e.run(t, "class", "22HR")
	require.Equal(t, 0, code)

	_, out, _ = e.run(t, "class")
	assert.Equal(t, "22HR\n", out)

	_, out, _ = e.run(t, "today")
	assert.Contains(t, out, "[22HR]")
	assert.Contains(t, out, "美術")

	code, _, _ = e.run(t, "class", "a", "b")
	assert.Equal(t, 2, code)
}

func TestConfig_InvalidTheme(t *testing.T) {
	e := newEnv(t)
	var errb bytes.Buffer
	code := Run([]string{"class", "--state-dir", e.state, "--theme", "pink"}, Options{
		Stdout: &bytes.Buffer{},
		Stderr: &errb,
		Dir:    e.dir,
	})
	assert.Equal(t, 2, code)
	assert.Contains(t, errb.String(), "invalid config")
}

func TestServe_MissingDataFile(t *testing.T) {
	e := newEnv(t)
	code, _, stderr := e.run(t, "serve", "--data", filepath.Join(e.dir, "missing.json"), "--addr", "127.0.0.1:0")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "data file")
}
