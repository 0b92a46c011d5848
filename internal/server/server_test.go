package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/homeroom/internal/dashboard"
	"github.com/Makepad-fr/homeroom/internal/loader"
)

const dataJSON = `{
  "timeSettings": [{"start": "09:00", "end": "09:50"}, {"start": "10:00", "end": "10:50"}],
  "schedules": {"21HR": {"Mon": ["数学", "英語"]}, "22HR": {"Mon": ["美術"]}},
  "tests": [{"name": "中間テスト", "date": "2026-10-21T12:00:00+09:00"}]
}`

var jst = time.FixedZone("JST", 9*60*60)

func setup(t *testing.T, content string) (Server, string) {
	t.Helper()
	p := filepath.Join(t.TempDir(), "data.json")
	if content != "" {
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	logger := log.New("test")
	logger.SetOutput(io.Discard)
	srv := NewServer(&Options{
		DataFile:       p,
		DisableReqLogs: true,
		Logger:         logger,
		Now:            func() time.Time { return time.Date(2026, 10, 19, 9, 30, 0, 0, jst) },
	})
	return srv, p
}

func get(srv http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestServer_DataFile(t *testing.T) {
	srv, _ := setup(t, dataJSON)

	rec := get(srv, "/data.json?t=1760000000000")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.JSONEq(t, dataJSON, rec.Body.String())
}

func TestServer_DataFileMissing(t *testing.T) {
	srv, _ := setup(t, "")

	rec := get(srv, "/data.json")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not found"}`, rec.Body.String())

	rec = get(srv, "/api/today")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Today(t *testing.T) {
	srv, _ := setup(t, dataJSON)

	rec := get(srv, "/api/today?class=21HR")
	require.Equal(t, http.StatusOK, rec.Code)

	var snap dashboard.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, "21HR", snap.Class)
	require.Len(t, snap.Schedule, 2)
	assert.True(t, snap.Schedule[0].Current)
	assert.Equal(t, "英語", snap.NextClassSubject)
	assert.Equal(t, "10:00開始 (30分後)", snap.NextClassTime)
	assert.Equal(t, "あと 3 日", snap.TestTimer)
}

func TestServer_TodayDefaultClass(t *testing.T) {
	srv, _ := setup(t, dataJSON)

	rec := get(srv, "/api/today/")
	require.Equal(t, http.StatusOK, rec.Code)
	var snap dashboard.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, "21HR", snap.Class)
}

func TestServer_Classes(t *testing.T) {
	srv, _ := setup(t, dataJSON)

	rec := get(srv, "/api/classes")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"classes":["21HR","22HR"]}`, rec.Body.String())
}

func TestServer_ReloadsChangedFile(t *testing.T) {
	srv, p := setup(t, dataJSON)
	require.Equal(t, http.StatusOK, get(srv, "/api/classes").Code)

	require.NoError(t, os.WriteFile(p, []byte(`{"schedules": {"30HR": {}}}`), 0o644))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(p, later, later))

	rec := get(srv, "/api/classes")
	assert.JSONEq(t, `{"classes":["30HR"]}`, rec.Body.String())
}

func TestServer_BrokenFile(t *testing.T) {
	srv, _ := setup(t, "{broken")
	rec := get(srv, "/api/today")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServer_ServesLoader(t *testing.T) {
	srv, _ := setup(t, dataJSON)
	ts := httptest.NewServer(srv)
	defer ts.Close()

	data, err := loader.New(ts.URL+"/data.json", time.Second, nil).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, data.TimeSettings, 2)
	assert.Equal(t, []string{"美術"}, data.Schedules["22HR"]["Mon"])
}
