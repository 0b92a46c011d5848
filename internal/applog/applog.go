package applog

import (
	"io"
	"os"
	"path/filepath"

	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"
)

const header = `${time_rfc3339} ${level} ${prefix} ${short_file}:${line}`

// New returns a leveled logger writing to w.
func New(w io.Writer, debug bool) *log.Logger {
	l := log.New("homeroom")
	l.SetHeader(header)
	l.SetOutput(w)
	l.SetLevel(log.INFO)
	if debug {
		l.SetLevel(log.DEBUG)
	}
	return l
}

// Open returns a logger writing to path, or to fallback when path is empty.
// The returned close func is never nil.
func Open(path string, fallback io.Writer, debug bool) (*log.Logger, func() error, error) {
	if path == "" {
		return New(fallback, debug), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, errors.Wrap(err, "mkdir log dir")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open log file")
	}
	return New(f, debug), f.Close, nil
}
