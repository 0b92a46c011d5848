package loader

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/Makepad-fr/homeroom/internal/model"
)

// DefaultURL is where `homeroom serve` publishes the data file.
const DefaultURL = "http://localhost:8080/data.json"

// ErrStatus is returned for a non-2xx response.
var ErrStatus = errors.New("unexpected status")

// Logger is the subset of the app logger the loader needs.
type Logger interface {
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

type Loader struct {
	// Source is an http(s) URL, a file:// URL or a plain file path.
	Source string
	Client *http.Client
	Now    func() time.Time
	Log    Logger
}

func New(source string, timeout time.Duration, logger Logger) *Loader {
	return &Loader{
		Source: source,
		Client: &http.Client{Timeout: timeout},
		Now:    time.Now,
		Log:    logger,
	}
}

// Load fetches and decodes the data file. HTTP requests carry a t=<epoch
// millis> query parameter so caches in between never answer.
func (l *Loader) Load(ctx context.Context) (model.GlobalData, error) {
	u, err := url.Parse(l.Source)
	if err != nil {
		return model.GlobalData{}, errors.Wrapf(err, "parse source %q", l.Source)
	}
	switch u.Scheme {
	case "http", "https":
		return l.fetch(ctx, u)
	case "file":
		return readFile(u.Path)
	case "":
		return readFile(l.Source)
	}
	return model.GlobalData{}, errors.Errorf("unsupported source scheme %q", u.Scheme)
}

// LoadOrFallback never fails outward: on any error it logs and returns
// model.Fallback(). The error is still returned for callers that want to
// surface it.
func (l *Loader) LoadOrFallback(ctx context.Context) (model.GlobalData, error) {
	data, err := l.Load(ctx)
	if err != nil {
		if l.Log != nil {
			l.Log.Errorf("data load failed: %v", err)
		}
		return model.Fallback(), err
	}
	return data, nil
}

func (l *Loader) fetch(ctx context.Context, u *url.URL) (model.GlobalData, error) {
	now := time.Now
	if l.Now != nil {
		now = l.Now
	}
	busted := *u
	q := busted.Query()
	q.Set("t", strconv.FormatInt(now().UnixMilli(), 10))
	busted.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, busted.String(), nil)
	if err != nil {
		return model.GlobalData{}, errors.Wrap(err, "new request")
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	if l.Log != nil {
		l.Log.Debugf("GET %s", busted.String())
	}
	resp, err := client.Do(req)
	if err != nil {
		return model.GlobalData{}, errors.Wrap(err, "get")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return model.GlobalData{}, errors.Wrapf(ErrStatus, "%s: %s", busted.Redacted(), resp.Status)
	}
	return decode(resp.Body)
}

func readFile(path string) (model.GlobalData, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.GlobalData{}, errors.Wrap(err, "open data file")
	}
	defer f.Close()
	return decode(f)
}

func decode(r io.Reader) (model.GlobalData, error) {
	var data model.GlobalData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return model.GlobalData{}, errors.Wrap(err, "decode data")
	}
	if data.Schedules == nil {
		data.Schedules = map[string]model.DaySchedule{}
	}
	return data, nil
}
