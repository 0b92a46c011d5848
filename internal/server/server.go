package server

import (
	"context"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"

	"github.com/Makepad-fr/homeroom/internal/dashboard"
	"github.com/Makepad-fr/homeroom/internal/loader"
	"github.com/Makepad-fr/homeroom/internal/model"
)

type (
	Options struct {
		Address        string
		DataFile       string
		DisableReqLogs bool
		Logger         *log.Logger
		Now            func() time.Time
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts  *Options
		app   *echo.Echo
		cache dataCache
	}
)

var _ Server = (*server)(nil)

var errHttpNotFound = echo.NewHTTPError(http.StatusNotFound, "not found")

// NewServer serves the shared data file and read-only dashboard views of it.
func NewServer(opts *Options) Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = log.New("homeroom")
	}
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.cache.path = opts.DataFile
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.HideBanner = true
	s.app.Logger = s.opts.Logger
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	s.app.HTTPErrorHandler = newHTTPErrorHandler(s.opts.Logger)

	s.app.GET("/", home)
	s.app.GET("/data.json", s.dataFile)

	api := s.app.Group("/api")
	api.GET("/classes", s.classes)
	api.GET("/today", s.today)
}

func (s *server) Start() error {
	err := s.app.Start(s.opts.Address)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "homeroom data server")
}

// dataFile serves the raw file. The t cache-buster is ignored.
func (s *server) dataFile(ctx echo.Context) error {
	if _, err := os.Stat(s.opts.DataFile); err != nil {
		if os.IsNotExist(err) {
			return errHttpNotFound
		}
		return errors.Wrap(err, "stat data file")
	}
	ctx.Response().Header().Set("Cache-Control", "no-store")
	return ctx.File(s.opts.DataFile)
}

func (s *server) classes(ctx echo.Context) error {
	data, err := s.cache.get()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"classes": data.Classes()})
}

func (s *server) today(ctx echo.Context) error {
	data, err := s.cache.get()
	if err != nil {
		return err
	}
	class := ctx.QueryParam("class")
	if class == "" {
		class = model.DefaultClass
	}
	snap := dashboard.Build(data, class, s.opts.Now())
	for _, i := range snap.Skipped {
		s.opts.Logger.Debugf("period %d of %s has no usable time window", i+1, class)
	}
	return ctx.JSON(http.StatusOK, snap)
}

// dataCache keeps the decoded file until its modification time changes.
type dataCache struct {
	path string

	mu      sync.RWMutex
	modTime time.Time
	data    model.GlobalData
	loaded  bool
}

func (c *dataCache) get() (model.GlobalData, error) {
	fi, err := os.Stat(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.GlobalData{}, errHttpNotFound
		}
		return model.GlobalData{}, errors.Wrap(err, "stat data file")
	}

	c.mu.RLock()
	if c.loaded && c.modTime.Equal(fi.ModTime()) {
		data := c.data
		c.mu.RUnlock()
		return data, nil
	}
	c.mu.RUnlock()

	l := loader.Loader{Source: c.path}
	data, err := l.Load(context.Background())
	if err != nil {
		return model.GlobalData{}, err
	}

	c.mu.Lock()
	c.data, c.modTime, c.loaded = data, fi.ModTime(), true
	c.mu.Unlock()
	return data, nil
}
