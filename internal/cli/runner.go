package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Makepad-fr/homeroom/internal/applog"
	"github.com/Makepad-fr/homeroom/internal/config"
	"github.com/Makepad-fr/homeroom/internal/loader"
	"github.com/Makepad-fr/homeroom/internal/profile"
	"github.com/Makepad-fr/homeroom/internal/store/jsonstore"
	"github.com/Makepad-fr/homeroom/internal/todo"
	"github.com/Makepad-fr/homeroom/internal/ui"
)

// Options wire the CLI to its surroundings; zero values use the process'.
type Options struct {
	Stdout, Stderr io.Writer
	Dir            string // where .env is looked up
	Now            func() time.Time
}

// usageError marks errors that should exit with code 2.
type usageError struct{ error }

func usagef(format string, args ...interface{}) error {
	return usageError{fmt.Errorf(format, args...)}
}

// app is the state shared by every subcommand once config is resolved.
type app struct {
	opt    Options
	v      *viper.Viper
	cfg    config.Config
	log    *log.Logger
	kv     *jsonstore.Store
	todos  *todo.Store
	closer func() error
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if opt.Stdout == nil {
		opt.Stdout = os.Stdout
	}
	if opt.Stderr == nil {
		opt.Stderr = os.Stderr
	}
	if opt.Now == nil {
		opt.Now = time.Now
	}
	if opt.Dir == "" {
		opt.Dir, _ = os.Getwd()
	}

	v, err := config.New(opt.Dir)
	if err != nil {
		ui.Fail(opt.Stderr, err.Error())
		return 1
	}
	a := &app{opt: opt, v: v}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(opt.Stdout)
	root.SetErr(opt.Stderr)

	err = root.Execute()
	if a.closer != nil {
		_ = a.closer()
	}
	if err == nil {
		return 0
	}
	ui.Fail(opt.Stderr, err.Error())
	var ue usageError
	if errors.As(err, &ue) || strings.HasPrefix(err.Error(), "unknown command") {
		fmt.Fprintln(opt.Stderr)
		fmt.Fprint(opt.Stderr, root.UsageString())
		return 2
	}
	return 1
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "homeroom",
		Short:         "Student dashboard: today's classes, next test, todos and a pomodoro timer",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDashboard()
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := root.PersistentFlags()
	pf.String("class", "", "class (HR) to show; overrides the saved selection")
	pf.String("data-url", "", "data file URL or path")
	pf.String("state-dir", "", "directory holding the local state file")
	pf.String("theme", "", "classic | neon | mono")
	pf.String("log-file", "", "log file (the dashboard logs to <state-dir>/homeroom.log by default)")
	pf.Bool("debug", false, "debug logging")
	for flag, key := range map[string]string{
		"class":     "class",
		"data-url":  "dataURL",
		"state-dir": "stateDir",
		"theme":     "theme",
		"log-file":  "logFile",
		"debug":     "debug",
	} {
		// viper only prefers a bound flag once it is set, so defaults and env survive
		_ = a.v.BindPFlag(key, pf.Lookup(flag))
	}

	root.AddCommand(
		a.todayCmd(),
		a.todoCmd(),
		a.classCmd(),
		a.serveCmd(),
	)
	return root
}

// setup resolves config and opens the state store and logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Resolve(a.v)
	if err != nil {
		return usageError{err}
	}
	a.cfg = cfg
	ui.SetTheme(cfg.Theme)

	a.kv = jsonstore.Open(cfg.StateDir)
	a.todos = todo.NewStore(a.kv)

	logFile := cfg.LogFile
	if logFile == "" && cmd.Root() == cmd {
		// stdout belongs to the dashboard
		logFile = filepath.Join(cfg.StateDir, "homeroom.log")
	}
	logger, closer, err := applog.Open(logFile, a.opt.Stderr, cfg.Debug)
	if err != nil {
		return err
	}
	a.log, a.closer = logger, closer
	return nil
}

// class is the explicit --class/HOMEROOM_CLASS, else the saved one.
func (a *app) class() string {
	if a.cfg.Class != "" {
		return a.cfg.Class
	}
	return profile.Class(a.kv)
}

func (a *app) loader() *loader.Loader {
	l := loader.New(a.cfg.DataURL, a.cfg.Timeout, a.log)
	l.Now = a.opt.Now
	return l
}
