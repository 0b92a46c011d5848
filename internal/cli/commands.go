package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/homeroom/internal/dashboard"
	"github.com/Makepad-fr/homeroom/internal/model"
	"github.com/Makepad-fr/homeroom/internal/pomodoro"
	"github.com/Makepad-fr/homeroom/internal/profile"
	"github.com/Makepad-fr/homeroom/internal/server"
	"github.com/Makepad-fr/homeroom/internal/todo"
	"github.com/Makepad-fr/homeroom/internal/tui"
	"github.com/Makepad-fr/homeroom/internal/ui"
)

const shutdownTimeout = 5 * time.Second

func (a *app) runDashboard() error {
	saveClass := func(name string) error { return profile.SetClass(a.kv, name) }
	return tui.Run(tui.Deps{
		Loader:    a.loader(),
		Todos:     a.todos,
		SaveClass: saveClass,
		Class:     a.class(),
		Timer:     pomodoro.New(pomodoro.DefaultLength),
		Log:       a.log,
		Now:       a.opt.Now,
	})
}

func (a *app) todayCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Print today's dashboard once and exit",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.loader().LoadOrFallback(cmd.Context())
			if err != nil {
				ui.Fail(a.opt.Stderr, "データの読み込みに失敗しました")
			}
			snap := dashboard.Build(data, a.class(), a.opt.Now())
			for _, i := range snap.Skipped {
				a.log.Debugf("period %d of %s has no usable time window", i+1, snap.Class)
			}
			if asJSON {
				enc := json.NewEncoder(a.opt.Stdout)
				enc.SetIndent("", "  ")
				return errors.Wrap(enc.Encode(snap), "encode snapshot")
			}
			fmt.Fprintln(a.opt.Stdout, todayPanel(snap))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the snapshot as JSON")
	return cmd
}

func todayPanel(s dashboard.Snapshot) string {
	t := ui.Current()
	header := fmt.Sprintf("%s  %s  %s",
		t.Title.Render("["+s.Class+"]"),
		t.Title.Render(s.ClockTime),
		t.Muted.Render(s.ClockDate),
	)

	var rows []string
	if s.Schedule == nil {
		rows = append(rows, t.Muted.Render(s.SchedulePlaceholder))
	}
	for _, r := range s.Schedule {
		line := fmt.Sprintf("%d  %-10s %s", r.Period, r.Subject, r.Time)
		if r.Current {
			rows = append(rows, t.Current.Render(t.CurrentMark+" "+line))
			continue
		}
		rows = append(rows, "  "+line)
	}

	return ui.Panel(
		header,
		"",
		ui.Section("時間割  "+s.ScheduleDay, rows...),
		"",
		ui.Section("次の授業", s.NextClassSubject+"  "+t.Muted.Render(s.NextClassTime)),
		"",
		ui.Section("テストまで", s.TestName+"  "+t.Pending.Render(s.TestTimer)),
	)
}

func (a *app) todoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Manage the local todo list",
		Args:  noArgs,
	}

	var group bool
	ls := &cobra.Command{
		Use:   "ls",
		Short: "List items",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.todos.List()
			if err != nil {
				return errors.Wrap(err, "load")
			}
			fmt.Fprintln(a.opt.Stdout, todoPanel(items, group))
			return nil
		},
	}
	ls.Flags().BoolVar(&group, "group", false, "group output by pending/done")

	add := &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a new item (text can be multiple words)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usagef("usage: homeroom todo add <text...>")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// shell quoting makes stray padding likely, so the CLI trims
			added, err := a.todos.Add(strings.TrimSpace(strings.Join(args, " ")))
			if err != nil {
				return errors.Wrap(err, "save")
			}
			if !added {
				return usagef("add: empty text")
			}
			ui.OK(a.opt.Stdout, "added")
			return nil
		},
	}

	done := &cobra.Command{
		Use:   "done <index>",
		Short: "Toggle done for item at 1-based index",
		Args:  indexArg("done"),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, _ := strconv.Atoi(args[0])
			if err := a.todos.Toggle(n - 1); err != nil {
				return errors.Wrap(err, "done")
			}
			ui.OK(a.opt.Stdout, "toggled")
			return nil
		},
	}

	rm := &cobra.Command{
		Use:   "rm <index>",
		Short: "Remove item at 1-based index",
		Args:  indexArg("rm"),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, _ := strconv.Atoi(args[0])
			if err := a.todos.Remove(n - 1); err != nil {
				return errors.Wrap(err, "rm")
			}
			ui.OK(a.opt.Stdout, "removed")
			return nil
		},
	}

	cmd.AddCommand(add, ls, done, rm)
	return cmd
}

func todoPanel(items []model.TodoRecord, group bool) string {
	t := ui.Current()
	d, p := todo.Stats(items)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("ToDo"),
		t.Success.Render(t.SymDone), d,
		t.Pending.Render(t.SymPending), p,
		t.Accent.Render("Total"), len(items),
	)

	lines := []string{header, t.Muted.Render(ui.ProgressBar(d, d+p, 28)), ""}
	if group {
		lines = append(lines, groupLines(items)...)
	} else {
		lines = append(lines, flatLines(items)...)
	}
	lines = append(lines, "", t.Muted.Render("Tip: add with `homeroom todo add \"数学の宿題\"`"))
	return ui.Panel(lines...)
}

func itemLine(i int, it model.TodoRecord) string {
	t := ui.Current()
	idx := t.Muted.Render(fmt.Sprintf("%2d.", i+1))
	if it.Done {
		return fmt.Sprintf("%s %s %s", idx, t.Success.Render(t.BoxChecked), t.Done.Render(it.Text))
	}
	return fmt.Sprintf("%s %s %s", idx, t.Muted.Render(t.BoxUnchecked), it.Text)
}

func flatLines(items []model.TodoRecord) []string {
	if len(items) == 0 {
		return []string{ui.Current().Muted.Render("(no items)")}
	}
	out := make([]string, 0, len(items))
	for i, it := range items {
		out = append(out, itemLine(i, it))
	}
	return out
}

// groupLines keeps each item's original index so done/rm still line up.
func groupLines(items []model.TodoRecord) []string {
	t := ui.Current()
	var pending, done []string
	for i, it := range items {
		if it.Done {
			done = append(done, itemLine(i, it))
		} else {
			pending = append(pending, itemLine(i, it))
		}
	}
	var out []string
	out = append(out, t.Pending.Render("Pending"))
	if len(pending) == 0 {
		out = append(out, t.Muted.Render("  (none)"))
	}
	out = append(out, pending...)
	out = append(out, "", t.Success.Render("Done"))
	if len(done) == 0 {
		out = append(out, t.Muted.Render("  (none)"))
	}
	return append(out, done...)
}

func (a *app) classCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "class [name]",
		Short: "Show or save the selected class",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return usagef("usage: homeroom class [name]")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(a.opt.Stdout, profile.Class(a.kv))
				return nil
			}
			name := strings.TrimSpace(args[0])
			if name == "" {
				return usagef("class: empty name")
			}
			if err := profile.SetClass(a.kv, name); err != nil {
				return errors.Wrap(err, "save class")
			}
			ui.OK(a.opt.Stdout, "class set to "+name)
			return nil
		},
	}
}

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the data file and read-only dashboard views over HTTP",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				addr = a.cfg.Addr
			}
			file, _ := cmd.Flags().GetString("data")
			if file == "" {
				file = a.cfg.DataFile
			}
			if _, err := os.Stat(file); err != nil {
				return errors.Wrap(err, "data file")
			}

			srv := server.NewServer(&server.Options{
				Address:        addr,
				DataFile:       file,
				DisableReqLogs: !a.cfg.Debug,
				Logger:         a.log,
				Now:            a.opt.Now,
			})

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() { errc <- srv.Start() }()
			a.log.Infof("serving %s on %s", file, addr)

			select {
			case err := <-errc:
				return errors.Wrap(err, "serve")
			case <-ctx.Done():
			}
			a.log.Info("shutting down")
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Stop(sctx); err != nil {
				return errors.Wrap(err, "shutdown")
			}
			return <-errc
		},
	}
	cmd.Flags().String("addr", "", "listen address (default from HOMEROOM_ADDR or :8080)")
	cmd.Flags().String("data", "", "data file to serve (default from HOMEROOM_DATAFILE or data.json)")
	return cmd
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usagef("unknown subcommand: %s", args[0])
	}
	return nil
}

func indexArg(name string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return usagef("usage: homeroom todo %s <index>", name)
		}
		if _, err := strconv.Atoi(args[0]); err != nil {
			return usagef("%s: not a number: %s", name, args[0])
		}
		return nil
	}
}
