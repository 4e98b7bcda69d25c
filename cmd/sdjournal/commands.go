package main

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/earthboundkid/versioninfo/v2"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/dynoinc/sdjournal"
	"github.com/dynoinc/sdjournal/id128"
	"github.com/dynoinc/sdjournal/internal/middleware"
	"github.com/dynoinc/sdjournal/internal/recordio"
)

var errEmptyJournal = errors.New("journal has no matching entries")

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "sdjournal",
		Short: "Read and write the systemd journal",
		Long: `sdjournal reads entries from the systemd journal, follows it for new
entries and writes structured entries to it.

Configuration is read from SDJOURNAL_* environment variables (see
"sdjournal env") and may be overridden with flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.teardown(cmd.Context())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfg.Source, "source", a.cfg.Source, "journal source URL (journal://, namespace://NAME, dir:///PATH, files:///A,B)")
	pf.StringVarP(&a.cfg.Output, "output", "o", a.cfg.Output, "output format: short, json, yaml, table or export")
	pf.StringVar(&a.cfg.MetricsAddr, "metrics-addr", a.cfg.MetricsAddr, "serve Prometheus metrics on this address")
	pf.StringVar(&a.cfg.LogTarget, "log-target", a.cfg.LogTarget, "where to write logs: stderr or journal")
	pf.Uint64Var(&a.cfg.DataThreshold, "data-threshold", a.cfg.DataThreshold, "maximum field size to read, 0 for unlimited")
	pf.BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		a.showCmd(),
		a.tailCmd(),
		a.fieldsCmd(),
		a.uniqueCmd(),
		a.sendCmd(),
		a.importCmd(),
		a.usageCmd(),
		a.catalogCmd(),
		a.cursorCmd(),
		versionCmd(),
		envCmd(),
	)
	return root
}

// addMatches adds FIELD=VALUE terms to j. A lone "+" starts a new
// alternative.
func addMatches(j *sdjournal.Journal, args []string) error {
	for _, arg := range args {
		if arg == "+" {
			if err := j.AddDisjunction(); err != nil {
				return err
			}
			continue
		}
		if !strings.Contains(arg, "=") {
			return fmt.Errorf("match %q: expected FIELD=VALUE", arg)
		}
		if err := j.AddMatch(arg); err != nil {
			return fmt.Errorf("match %q: %w", arg, err)
		}
	}
	return nil
}

// parseSince accepts an RFC 3339 time, a "2006-01-02 15:04:05" local time, a
// date, or a duration that is subtracted from now.
func parseSince(s string, now time.Time) (time.Time, error) {
	if d, err := time.ParseDuration(s); err == nil {
		return now.Add(-d), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{time.DateTime, time.DateOnly} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}

// lister prints entries until limit is reached. A zero limit prints all.
type lister struct {
	p     printer
	limit int
	n     int
}

func (l *lister) done() bool {
	return l.limit > 0 && l.n >= l.limit
}

func (l *lister) print(snapshot func() (*sdjournal.Snapshot, error)) error {
	s, err := snapshot()
	if err != nil {
		return err
	}
	l.n++
	return l.p.Print(s)
}

func (l *lister) drain(seq iter.Seq2[sdjournal.Entry, error]) error {
	for e, err := range seq {
		if err != nil {
			return err
		}
		if l.done() {
			return nil
		}
		if err := l.print(e.Snapshot); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) showCmd() *cobra.Command {
	var (
		reverse bool
		lines   int
		cursor  string
		since   string
	)

	cmd := &cobra.Command{
		Use:   "show [FIELD=VALUE | +]...",
		Short: "Print journal entries",
		Long: `Print journal entries that match all FIELD=VALUE terms. Terms on the
same field match any of their values, and "+" separates alternatives.`,
		Example: `  sdjournal show _SYSTEMD_UNIT=ssh.service
  sdjournal show -o json --since 1h PRIORITY=3 + PRIORITY=2`,
		RunE: middleware.LogErrors(func(cmd *cobra.Command, args []string) error {
			j, err := a.open()
			if err != nil {
				return err
			}
			defer j.Close()

			if err := addMatches(j, args); err != nil {
				return err
			}
			p, err := newPrinter(a.cfg.Output, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			l := &lister{p: p, limit: lines}
			step, seq := j.Next, j.Entries()
			if reverse {
				step, seq = j.Previous, j.EntriesReverse()
			}

			switch {
			case cursor != "":
				if err := j.SeekCursor(cursor); err != nil {
					return err
				}
				// Land on the cursor's entry and start after it. If a match
				// excluded that entry, the one landed on is printed.
				m, err := step()
				if err != nil {
					return err
				}
				if m.Kind == sdjournal.EOF {
					return p.Flush()
				}
				same, err := j.CursorMatches(cursor)
				if err != nil {
					return err
				}
				if !same {
					if err := l.print(j.Snapshot); err != nil {
						return err
					}
				}
			case since != "":
				t, err := parseSince(since, time.Now())
				if err != nil {
					return err
				}
				if err := j.SeekRealtime(t); err != nil {
					return err
				}
			case reverse:
				if err := j.SeekTail(); err != nil {
					return err
				}
			}

			if err := l.drain(seq); err != nil {
				return err
			}
			return p.Flush()
		}),
	}

	f := cmd.Flags()
	f.BoolVarP(&reverse, "reverse", "r", false, "show the newest entries first")
	f.IntVarP(&lines, "lines", "n", 0, "maximum number of entries to show, 0 for all")
	f.StringVar(&cursor, "cursor", "", "start after the entry at this cursor")
	f.StringVar(&since, "since", "", "start at this time (RFC 3339, \"2006-01-02 15:04:05\", date, or duration ago)")
	cmd.MarkFlagsMutuallyExclusive("cursor", "since")
	return cmd
}

func (a *app) tailCmd() *cobra.Command {
	var (
		lines  int
		follow bool
	)

	cmd := &cobra.Command{
		Use:   "tail [FIELD=VALUE | +]...",
		Short: "Print the newest journal entries",
		RunE: middleware.LogErrors(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			j, err := a.open()
			if err != nil {
				return err
			}
			defer j.Close()

			if err := addMatches(j, args); err != nil {
				return err
			}
			p, err := newPrinter(a.cfg.Output, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			l := &lister{p: p}
			if err := j.SeekTail(); err != nil {
				return err
			}
			if lines > 0 {
				m, err := j.PreviousSkip(lines)
				if err != nil {
					return err
				}
				if m.Kind != sdjournal.EOF {
					if err := l.print(j.Snapshot); err != nil {
						return err
					}
				}
			} else if _, err := j.Previous(); err != nil {
				return err
			}
			if err := l.drain(j.Entries()); err != nil {
				return err
			}
			if err := p.Flush(); err != nil {
				return err
			}

			for follow {
				ev, err := j.WaitContext(ctx)
				if ctx.Err() != nil {
					return nil
				}
				if err != nil {
					return err
				}
				slog.DebugContext(ctx, "journal changed", "event", ev)
				if err := l.drain(j.Entries()); err != nil {
					return err
				}
				if err := p.Flush(); err != nil {
					return err
				}
			}
			return nil
		}),
	}

	f := cmd.Flags()
	f.IntVarP(&lines, "lines", "n", 10, "number of entries to show")
	f.BoolVarP(&follow, "follow", "f", false, "keep printing entries as they are added")
	return cmd
}

func (a *app) fieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List the field names used in the journal",
		Args:  cobra.NoArgs,
		RunE: middleware.LogErrors(func(cmd *cobra.Command, args []string) error {
			j, err := a.open()
			if err != nil {
				return err
			}
			defer j.Close()

			var names []string
			for name, err := range j.FieldNames() {
				if err != nil {
					return err
				}
				names = append(names, name)
			}
			slices.Sort(names)
			return printList(a.cfg.Output, cmd.OutOrStdout(), "Field", names)
		}),
	}
}

func (a *app) uniqueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unique FIELD",
		Short: "List the distinct values of a field",
		Args:  cobra.ExactArgs(1),
		RunE: middleware.LogErrors(func(cmd *cobra.Command, args []string) error {
			j, err := a.open()
			if err != nil {
				return err
			}
			defer j.Close()

			seq, err := j.UniqueValues(args[0])
			if err != nil {
				return err
			}
			var values []string
			for v, err := range seq {
				if err != nil {
					return err
				}
				values = append(values, v)
			}
			slices.Sort(values)
			return printList(a.cfg.Output, cmd.OutOrStdout(), "Value", values)
		}),
	}
}

func (a *app) sendCmd() *cobra.Command {
	var (
		level  string
		fields []string
	)

	cmd := &cobra.Command{
		Use:     "send MESSAGE...",
		Short:   "Write an entry to the journal",
		Args:    cobra.MinimumNArgs(1),
		Example: `  sdjournal send --priority warning --field UNIT=backup.service "backup took 3h"`,
		RunE: middleware.LogErrors(func(cmd *cobra.Command, args []string) error {
			l, ok := sdjournal.ParseLevel(level)
			if !ok {
				return fmt.Errorf("unsupported priority: %s", level)
			}
			message := strings.Join(args, " ")

			if len(fields) == 0 {
				return a.lib.LogMessage(l, message)
			}
			items := make([][]byte, len(fields))
			for i, f := range fields {
				items[i] = []byte(f)
			}
			m := make(map[string]string, len(fields))
			for r, err := range recordio.Records(items) {
				if err != nil {
					return fmt.Errorf("expected KEY=VALUE: %w", err)
				}
				m[r.Field] = string(r.Value)
			}
			return a.lib.LogFields(l, message, m)
		}),
	}

	f := cmd.Flags()
	f.StringVarP(&level, "priority", "p", "info", "priority name (emerg ... debug) or number (0-7)")
	f.StringArrayVarP(&fields, "field", "f", nil, "additional KEY=VALUE field, may be repeated")
	return cmd
}

func (a *app) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [FILE]",
		Short: "Write the entries of a journal export stream",
		Long: `Read entries in the journal export format (as written by "sdjournal show
-o export" or "journalctl -o export") from FILE or standard input and write
them to the journal. Trusted and address fields are dropped, so the entries
get new timestamps and origin fields.`,
		Args: cobra.MaximumNArgs(1),
		RunE: middleware.LogErrors(func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			n := 0
			for entry, err := range recordio.ExportEntries(r) {
				if err != nil {
					return err
				}
				entry = slices.DeleteFunc(entry, func(r recordio.Record) bool {
					return !recordio.ValidUserFieldName(r.Field)
				})
				if len(entry) == 0 {
					continue
				}
				items, err := recordio.WriteRecords(entry)
				if err != nil {
					return err
				}
				if err := a.lib.LogRecord(items...); err != nil {
					return fmt.Errorf("writing entry %d: %w", n+1, err)
				}
				n++
			}
			slog.InfoContext(cmd.Context(), "imported entries", "count", n)
			return nil
		}),
	}
}

func (a *app) usageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "usage",
		Short: "Show the disk space used by the journal",
		Args:  cobra.NoArgs,
		RunE: middleware.LogErrors(func(cmd *cobra.Command, args []string) error {
			j, err := a.open()
			if err != nil {
				return err
			}
			defer j.Close()

			r := usageReport{Source: a.cfg.Source}
			if r.Bytes, err = j.Usage(); err != nil {
				return err
			}
			if r.Runtime, err = j.HasRuntimeFiles(); err != nil {
				return err
			}
			if r.Persistent, err = j.HasPersistentFiles(); err != nil {
				return err
			}
			from, to, ok, err := j.RealtimeCutoff()
			if err != nil {
				return err
			}
			if ok {
				r.From, r.To = from, to
			}
			return printUsage(a.cfg.Output, cmd.OutOrStdout(), r)
		}),
	}
}

func (a *app) catalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog MESSAGE_ID",
		Short: "Print the catalog entry for a message ID",
		Args:  cobra.ExactArgs(1),
		RunE: middleware.LogErrors(func(cmd *cobra.Command, args []string) error {
			id, err := id128.Parse(args[0])
			if err != nil {
				return err
			}
			text, err := a.lib.CatalogForMessageID(id)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(text, "\n"))
			return err
		}),
	}
}

func (a *app) cursorCmd() *cobra.Command {
	var head bool

	cmd := &cobra.Command{
		Use:   "cursor [FIELD=VALUE | +]...",
		Short: "Print the cursor of the newest (or oldest) matching entry",
		RunE: middleware.LogErrors(func(cmd *cobra.Command, args []string) error {
			j, err := a.open()
			if err != nil {
				return err
			}
			defer j.Close()

			if err := addMatches(j, args); err != nil {
				return err
			}

			var m sdjournal.Movement
			if head {
				if err := j.SeekHead(); err != nil {
					return err
				}
				m, err = j.Next()
			} else {
				if err := j.SeekTail(); err != nil {
					return err
				}
				m, err = j.Previous()
			}
			if err != nil {
				return err
			}
			if m.Kind == sdjournal.EOF {
				return errEmptyJournal
			}

			c, err := j.Cursor()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), c)
			return err
		}),
	}

	cmd.Flags().BoolVar(&head, "head", false, "use the oldest entry")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "version",
		Short:             "Print the version",
		Args:              cobra.NoArgs,
		PersistentPreRun:  func(*cobra.Command, []string) {},
		PersistentPostRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versioninfo.Short())
		},
	}
}

func envCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "env",
		Short:             "List the environment variables sdjournal reads",
		Args:              cobra.NoArgs,
		PersistentPreRun:  func(*cobra.Command, []string) {},
		PersistentPostRun: func(*cobra.Command, []string) {},
		RunE: func(cmd *cobra.Command, args []string) error {
			return envconfig.Usagef("sdjournal", &config{}, cmd.OutOrStdout(), envconfig.DefaultTableFormat)
		},
	}
}
