package sdjournal

import (
	"context"
	"log/slog"
	"runtime"
	"slices"
	"strconv"
	"time"

	"github.com/dynoinc/sdjournal/internal/recordio"
)

// HandlerOptions configures the handler returned by NewHandler.
type HandlerOptions struct {
	// Level is the minimum level written. Defaults to slog.LevelInfo.
	Level slog.Leveler
	// AddSource writes CODE_FILE, CODE_LINE and CODE_FUNC.
	AddSource bool
	// Identifier is written as SYSLOG_IDENTIFIER when set.
	Identifier string
}

// handler writes slog records as structured journal entries. Attribute keys
// become field names: uppercased, with groups joined by '_' and characters
// journald does not accept replaced by '_'.
type handler struct {
	lib    *Library
	opts   HandlerOptions
	prefix string
	attrs  [][]byte
}

// NewHandler returns a slog.Handler writing to the journal through lib.
func NewHandler(lib *Library, opts *HandlerOptions) slog.Handler {
	h := &handler{lib: lib}
	if opts != nil {
		h.opts = *opts
	}
	if h.opts.Level == nil {
		h.opts.Level = slog.LevelInfo
	}
	return h
}

func (h *handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *handler) Handle(_ context.Context, r slog.Record) error {
	items := make([][]byte, 0, 4+len(h.attrs)+r.NumAttrs())
	items = append(items,
		[]byte("MESSAGE="+r.Message),
		[]byte(levelFromSlog(r.Level).Field()),
	)
	if h.opts.Identifier != "" {
		items = append(items, []byte("SYSLOG_IDENTIFIER="+h.opts.Identifier))
	}
	if h.opts.AddSource && r.PC != 0 {
		f, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		items = append(items,
			[]byte("CODE_FILE="+f.File),
			[]byte("CODE_LINE="+strconv.Itoa(f.Line)),
			[]byte("CODE_FUNC="+f.Function),
		)
	}
	items = append(items, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		items = appendAttr(items, h.prefix, a)
		return true
	})
	return h.lib.LogRecord(items...)
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	nh := *h
	nh.attrs = slices.Clip(h.attrs)
	for _, a := range attrs {
		nh.attrs = appendAttr(nh.attrs, h.prefix, a)
	}
	return &nh
}

func (h *handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := *h
	nh.prefix = h.prefix + name + "_"
	return &nh
}

func appendAttr(items [][]byte, prefix string, a slog.Attr) [][]byte {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return items
	}

	if a.Value.Kind() == slog.KindGroup {
		group := prefix
		if a.Key != "" {
			group += a.Key + "_"
		}
		for _, ga := range a.Value.Group() {
			items = appendAttr(items, group, ga)
		}
		return items
	}

	if a.Key == "" {
		return items
	}
	name := recordio.NormalizeFieldName(prefix + a.Key)
	if name == "" {
		return items
	}

	var value string
	switch a.Value.Kind() {
	case slog.KindTime:
		value = a.Value.Time().Format(time.RFC3339Nano)
	default:
		value = a.Value.String()
	}
	return append(items, recordio.Record{Field: name, Value: []byte(value)}.Encode())
}

// levelFromSlog maps slog levels onto syslog priorities.
func levelFromSlog(l slog.Level) Level {
	switch {
	case l < slog.LevelInfo:
		return LevelDebug
	case l < slog.LevelWarn:
		return LevelInfo
	case l < slog.LevelError:
		return LevelWarning
	case l < slog.LevelError+4:
		return LevelError
	default:
		return LevelCritical
	}
}
