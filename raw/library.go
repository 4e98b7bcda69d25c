// Package raw is a thin, memory safe layer over sd-journal.
//
// Every method corresponds to one libsystemd entry point. Negative native
// results become *NativeError, movements become Movement values and
// enumerations become Enumeration values. Data handed out by the native
// library is always copied into Go memory before the call returns, and
// native allocations are released inside the call that produced them.
//
// Text is returned as bytes; decoding is left to the caller.
package raw

import (
	"bytes"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync"

	"github.com/dynoinc/sdjournal/id128"
	"github.com/dynoinc/sdjournal/internal/native"
)

// Library gives access to the process-wide sd-journal entry points.
type Library struct {
	native native.Library
}

// New wraps a native library. Most callers want Default.
func New(lib native.Library) *Library {
	return &Library{native: lib}
}

var defaultLibrary = sync.OnceValue(func() *Library {
	return New(native.Default())
})

// Default returns the Library backed by libsystemd.
func Default() *Library {
	return defaultLibrary()
}

func check(op string, rc int) error {
	record(op, rc)
	if rc < 0 {
		return &NativeError{Op: op, Code: rc}
	}
	return nil
}

func cstring(op string, s string) error {
	if strings.IndexByte(s, 0) >= 0 {
		return fmt.Errorf("%s: %w", op, ErrEmbeddedNUL)
	}
	return nil
}

// take copies a native allocation into Go memory and frees it.
func take(buf native.Buffer) []byte {
	defer buf.Free()
	return bytes.Clone(buf.Bytes())
}

// Print writes a single message at the given level.
func (l *Library) Print(level Level, message string) error {
	const op = "sd_journal_print"
	if err := cstring(op, message); err != nil {
		return err
	}
	return check(op, l.native.Print(int(level), message))
}

// Sendv writes one entry made of FIELD=value items. Items are passed with
// their length and may contain any bytes.
func (l *Library) Sendv(fields [][]byte) error {
	return check("sd_journal_sendv", l.native.Sendv(fields))
}

// Open opens the local journal.
func (l *Library) Open(files FileFlags, users UserFlags) (*Journal, error) {
	h, rc := l.native.Open(int(files) | int(users))
	if err := check("sd_journal_open", rc); err != nil {
		return nil, err
	}
	return l.newJournal(h, "default"), nil
}

// OpenNamespace opens the journal of one namespace.
func (l *Library) OpenNamespace(namespace string, ns NamespaceFlags, files FileFlags, users UserFlags) (*Journal, error) {
	const op = "sd_journal_open_namespace"
	if err := cstring(op, namespace); err != nil {
		return nil, err
	}
	h, rc := l.native.OpenNamespace(&namespace, int(ns)|int(files)|int(users))
	if err := check(op, rc); err != nil {
		return nil, err
	}
	return l.newJournal(h, "namespace:"+namespace), nil
}

// OpenAllNamespaces opens the journals of every namespace including the
// default one.
func (l *Library) OpenAllNamespaces(files FileFlags, users UserFlags) (*Journal, error) {
	h, rc := l.native.OpenNamespace(nil, native.AllNamespaces|int(files)|int(users))
	if err := check("sd_journal_open_namespace", rc); err != nil {
		return nil, err
	}
	return l.newJournal(h, "namespace:*"), nil
}

// OpenDirectory opens the journal files in a directory, or the journal of an
// OS tree with PathToOSRoot.
func (l *Library) OpenDirectory(path string, pf PathFlags, users UserFlags) (*Journal, error) {
	const op = "sd_journal_open_directory"
	if err := cstring(op, path); err != nil {
		return nil, err
	}
	h, rc := l.native.OpenDirectory(path, int(pf)|int(users))
	if err := check(op, rc); err != nil {
		return nil, err
	}
	return l.newJournal(h, "directory:"+path), nil
}

// OpenFiles opens an explicit list of journal files.
func (l *Library) OpenFiles(paths []string) (*Journal, error) {
	const op = "sd_journal_open_files"
	for _, p := range paths {
		if err := cstring(op, p); err != nil {
			return nil, err
		}
	}
	h, rc := l.native.OpenFiles(paths, 0)
	if err := check(op, rc); err != nil {
		return nil, err
	}
	return l.newJournal(h, "files:"+strings.Join(paths, ",")), nil
}

// CatalogForMessageID returns the catalog text registered for a message ID.
func (l *Library) CatalogForMessageID(id id128.ID) ([]byte, error) {
	buf, rc := l.native.CatalogForMessageID(id)
	if err := check("sd_journal_get_catalog_for_message_id", rc); err != nil {
		return nil, err
	}
	return take(buf), nil
}

func (l *Library) newJournal(h native.Handle, source string) *Journal {
	j := &Journal{h: h, source: source}
	j.cleanup = runtime.AddCleanup(j, func(h native.Handle) {
		slog.Warn("journal garbage collected without Close", "source", source)
		h.Close()
	}, h)
	slog.Debug("opened journal", "source", source)
	return j
}
