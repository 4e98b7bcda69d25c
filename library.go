// Package sdjournal reads and writes the systemd journal through libsystemd.
//
// A Journal is a cursor over the interleaved entries of the opened journal
// files. It starts before the first entry; Next, Previous and the Seek
// methods move it, and accessors such as Data read the entry it points at.
// Text is decoded strictly as UTF-8. The package raw offers the same
// operations on bytes.
//
// A Journal is not safe for concurrent use. Open one per goroutine.
package sdjournal

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"sync"

	"github.com/dynoinc/sdjournal/id128"
	"github.com/dynoinc/sdjournal/internal/cache"
	"github.com/dynoinc/sdjournal/internal/recordio"
	"github.com/dynoinc/sdjournal/raw"
)

// Config holds the configuration for a Library.
type Config struct {
	// CatalogCacheBytes bounds the memory used by cached catalog texts.
	CatalogCacheBytes int `split_words:"true" default:"1048576"`
}

// Library opens journals and writes entries.
type Library struct {
	raw     *raw.Library
	catalog *cache.Cache
}

// NewLibrary wraps a raw library.
func NewLibrary(r *raw.Library, cfg Config) (*Library, error) {
	catalog, err := cache.New("catalog", cache.Config{MaxSizeBytes: cfg.CatalogCacheBytes})
	if err != nil {
		return nil, fmt.Errorf("creating catalog cache: %w", err)
	}
	return &Library{raw: r, catalog: catalog}, nil
}

var defaultLibrary = sync.OnceValue(func() *Library {
	l, err := NewLibrary(raw.Default(), Config{CatalogCacheBytes: 1 << 20})
	if err != nil {
		panic(err)
	}
	return l
})

// Default returns the Library backed by libsystemd.
func Default() *Library {
	return defaultLibrary()
}

// Raw returns the underlying raw library.
func (l *Library) Raw() *raw.Library {
	return l.raw
}

func (l *Library) wrap(j *raw.Journal, err error) (*Journal, error) {
	if err != nil {
		return nil, err
	}
	return &Journal{raw: j, lib: l}, nil
}

// Open opens the local journal.
func (l *Library) Open(files FileFlags, users UserFlags) (*Journal, error) {
	return l.wrap(l.raw.Open(files, users))
}

// OpenNamespace opens the journal of a namespace. A namespace that does not
// exist opens as an empty journal.
func (l *Library) OpenNamespace(namespace string, ns NamespaceFlags, files FileFlags, users UserFlags) (*Journal, error) {
	return l.wrap(l.raw.OpenNamespace(namespace, ns, files, users))
}

// OpenAllNamespaces opens the journals of all namespaces.
func (l *Library) OpenAllNamespaces(files FileFlags, users UserFlags) (*Journal, error) {
	return l.wrap(l.raw.OpenAllNamespaces(files, users))
}

// OpenDirectory opens the journal files in path.
func (l *Library) OpenDirectory(path string, pf PathFlags, users UserFlags) (*Journal, error) {
	return l.wrap(l.raw.OpenDirectory(path, pf, users))
}

// OpenFiles opens the given journal files.
func (l *Library) OpenFiles(paths ...string) (*Journal, error) {
	return l.wrap(l.raw.OpenFiles(paths))
}

// LogMessage writes message at level.
func (l *Library) LogMessage(level Level, message string) error {
	return l.raw.Print(level, message)
}

// LogRecord writes one entry from FIELD=value items. Values may be binary.
// journald silently drops items with invalid field names.
func (l *Library) LogRecord(records ...[]byte) error {
	return l.raw.Sendv(records)
}

// LogFields writes message at level together with fields. Field names are
// checked before anything is sent.
func (l *Library) LogFields(level Level, message string, fields map[string]string) error {
	if !level.Valid() {
		return fmt.Errorf("sd_journal_sendv: invalid level %d", int(level))
	}

	records := make([]recordio.Record, 0, len(fields)+2)
	records = append(records,
		recordio.Record{Field: "MESSAGE", Value: []byte(message)},
		recordio.Record{Field: "PRIORITY", Value: []byte(strconv.Itoa(int(level)))},
	)
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		records = append(records, recordio.Record{Field: name, Value: []byte(fields[name])})
	}

	items, err := recordio.WriteRecords(records)
	if err != nil {
		return fmt.Errorf("sd_journal_sendv: %w", err)
	}
	return l.raw.Sendv(items)
}

// CatalogForMessageID returns the catalog text for a message ID. Texts are
// cached.
func (l *Library) CatalogForMessageID(id id128.ID) (string, error) {
	const op = "sd_journal_get_catalog_for_message_id"
	b, err := l.catalog.GetOrLoad(context.Background(), id.String(), func() ([]byte, error) {
		b, err := l.raw.CatalogForMessageID(id)
		if err != nil {
			return nil, err
		}
		if _, err := decode(op, b); err != nil {
			return nil, err
		}
		return b, nil
	})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ParseLevel accepts a priority number or a syslog level name such as "err".
func ParseLevel(s string) (Level, bool) {
	return raw.ParseLevel(s)
}

// Open opens the local journal with the default library.
func Open(files FileFlags, users UserFlags) (*Journal, error) {
	return Default().Open(files, users)
}

// OpenNamespace opens a namespace with the default library.
func OpenNamespace(namespace string, ns NamespaceFlags, files FileFlags, users UserFlags) (*Journal, error) {
	return Default().OpenNamespace(namespace, ns, files, users)
}

// OpenAllNamespaces opens all namespaces with the default library.
func OpenAllNamespaces(files FileFlags, users UserFlags) (*Journal, error) {
	return Default().OpenAllNamespaces(files, users)
}

// OpenDirectory opens a directory with the default library.
func OpenDirectory(path string, pf PathFlags, users UserFlags) (*Journal, error) {
	return Default().OpenDirectory(path, pf, users)
}

// OpenFiles opens journal files with the default library.
func OpenFiles(paths ...string) (*Journal, error) {
	return Default().OpenFiles(paths...)
}

// LogMessage writes message at level with the default library.
func LogMessage(level Level, message string) error {
	return Default().LogMessage(level, message)
}

// LogRecord writes FIELD=value items with the default library.
func LogRecord(records ...[]byte) error {
	return Default().LogRecord(records...)
}

// LogFields writes a message with fields with the default library.
func LogFields(level Level, message string, fields map[string]string) error {
	return Default().LogFields(level, message, fields)
}

// CatalogForMessageID returns catalog text with the default library.
func CatalogForMessageID(id id128.ID) (string, error) {
	return Default().CatalogForMessageID(id)
}
