// Package nativetest provides an in-memory implementation of the native
// journal contract.
//
// It keeps journal entries in memory and reproduces the libsystemd behavior
// the bindings depend on: positions, match expressions, enumeration cursors,
// cursors, wake-ups and buffer ownership. Misuse that would be memory unsafe
// against the real library (using a closed handle, freeing a buffer twice)
// panics so tests catch it.
package nativetest

import (
	"maps"
	"slices"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/dynoinc/sdjournal/id128"
	"github.com/dynoinc/sdjournal/internal/native"
	"github.com/dynoinc/sdjournal/internal/recordio"
)

const (
	// DefaultDataThreshold matches libsystemd's default.
	DefaultDataThreshold = 64 * 1024

	startUsec = 1_700_000_000_000_000
	stepUsec  = 1_000_000
)

// Entry is a single stored journal entry.
type Entry struct {
	Seqnum    uint64
	Realtime  uint64
	Monotonic uint64
	BootID    id128.ID
	Fields    [][]byte

	store  *Store
	serial uint64
}

func (e *Entry) get(field string) ([]byte, bool) {
	for _, f := range e.Fields {
		if len(f) > len(field) && f[len(field)] == '=' && string(f[:len(field)]) == field {
			return f, true
		}
	}
	return nil, false
}

func (e *Entry) has(field string, value []byte) bool {
	for _, f := range e.Fields {
		if len(f) == len(field)+1+len(value) && f[len(field)] == '=' &&
			string(f[:len(field)]) == field && string(f[len(field)+1:]) == string(value) {
			return true
		}
	}
	return false
}

// before orders entries by realtime, breaking ties by insertion order.
func (e *Entry) before(o *Entry) bool {
	if e.Realtime != o.Realtime {
		return e.Realtime < o.Realtime
	}
	return e.serial < o.serial
}

// Store is one set of journal files: the default namespace, a named
// namespace, a directory or a single file.
type Store struct {
	ID      id128.ID
	Runtime bool

	lib     *Library
	entries []*Entry
}

// Append adds an entry with the next clock tick as its timestamp. Fields are
// stored as given, including trusted fields.
func (s *Store) Append(fields ...string) *Entry {
	s.lib.mu.Lock()
	defer s.lib.mu.Unlock()

	e := s.appendLocked(s.lib.tick(), toBytes(fields))
	s.lib.notifyLocked(s, native.EventAppend)
	return e
}

// AppendAt adds an entry with the given timestamp.
func (s *Store) AppendAt(t time.Time, fields ...string) *Entry {
	s.lib.mu.Lock()
	defer s.lib.mu.Unlock()

	usec := uint64(t.UnixMicro())
	if usec >= s.lib.clock {
		s.lib.clock = usec + stepUsec
	}
	e := s.appendLocked(usec, toBytes(fields))
	s.lib.notifyLocked(s, native.EventAppend)
	return e
}

// Rotate signals that the files of the store changed.
func (s *Store) Rotate() {
	s.lib.mu.Lock()
	defer s.lib.mu.Unlock()

	s.lib.notifyLocked(s, native.EventInvalidate)
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.lib.mu.Lock()
	defer s.lib.mu.Unlock()

	return len(s.entries)
}

func (s *Store) appendLocked(realtime uint64, fields [][]byte) *Entry {
	l := s.lib
	l.serial++
	var mono uint64
	if realtime > l.bootUsec {
		mono = realtime - l.bootUsec
	}
	e := &Entry{
		Seqnum:    uint64(len(s.entries)) + 1,
		Realtime:  realtime,
		Monotonic: mono,
		BootID:    l.bootID,
		Fields:    fields,
		store:     s,
		serial:    l.serial,
	}
	s.entries = append(s.entries, e)
	return e
}

// Library is an in-memory native.Library.
type Library struct {
	mu sync.Mutex

	clock    uint64
	bootID   id128.ID
	bootUsec uint64
	serial   uint64

	system     *Store
	namespaces map[string]*Store
	dirs       map[string]*Store
	files      map[string]*Store
	catalog    map[id128.ID]string

	faults      map[string][]int
	outstanding int
	handles     map[*handle]struct{}
	opened      int
}

var _ native.Library = (*Library)(nil)

// New returns an empty Library with a default namespace.
func New() *Library {
	l := &Library{
		clock:      startUsec,
		bootID:     id128.FromUUID(uuid.New()),
		bootUsec:   startUsec - 60*stepUsec,
		namespaces: make(map[string]*Store),
		dirs:       make(map[string]*Store),
		files:      make(map[string]*Store),
		catalog:    make(map[id128.ID]string),
		faults:     make(map[string][]int),
		handles:    make(map[*handle]struct{}),
	}
	l.system = l.newStore()
	return l
}

func (l *Library) newStore() *Store {
	return &Store{ID: id128.FromUUID(uuid.New()), lib: l}
}

func (l *Library) tick() uint64 {
	t := l.clock
	l.clock += stepUsec
	return t
}

// System returns the default namespace.
func (l *Library) System() *Store {
	return l.system
}

// Namespace returns the named namespace, creating it if needed.
func (l *Library) Namespace(name string) *Store {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.namespaceLocked(name)
}

func (l *Library) namespaceLocked(name string) *Store {
	s, ok := l.namespaces[name]
	if !ok {
		s = l.newStore()
		l.namespaces[name] = s
	}
	return s
}

// Directory registers a journal directory.
func (l *Library) Directory(path string) *Store {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.dirs[path]
	if !ok {
		s = l.newStore()
		l.dirs[path] = s
	}
	return s
}

// File registers a journal file.
func (l *Library) File(path string) *Store {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.files[path]
	if !ok {
		s = l.newStore()
		l.files[path] = s
	}
	return s
}

// AddCatalog registers catalog text for a message ID. @FIELD@ placeholders
// are replaced with values of the current entry by GetCatalog.
func (l *Library) AddCatalog(id id128.ID, text string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.catalog[id] = text
}

// BootID returns the current boot ID.
func (l *Library) BootID() id128.ID {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.bootID
}

// Reboot starts a new boot: a fresh boot ID and monotonic clock.
func (l *Library) Reboot() id128.ID {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.bootID = id128.FromUUID(uuid.New())
	l.bootUsec = l.clock
	l.clock += stepUsec
	return l.bootID
}

// FailNext makes the next call of op return code. op is the method name of
// native.Library or native.Handle, e.g. "Next" or "GetCursor".
func (l *Library) FailNext(op string, code syscall.Errno) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.faults[op] = append(l.faults[op], -int(code))
}

func (l *Library) faultLocked(op string) (int, bool) {
	q := l.faults[op]
	if len(q) == 0 {
		return 0, false
	}
	l.faults[op] = q[1:]
	return q[0], true
}

// Outstanding returns the number of buffers handed out and not yet freed.
func (l *Library) Outstanding() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.outstanding
}

// OpenHandles returns the number of handles not yet closed.
func (l *Library) OpenHandles() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.handles)
}

// Opened returns the number of handles ever opened.
func (l *Library) Opened() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.opened
}

func (l *Library) notifyLocked(s *Store, event int) {
	for h := range l.handles {
		if slices.Contains(h.stores, s) {
			h.notifyLocked(event)
		}
	}
}

func (l *Library) Print(priority int, message string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if rc, ok := l.faultLocked("Print"); ok {
		return rc
	}
	if priority < 0 || priority > 7 {
		return -int(syscall.EINVAL)
	}

	l.system.appendLocked(l.tick(), [][]byte{
		[]byte("MESSAGE=" + message),
		[]byte("PRIORITY=" + strconv.Itoa(priority)),
		[]byte("_TRANSPORT=journal"),
		[]byte("_BOOT_ID=" + l.bootID.String()),
	})
	l.notifyLocked(l.system, native.EventAppend)
	return 0
}

// Sendv stores one entry. Items without '=' fail the call; items with invalid
// or trusted field names are dropped the way journald drops them.
func (l *Library) Sendv(fields [][]byte) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if rc, ok := l.faultLocked("Sendv"); ok {
		return rc
	}
	if len(fields) == 0 {
		return -int(syscall.EINVAL)
	}

	stored := make([][]byte, 0, len(fields)+2)
	for _, f := range fields {
		r, err := recordio.Split(f)
		if err != nil {
			return -int(syscall.EINVAL)
		}
		if !recordio.ValidUserFieldName(r.Field) {
			continue
		}
		stored = append(stored, slices.Clone(f))
	}
	stored = append(stored,
		[]byte("_TRANSPORT=journal"),
		[]byte("_BOOT_ID="+l.bootID.String()),
	)

	l.system.appendLocked(l.tick(), stored)
	l.notifyLocked(l.system, native.EventAppend)
	return 0
}

func (l *Library) Open(flags int) (native.Handle, int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if rc, ok := l.faultLocked("Open"); ok {
		return nil, rc
	}
	if flags&^(native.LocalOnly|native.RuntimeOnly|native.System|native.CurrentUser) != 0 {
		return nil, -int(syscall.EINVAL)
	}
	return l.openLocked(flags, l.system), 0
}

func (l *Library) OpenNamespace(namespace *string, flags int) (native.Handle, int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if rc, ok := l.faultLocked("OpenNamespace"); ok {
		return nil, rc
	}
	allowed := native.LocalOnly | native.RuntimeOnly | native.System | native.CurrentUser |
		native.AllNamespaces | native.IncludeDefaultNamespace
	if flags&^allowed != 0 {
		return nil, -int(syscall.EINVAL)
	}

	switch {
	case flags&native.AllNamespaces != 0:
		stores := []*Store{l.system}
		for _, name := range slices.Sorted(maps.Keys(l.namespaces)) {
			stores = append(stores, l.namespaces[name])
		}
		return l.openLocked(flags, stores...), 0
	case namespace == nil:
		return l.openLocked(flags, l.system), 0
	case flags&native.IncludeDefaultNamespace != 0:
		return l.openLocked(flags, l.system, l.namespaceLocked(*namespace)), 0
	default:
		return l.openLocked(flags, l.namespaceLocked(*namespace)), 0
	}
}

func (l *Library) OpenDirectory(path string, flags int) (native.Handle, int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if rc, ok := l.faultLocked("OpenDirectory"); ok {
		return nil, rc
	}
	if flags&^(native.OSRoot|native.System|native.CurrentUser) != 0 {
		return nil, -int(syscall.EINVAL)
	}
	s, ok := l.dirs[path]
	if !ok {
		return nil, -int(syscall.ENOENT)
	}
	return l.openLocked(flags, s), 0
}

func (l *Library) OpenFiles(paths []string, flags int) (native.Handle, int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if rc, ok := l.faultLocked("OpenFiles"); ok {
		return nil, rc
	}
	if flags != 0 {
		return nil, -int(syscall.EINVAL)
	}
	stores := make([]*Store, 0, len(paths))
	for _, p := range paths {
		s, ok := l.files[p]
		if !ok {
			return nil, -int(syscall.ENOENT)
		}
		stores = append(stores, s)
	}
	return l.openLocked(flags, stores...), 0
}

func (l *Library) CatalogForMessageID(id id128.ID) (native.Buffer, int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if rc, ok := l.faultLocked("CatalogForMessageID"); ok {
		return nil, rc
	}
	text, ok := l.catalog[id]
	if !ok {
		return nil, -int(syscall.ENOENT)
	}
	return l.allocLocked([]byte(text)), 0
}

func (l *Library) openLocked(flags int, stores ...*Store) *handle {
	if flags&native.RuntimeOnly != 0 {
		stores = slices.DeleteFunc(slices.Clone(stores), func(s *Store) bool { return !s.Runtime })
	}
	h := &handle{
		lib:       l,
		stores:    stores,
		seek:      position{kind: seekHead},
		threshold: DefaultDataThreshold,
		wake:      make(chan struct{}, 1),
	}
	l.handles[h] = struct{}{}
	l.opened++
	return h
}

type buffer struct {
	lib   *Library
	data  []byte
	freed bool
}

func (l *Library) allocLocked(data []byte) *buffer {
	l.outstanding++
	return &buffer{lib: l, data: data}
}

func (b *buffer) Bytes() []byte {
	b.lib.mu.Lock()
	defer b.lib.mu.Unlock()

	if b.freed {
		panic("nativetest: buffer used after free")
	}
	return b.data
}

func (b *buffer) Free() {
	b.lib.mu.Lock()
	defer b.lib.mu.Unlock()

	if b.freed {
		panic("nativetest: buffer freed twice")
	}
	b.freed = true
	b.lib.outstanding--
}

func toBytes(fields []string) [][]byte {
	out := make([][]byte, len(fields))
	for i, f := range fields {
		out[i] = []byte(f)
	}
	return out
}
