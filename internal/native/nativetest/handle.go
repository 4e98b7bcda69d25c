package nativetest

import (
	"bytes"
	"math"
	"os"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/dynoinc/sdjournal/id128"
	"github.com/dynoinc/sdjournal/internal/native"
	"github.com/dynoinc/sdjournal/internal/recordio"
)

type seekKind int

const (
	seekNone seekKind = iota
	seekHead
	seekTail
	seekRealtime
	seekMonotonic
	seekEntry
)

// position is a pending seek. The next movement resolves it to an entry.
type position struct {
	kind   seekKind
	usec   uint64
	boot   id128.ID
	anchor *Entry
}

type handle struct {
	lib    *Library
	stores []*Store
	closed bool

	matches matches
	seek    position
	cur     *Entry

	dataIdx     int
	fieldIdx    int
	uniqueField string
	uniqueIdx   int
	threshold   uint64

	// scratch backs every borrowed result and is overwritten by the next one.
	scratch []byte

	pending      int
	wake         chan struct{}
	pipeR, pipeW *os.File
	pipeQueued   int
}

var _ native.Handle = (*handle)(nil)

// lock acquires the library lock and checks the handle is usable. It returns
// a fault code queued for op, if any.
func (h *handle) lock(op string) (int, bool) {
	h.lib.mu.Lock()
	if h.closed {
		h.lib.mu.Unlock()
		panic("nativetest: " + op + " on closed handle")
	}
	return h.lib.faultLocked(op)
}

func (h *handle) unlock() {
	h.lib.mu.Unlock()
}

func (h *handle) borrow(b []byte) []byte {
	h.scratch = append(h.scratch[:0], b...)
	return h.scratch
}

func (h *handle) Close() {
	h.lib.mu.Lock()
	defer h.lib.mu.Unlock()

	if h.closed {
		panic("nativetest: handle closed twice")
	}
	h.closed = true
	delete(h.lib.handles, h)
	if h.pipeR != nil {
		_ = h.pipeR.Close()
		_ = h.pipeW.Close()
	}
}

func (h *handle) candidate(e *Entry, forward bool) bool {
	switch h.seek.kind {
	case seekHead:
		return forward
	case seekTail:
		return !forward
	case seekRealtime:
		if forward {
			return e.Realtime >= h.seek.usec
		}
		return e.Realtime <= h.seek.usec
	case seekMonotonic:
		if e.BootID != h.seek.boot {
			return false
		}
		if forward {
			return e.Monotonic >= h.seek.usec
		}
		return e.Monotonic <= h.seek.usec
	case seekEntry:
		if forward {
			return e == h.seek.anchor || h.seek.anchor.before(e)
		}
		return e == h.seek.anchor || e.before(h.seek.anchor)
	default:
		if forward {
			return h.cur.before(e)
		}
		return e.before(h.cur)
	}
}

func (h *handle) step(forward bool) bool {
	var best *Entry
	for _, s := range h.stores {
		for _, e := range s.entries {
			if !h.matches.match(e) || !h.candidate(e, forward) {
				continue
			}
			if best == nil || (forward && e.before(best)) || (!forward && best.before(e)) {
				best = e
			}
		}
	}
	if best == nil {
		return false
	}
	h.cur = best
	h.seek = position{}
	h.dataIdx = 0
	return true
}

func (h *handle) move(op string, forward bool, skip uint64) int {
	if rc, ok := h.lock(op); ok {
		defer h.unlock()
		return rc
	}
	defer h.unlock()

	if skip > math.MaxInt32 {
		return -int(syscall.ERANGE)
	}
	n := 0
	for range skip {
		if !h.step(forward) {
			break
		}
		n++
	}
	return n
}

func (h *handle) Next() int { return h.move("Next", true, 1) }
func (h *handle) Previous() int { return h.move("Previous", false, 1) }
func (h *handle) NextSkip(skip uint64) int { return h.move("NextSkip", true, skip) }
func (h *handle) PreviousSkip(skip uint64) int { return h.move("PreviousSkip", false, skip) }

func (h *handle) seekTo(op string, p position) int {
	if rc, ok := h.lock(op); ok {
		defer h.unlock()
		return rc
	}
	defer h.unlock()

	h.seek = p
	return 0
}

func (h *handle) SeekHead() int { return h.seekTo("SeekHead", position{kind: seekHead}) }
func (h *handle) SeekTail() int { return h.seekTo("SeekTail", position{kind: seekTail}) }

func (h *handle) SeekMonotonicUsec(boot id128.ID, usec uint64) int {
	return h.seekTo("SeekMonotonicUsec", position{kind: seekMonotonic, boot: boot, usec: usec})
}

func (h *handle) SeekRealtimeUsec(usec uint64) int {
	return h.seekTo("SeekRealtimeUsec", position{kind: seekRealtime, usec: usec})
}

func (h *handle) SeekCursor(token string) int {
	if rc, ok := h.lock("SeekCursor"); ok {
		defer h.unlock()
		return rc
	}
	defer h.unlock()

	c, ok := parseCursor(token)
	if !ok {
		return -int(syscall.EINVAL)
	}
	for _, s := range h.stores {
		for _, e := range s.entries {
			if c.matches(e) {
				h.seek = position{kind: seekEntry, anchor: e}
				return 0
			}
		}
	}
	switch {
	case c.realtime != nil:
		h.seek = position{kind: seekRealtime, usec: *c.realtime}
	case c.boot != nil && c.mono != nil:
		h.seek = position{kind: seekMonotonic, boot: *c.boot, usec: *c.mono}
	default:
		h.seek = position{kind: seekHead}
	}
	return 0
}

func (h *handle) TestCursor(token string) int {
	if rc, ok := h.lock("TestCursor"); ok {
		defer h.unlock()
		return rc
	}
	defer h.unlock()

	if !h.positioned() {
		return -int(syscall.EADDRNOTAVAIL)
	}
	c, ok := parseCursor(token)
	if !ok {
		return -int(syscall.EINVAL)
	}
	if c.matches(h.cur) {
		return 1
	}
	return 0
}

// positioned reports whether an entry is current. A pending seek leaves the
// handle without a current entry, as in libsystemd.
func (h *handle) positioned() bool {
	return h.cur != nil && h.seek.kind == seekNone
}

func (h *handle) GetCursor() (native.Buffer, int) {
	if rc, ok := h.lock("GetCursor"); ok {
		defer h.unlock()
		return nil, rc
	}
	defer h.unlock()

	if !h.positioned() {
		return nil, -int(syscall.EADDRNOTAVAIL)
	}
	return h.lib.allocLocked([]byte(formatCursor(h.cur))), 0
}

func (h *handle) GetRealtimeUsec() (uint64, int) {
	if rc, ok := h.lock("GetRealtimeUsec"); ok {
		defer h.unlock()
		return 0, rc
	}
	defer h.unlock()

	if !h.positioned() {
		return 0, -int(syscall.EADDRNOTAVAIL)
	}
	return h.cur.Realtime, 0
}

func (h *handle) GetMonotonicUsec() (uint64, id128.ID, int) {
	if rc, ok := h.lock("GetMonotonicUsec"); ok {
		defer h.unlock()
		return 0, id128.Null, rc
	}
	defer h.unlock()

	if !h.positioned() {
		return 0, id128.Null, -int(syscall.EADDRNOTAVAIL)
	}
	return h.cur.Monotonic, h.cur.BootID, 0
}

func (h *handle) GetCutoffRealtimeUsec() (uint64, uint64, int) {
	if rc, ok := h.lock("GetCutoffRealtimeUsec"); ok {
		defer h.unlock()
		return 0, 0, rc
	}
	defer h.unlock()

	var from, to uint64
	found := false
	for _, e := range h.all() {
		if !found || e.Realtime < from {
			from = e.Realtime
		}
		if !found || e.Realtime > to {
			to = e.Realtime
		}
		found = true
	}
	if !found {
		return 0, 0, 0
	}
	return from, to, 1
}

func (h *handle) GetCutoffMonotonicUsec(boot id128.ID) (uint64, uint64, int) {
	if rc, ok := h.lock("GetCutoffMonotonicUsec"); ok {
		defer h.unlock()
		return 0, 0, rc
	}
	defer h.unlock()

	var from, to uint64
	found := false
	for _, e := range h.all() {
		if e.BootID != boot {
			continue
		}
		if !found || e.Monotonic < from {
			from = e.Monotonic
		}
		if !found || e.Monotonic > to {
			to = e.Monotonic
		}
		found = true
	}
	if !found {
		return 0, 0, 0
	}
	return from, to, 1
}

func (h *handle) GetData(field string) ([]byte, int) {
	if rc, ok := h.lock("GetData"); ok {
		defer h.unlock()
		return nil, rc
	}
	defer h.unlock()

	if !recordio.ValidFieldName(field) {
		return nil, -int(syscall.EINVAL)
	}
	if !h.positioned() {
		return nil, -int(syscall.EADDRNOTAVAIL)
	}
	d, ok := h.cur.get(field)
	if !ok {
		return nil, -int(syscall.ENOENT)
	}
	return h.borrow(d), 0
}

func (h *handle) enumerateData(op string) ([]byte, int) {
	if rc, ok := h.lock(op); ok {
		defer h.unlock()
		return nil, rc
	}
	defer h.unlock()

	if !h.positioned() {
		return nil, -int(syscall.EADDRNOTAVAIL)
	}
	if h.dataIdx >= len(h.cur.Fields) {
		return nil, 0
	}
	d := h.cur.Fields[h.dataIdx]
	h.dataIdx++
	return h.borrow(d), 1
}

func (h *handle) EnumerateData() ([]byte, int) { return h.enumerateData("EnumerateData") }

func (h *handle) EnumerateAvailableData() ([]byte, int) {
	return h.enumerateData("EnumerateAvailableData")
}

func (h *handle) RestartData() {
	if _, ok := h.lock("RestartData"); ok {
		defer h.unlock()
		return
	}
	defer h.unlock()

	h.dataIdx = 0
}

// all returns every entry visible to the handle, ignoring matches, in
// journal order.
func (h *handle) all() []*Entry {
	var out []*Entry
	for _, s := range h.stores {
		out = append(out, s.entries...)
	}
	slices.SortFunc(out, func(a, b *Entry) int {
		switch {
		case a.before(b):
			return -1
		case b.before(a):
			return 1
		}
		return 0
	})
	return out
}

func (h *handle) fieldNames() []string {
	var names []string
	seen := make(map[string]bool)
	for _, e := range h.all() {
		for _, f := range e.Fields {
			name, _, _ := strings.Cut(string(f), "=")
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

func (h *handle) EnumerateFields() ([]byte, int) {
	if rc, ok := h.lock("EnumerateFields"); ok {
		defer h.unlock()
		return nil, rc
	}
	defer h.unlock()

	names := h.fieldNames()
	if h.fieldIdx >= len(names) {
		return nil, 0
	}
	name := names[h.fieldIdx]
	h.fieldIdx++
	return h.borrow([]byte(name)), 1
}

func (h *handle) RestartFields() {
	if _, ok := h.lock("RestartFields"); ok {
		defer h.unlock()
		return
	}
	defer h.unlock()

	h.fieldIdx = 0
}

func (h *handle) QueryUnique(field string) int {
	if rc, ok := h.lock("QueryUnique"); ok {
		defer h.unlock()
		return rc
	}
	defer h.unlock()

	if !recordio.ValidFieldName(field) {
		return -int(syscall.EINVAL)
	}
	h.uniqueField = field
	h.uniqueIdx = 0
	return 0
}

func (h *handle) uniqueValues() [][]byte {
	var values [][]byte
	prefix := []byte(h.uniqueField + "=")
	for _, e := range h.all() {
		for _, f := range e.Fields {
			if !bytes.HasPrefix(f, prefix) {
				continue
			}
			if !slices.ContainsFunc(values, func(v []byte) bool { return bytes.Equal(v, f) }) {
				values = append(values, f)
			}
		}
	}
	return values
}

func (h *handle) enumerateUnique(op string) ([]byte, int) {
	if rc, ok := h.lock(op); ok {
		defer h.unlock()
		return nil, rc
	}
	defer h.unlock()

	if h.uniqueField == "" {
		return nil, -int(syscall.EINVAL)
	}
	values := h.uniqueValues()
	if h.uniqueIdx >= len(values) {
		return nil, 0
	}
	v := values[h.uniqueIdx]
	h.uniqueIdx++
	return h.borrow(v), 1
}

func (h *handle) EnumerateUnique() ([]byte, int) { return h.enumerateUnique("EnumerateUnique") }

func (h *handle) EnumerateAvailableUnique() ([]byte, int) {
	return h.enumerateUnique("EnumerateAvailableUnique")
}

func (h *handle) RestartUnique() {
	if _, ok := h.lock("RestartUnique"); ok {
		defer h.unlock()
		return
	}
	defer h.unlock()

	h.uniqueIdx = 0
}

func (h *handle) AddMatch(data []byte) int {
	if rc, ok := h.lock("AddMatch"); ok {
		defer h.unlock()
		return rc
	}
	defer h.unlock()

	if !h.matches.add(data) {
		return -int(syscall.EINVAL)
	}
	return 0
}

func (h *handle) AddDisjunction() int {
	if rc, ok := h.lock("AddDisjunction"); ok {
		defer h.unlock()
		return rc
	}
	defer h.unlock()

	h.matches.disjunction()
	return 0
}

func (h *handle) AddConjunction() int {
	if rc, ok := h.lock("AddConjunction"); ok {
		defer h.unlock()
		return rc
	}
	defer h.unlock()

	h.matches.conjunction()
	return 0
}

func (h *handle) FlushMatches() {
	if _, ok := h.lock("FlushMatches"); ok {
		defer h.unlock()
		return
	}
	defer h.unlock()

	h.matches.flush()
}

func (h *handle) GetCatalog() (native.Buffer, int) {
	if rc, ok := h.lock("GetCatalog"); ok {
		defer h.unlock()
		return nil, rc
	}
	defer h.unlock()

	if !h.positioned() {
		return nil, -int(syscall.EADDRNOTAVAIL)
	}
	d, ok := h.cur.get("MESSAGE_ID")
	if !ok {
		return nil, -int(syscall.ENOENT)
	}
	id, err := id128.Parse(string(d[len("MESSAGE_ID="):]))
	if err != nil {
		return nil, -int(syscall.EINVAL)
	}
	text, ok := h.lib.catalog[id]
	if !ok {
		return nil, -int(syscall.ENOENT)
	}
	return h.lib.allocLocked([]byte(h.substitute(text))), 0
}

// substitute replaces @FIELD@ with the current entry's value of FIELD.
// Unknown fields are left as they are.
func (h *handle) substitute(text string) string {
	var b strings.Builder
	for {
		i := strings.IndexByte(text, '@')
		if i < 0 {
			break
		}
		j := strings.IndexByte(text[i+1:], '@')
		if j < 0 {
			break
		}
		name := text[i+1 : i+1+j]
		d, ok := h.cur.get(name)
		if !recordio.ValidFieldName(name) || !ok {
			b.WriteString(text[:i+1])
			text = text[i+1:]
			continue
		}
		b.WriteString(text[:i])
		b.Write(d[len(name)+1:])
		text = text[i+j+2:]
	}
	b.WriteString(text)
	return b.String()
}

func (h *handle) notifyLocked(event int) {
	h.pending = max(h.pending, event)
	select {
	case h.wake <- struct{}{}:
	default:
	}
	if h.pipeW != nil {
		if _, err := h.pipeW.Write([]byte{1}); err == nil {
			h.pipeQueued++
		}
	}
}

func (h *handle) processLocked() int {
	ev := h.pending
	h.pending = native.EventNOP
	select {
	case <-h.wake:
	default:
	}
	if h.pipeQueued > 0 {
		buf := make([]byte, h.pipeQueued)
		n, _ := h.pipeR.Read(buf)
		h.pipeQueued -= n
	}
	return ev
}

func (h *handle) GetFd() int {
	if rc, ok := h.lock("GetFd"); ok {
		defer h.unlock()
		return rc
	}
	defer h.unlock()

	if h.pipeR == nil {
		r, w, err := os.Pipe()
		if err != nil {
			return -int(syscall.EMFILE)
		}
		h.pipeR, h.pipeW = r, w
		if h.pending != native.EventNOP {
			if _, err := w.Write([]byte{1}); err == nil {
				h.pipeQueued++
			}
		}
	}
	return int(h.pipeR.Fd())
}

func (h *handle) GetEvents() int {
	if rc, ok := h.lock("GetEvents"); ok {
		defer h.unlock()
		return rc
	}
	defer h.unlock()

	return 0x1 // POLLIN
}

func (h *handle) GetTimeout() (uint64, int) {
	if rc, ok := h.lock("GetTimeout"); ok {
		defer h.unlock()
		return 0, rc
	}
	defer h.unlock()

	return math.MaxUint64, 0
}

func (h *handle) Process() int {
	if rc, ok := h.lock("Process"); ok {
		defer h.unlock()
		return rc
	}
	defer h.unlock()

	return h.processLocked()
}

func (h *handle) Wait(timeoutUsec uint64) int {
	if rc, ok := h.lock("Wait"); ok {
		h.unlock()
		return rc
	}
	if h.pending != native.EventNOP {
		defer h.unlock()
		return h.processLocked()
	}
	wake := h.wake
	h.unlock()

	var timeout <-chan time.Time
	if timeoutUsec != math.MaxUint64 {
		t := time.NewTimer(time.Duration(min(timeoutUsec, math.MaxInt64/1000)) * time.Microsecond)
		defer t.Stop()
		timeout = t.C
	}
	select {
	case <-wake:
	case <-timeout:
	}

	h.lib.mu.Lock()
	defer h.lib.mu.Unlock()

	return h.processLocked()
}

func (h *handle) GetUsage() (uint64, int) {
	if rc, ok := h.lock("GetUsage"); ok {
		defer h.unlock()
		return 0, rc
	}
	defer h.unlock()

	var n uint64
	for _, e := range h.all() {
		for _, f := range e.Fields {
			n += uint64(len(f))
		}
	}
	return n, 0
}

func (h *handle) hasFiles(op string, runtime bool) int {
	if rc, ok := h.lock(op); ok {
		defer h.unlock()
		return rc
	}
	defer h.unlock()

	for _, s := range h.stores {
		if s.Runtime == runtime {
			return 1
		}
	}
	return 0
}

func (h *handle) HasRuntimeFiles() int { return h.hasFiles("HasRuntimeFiles", true) }
func (h *handle) HasPersistentFiles() int { return h.hasFiles("HasPersistentFiles", false) }

func (h *handle) SetDataThreshold(size uint64) int {
	if rc, ok := h.lock("SetDataThreshold"); ok {
		defer h.unlock()
		return rc
	}
	defer h.unlock()

	h.threshold = size
	return 0
}

func (h *handle) GetDataThreshold() (uint64, int) {
	if rc, ok := h.lock("GetDataThreshold"); ok {
		defer h.unlock()
		return 0, rc
	}
	defer h.unlock()

	return h.threshold, 0
}
