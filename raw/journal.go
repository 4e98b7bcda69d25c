package raw

import (
	"bytes"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/dynoinc/sdjournal/id128"
	"github.com/dynoinc/sdjournal/internal/native"
)

// Journal is an open sd_journal handle.
//
// A Journal holds a single read position and is not safe for concurrent use.
// Close releases the native handle; a Journal that becomes unreachable
// without Close is released by the garbage collector.
type Journal struct {
	h       native.Handle
	source  string
	cleanup runtime.Cleanup
}

func (j *Journal) handle() (native.Handle, error) {
	if j.h == nil {
		return nil, ErrClosed
	}
	return j.h, nil
}

// Close releases the native handle. Closing twice is a no-op.
func (j *Journal) Close() error {
	if j.h == nil {
		return nil
	}
	j.cleanup.Stop()
	j.h.Close()
	j.h = nil
	slog.Debug("closed journal", "source", j.source)
	return nil
}

func (j *Journal) move(op string, f func(native.Handle) int, requested uint64) (Movement, error) {
	h, err := j.handle()
	if err != nil {
		return Movement{}, err
	}
	rc := f(h)
	if err := check(op, rc); err != nil {
		return Movement{}, err
	}
	return movement(rc, requested), nil
}

// Next moves to the next entry.
func (j *Journal) Next() (Movement, error) {
	return j.move("sd_journal_next", native.Handle.Next, 1)
}

// Previous moves to the previous entry.
func (j *Journal) Previous() (Movement, error) {
	return j.move("sd_journal_previous", native.Handle.Previous, 1)
}

// NextSkip moves forward by n entries. A negative n fails with ErrRange and
// zero returns EOF, both without calling into libsystemd.
func (j *Journal) NextSkip(n int) (Movement, error) {
	return j.skip("sd_journal_next_skip", native.Handle.NextSkip, n)
}

// PreviousSkip moves backward by n entries, with the rules of NextSkip.
func (j *Journal) PreviousSkip(n int) (Movement, error) {
	return j.skip("sd_journal_previous_skip", native.Handle.PreviousSkip, n)
}

func (j *Journal) skip(op string, f func(native.Handle, uint64) int, n int) (Movement, error) {
	if _, err := j.handle(); err != nil {
		return Movement{}, err
	}
	if n < 0 {
		return Movement{}, fmt.Errorf("%s: skip %d: %w", op, n, ErrRange)
	}
	if n == 0 {
		return Movement{Kind: EOF}, nil
	}
	return j.move(op, func(h native.Handle) int { return f(h, uint64(n)) }, uint64(n))
}

func (j *Journal) do(op string, f func(native.Handle) int) (int, error) {
	h, err := j.handle()
	if err != nil {
		return 0, err
	}
	rc := f(h)
	return rc, check(op, rc)
}

// SeekHead positions before the first entry.
func (j *Journal) SeekHead() error {
	_, err := j.do("sd_journal_seek_head", native.Handle.SeekHead)
	return err
}

// SeekTail positions after the last entry.
func (j *Journal) SeekTail() error {
	_, err := j.do("sd_journal_seek_tail", native.Handle.SeekTail)
	return err
}

// SeekMonotonicUsec positions at a monotonic timestamp of one boot.
func (j *Journal) SeekMonotonicUsec(boot id128.ID, usec uint64) error {
	_, err := j.do("sd_journal_seek_monotonic_usec", func(h native.Handle) int {
		return h.SeekMonotonicUsec(boot, usec)
	})
	return err
}

// SeekRealtimeUsec positions at a wallclock timestamp in microseconds since
// the epoch.
func (j *Journal) SeekRealtimeUsec(usec uint64) error {
	_, err := j.do("sd_journal_seek_realtime_usec", func(h native.Handle) int {
		return h.SeekRealtimeUsec(usec)
	})
	return err
}

// SeekCursor positions at the entry a cursor token refers to.
func (j *Journal) SeekCursor(cursor string) error {
	const op = "sd_journal_seek_cursor"
	if err := cstring(op, cursor); err != nil {
		return err
	}
	_, err := j.do(op, func(h native.Handle) int { return h.SeekCursor(cursor) })
	return err
}

// TestCursor reports whether the current entry is the one a cursor token
// refers to.
func (j *Journal) TestCursor(cursor string) (bool, error) {
	const op = "sd_journal_test_cursor"
	if err := cstring(op, cursor); err != nil {
		return false, err
	}
	rc, err := j.do(op, func(h native.Handle) int { return h.TestCursor(cursor) })
	return rc > 0, err
}

func (j *Journal) takeBuffer(op string, f func(native.Handle) (native.Buffer, int)) ([]byte, error) {
	h, err := j.handle()
	if err != nil {
		return nil, err
	}
	buf, rc := f(h)
	if err := check(op, rc); err != nil {
		return nil, err
	}
	return take(buf), nil
}

// GetCursor returns the cursor token of the current entry.
func (j *Journal) GetCursor() ([]byte, error) {
	return j.takeBuffer("sd_journal_get_cursor", native.Handle.GetCursor)
}

// GetCatalog returns the catalog text of the current entry's MESSAGE_ID
// with field placeholders filled in.
func (j *Journal) GetCatalog() ([]byte, error) {
	return j.takeBuffer("sd_journal_get_catalog", native.Handle.GetCatalog)
}

// GetRealtimeUsec returns the wallclock timestamp of the current entry.
func (j *Journal) GetRealtimeUsec() (uint64, error) {
	h, err := j.handle()
	if err != nil {
		return 0, err
	}
	usec, rc := h.GetRealtimeUsec()
	return usec, check("sd_journal_get_realtime_usec", rc)
}

// GetMonotonicUsec returns the monotonic timestamp of the current entry and
// the boot it belongs to.
func (j *Journal) GetMonotonicUsec() (uint64, id128.ID, error) {
	h, err := j.handle()
	if err != nil {
		return 0, id128.Null, err
	}
	usec, boot, rc := h.GetMonotonicUsec()
	if err := check("sd_journal_get_monotonic_usec", rc); err != nil {
		return 0, id128.Null, err
	}
	return usec, boot, nil
}

// GetCutoffRealtimeUsec returns the wallclock range covered by the journal.
// ok is false when there are no entries.
func (j *Journal) GetCutoffRealtimeUsec() (from, to uint64, ok bool, err error) {
	h, err := j.handle()
	if err != nil {
		return 0, 0, false, err
	}
	from, to, rc := h.GetCutoffRealtimeUsec()
	if err := check("sd_journal_get_cutoff_realtime_usec", rc); err != nil {
		return 0, 0, false, err
	}
	return from, to, rc > 0, nil
}

// GetCutoffMonotonicUsec returns the monotonic range covered by one boot.
// ok is false when the boot has no entries.
func (j *Journal) GetCutoffMonotonicUsec(boot id128.ID) (from, to uint64, ok bool, err error) {
	h, err := j.handle()
	if err != nil {
		return 0, 0, false, err
	}
	from, to, rc := h.GetCutoffMonotonicUsec(boot)
	if err := check("sd_journal_get_cutoff_monotonic_usec", rc); err != nil {
		return 0, 0, false, err
	}
	return from, to, rc > 0, nil
}

// GetData returns the FIELD=value data of field in the current entry.
func (j *Journal) GetData(field string) ([]byte, error) {
	const op = "sd_journal_get_data"
	if err := cstring(op, field); err != nil {
		return nil, err
	}
	h, err := j.handle()
	if err != nil {
		return nil, err
	}
	d, rc := h.GetData(field)
	if err := check(op, rc); err != nil {
		return nil, err
	}
	return bytes.Clone(d), nil
}

func (j *Journal) enumerate(op string, f func(native.Handle) ([]byte, int)) (Enumeration[[]byte], error) {
	h, err := j.handle()
	if err != nil {
		return EndOfEnumeration[[]byte](), err
	}
	d, rc := f(h)
	if err := check(op, rc); err != nil {
		return EndOfEnumeration[[]byte](), err
	}
	if rc == 0 {
		return EndOfEnumeration[[]byte](), nil
	}
	// d is only valid until the next call on the handle.
	return Value(bytes.Clone(d)), nil
}

func (j *Journal) restart(f func(native.Handle)) error {
	h, err := j.handle()
	if err != nil {
		return err
	}
	f(h)
	return nil
}

// EnumerateData returns the next FIELD=value item of the current entry.
func (j *Journal) EnumerateData() (Enumeration[[]byte], error) {
	return j.enumerate("sd_journal_enumerate_data", native.Handle.EnumerateData)
}

// EnumerateAvailableData is EnumerateData skipping items that cannot be
// read, such as fields compressed with an unsupported algorithm.
func (j *Journal) EnumerateAvailableData() (Enumeration[[]byte], error) {
	return j.enumerate("sd_journal_enumerate_available_data", native.Handle.EnumerateAvailableData)
}

// RestartData rewinds the data enumeration of the current entry.
func (j *Journal) RestartData() error {
	return j.restart(native.Handle.RestartData)
}

// EnumerateFields returns the next field name used anywhere in the journal.
func (j *Journal) EnumerateFields() (Enumeration[[]byte], error) {
	return j.enumerate("sd_journal_enumerate_fields", native.Handle.EnumerateFields)
}

// RestartFields rewinds the field name enumeration.
func (j *Journal) RestartFields() error {
	return j.restart(native.Handle.RestartFields)
}

// QueryUnique selects the field whose values EnumerateUnique returns.
func (j *Journal) QueryUnique(field string) error {
	const op = "sd_journal_query_unique"
	if err := cstring(op, field); err != nil {
		return err
	}
	_, err := j.do(op, func(h native.Handle) int { return h.QueryUnique(field) })
	return err
}

// EnumerateUnique returns the next distinct FIELD=value of the queried field.
func (j *Journal) EnumerateUnique() (Enumeration[[]byte], error) {
	return j.enumerate("sd_journal_enumerate_unique", native.Handle.EnumerateUnique)
}

// EnumerateAvailableUnique is EnumerateUnique skipping unreadable values.
func (j *Journal) EnumerateAvailableUnique() (Enumeration[[]byte], error) {
	return j.enumerate("sd_journal_enumerate_available_unique", native.Handle.EnumerateAvailableUnique)
}

// RestartUnique rewinds the unique value enumeration.
func (j *Journal) RestartUnique() error {
	return j.restart(native.Handle.RestartUnique)
}

// AddMatch adds a FIELD=value match. The data is passed with its length.
func (j *Journal) AddMatch(data []byte) error {
	_, err := j.do("sd_journal_add_match", func(h native.Handle) int { return h.AddMatch(data) })
	return err
}

// AddDisjunction starts an alternative to the matches added so far.
func (j *Journal) AddDisjunction() error {
	_, err := j.do("sd_journal_add_disjunction", native.Handle.AddDisjunction)
	return err
}

// AddConjunction requires the matches added so far and the ones that follow
// to hold together.
func (j *Journal) AddConjunction() error {
	_, err := j.do("sd_journal_add_conjunction", native.Handle.AddConjunction)
	return err
}

// FlushMatches removes every match.
func (j *Journal) FlushMatches() error {
	return j.restart(native.Handle.FlushMatches)
}

// GetFd returns a file descriptor that becomes readable when the journal
// changes.
func (j *Journal) GetFd() (int, error) {
	return j.do("sd_journal_get_fd", native.Handle.GetFd)
}

// GetEvents returns the poll events to wait for on GetFd.
func (j *Journal) GetEvents() (int, error) {
	return j.do("sd_journal_get_events", native.Handle.GetEvents)
}

// GetTimeout returns the CLOCK_MONOTONIC deadline in microseconds by which
// Process must be called, or math.MaxUint64 for none.
func (j *Journal) GetTimeout() (uint64, error) {
	h, err := j.handle()
	if err != nil {
		return 0, err
	}
	usec, rc := h.GetTimeout()
	return usec, check("sd_journal_get_timeout", rc)
}

func event(op string, rc int) (Event, error) {
	if err := check(op, rc); err != nil {
		return EventNOP, err
	}
	switch ev := Event(rc); ev {
	case EventNOP, EventAppend, EventInvalidate:
		return ev, nil
	}
	return EventNOP, &NativeError{Op: op, Code: rc}
}

// Process consumes pending change notifications after GetFd became readable.
func (j *Journal) Process() (Event, error) {
	h, err := j.handle()
	if err != nil {
		return EventNOP, err
	}
	return event("sd_journal_process", h.Process())
}

// Wait blocks until the journal changes or timeoutUsec microseconds passed.
// math.MaxUint64 waits forever.
func (j *Journal) Wait(timeoutUsec uint64) (Event, error) {
	h, err := j.handle()
	if err != nil {
		return EventNOP, err
	}
	start := time.Now()
	ev, err := event("sd_journal_wait", h.Wait(timeoutUsec))
	recordWait(time.Since(start), ev)
	return ev, err
}

// GetUsage returns the disk space used by the open journal files in bytes.
func (j *Journal) GetUsage() (uint64, error) {
	h, err := j.handle()
	if err != nil {
		return 0, err
	}
	n, rc := h.GetUsage()
	return n, check("sd_journal_get_usage", rc)
}

// HasRuntimeFiles reports whether any open file lives in /run.
func (j *Journal) HasRuntimeFiles() (bool, error) {
	rc, err := j.do("sd_journal_has_runtime_files", native.Handle.HasRuntimeFiles)
	return rc > 0, err
}

// HasPersistentFiles reports whether any open file lives in /var.
func (j *Journal) HasPersistentFiles() (bool, error) {
	rc, err := j.do("sd_journal_has_persistent_files", native.Handle.HasPersistentFiles)
	return rc > 0, err
}

// SetDataThreshold sets the size up to which field data is returned by
// GetData and the enumerations. Zero means unlimited.
func (j *Journal) SetDataThreshold(n uint64) error {
	_, err := j.do("sd_journal_set_data_threshold", func(h native.Handle) int {
		return h.SetDataThreshold(n)
	})
	return err
}

// GetDataThreshold returns the value set by SetDataThreshold.
func (j *Journal) GetDataThreshold() (uint64, error) {
	h, err := j.handle()
	if err != nil {
		return 0, err
	}
	n, rc := h.GetDataThreshold()
	return n, check("sd_journal_get_data_threshold", rc)
}
