package sdjournal

import (
	"fmt"
	"math"
	"time"

	"github.com/dynoinc/sdjournal/id128"
	"github.com/dynoinc/sdjournal/raw"
)

// Journal is an open journal positioned at one entry at a time.
type Journal struct {
	raw *raw.Journal
	lib *Library
}

// Raw returns the underlying raw journal. Both share one position.
func (j *Journal) Raw() *raw.Journal {
	return j.raw
}

// Close releases the journal. Closing twice is a no-op.
func (j *Journal) Close() error {
	return j.raw.Close()
}

// Next moves to the next entry.
func (j *Journal) Next() (Movement, error) {
	return j.raw.Next()
}

// Previous moves to the previous entry.
func (j *Journal) Previous() (Movement, error) {
	return j.raw.Previous()
}

// NextSkip moves forward n entries. The result is Limited when fewer than n
// entries were left.
func (j *Journal) NextSkip(n int) (Movement, error) {
	return j.raw.NextSkip(n)
}

// PreviousSkip moves backward n entries.
func (j *Journal) PreviousSkip(n int) (Movement, error) {
	return j.raw.PreviousSkip(n)
}

// SeekHead positions before the first entry.
//
// libsystemd may report spurious entries when the first movement after
// SeekHead is Previous; move forward once first.
func (j *Journal) SeekHead() error {
	return j.raw.SeekHead()
}

// SeekTail positions after the last entry. As with SeekHead, move backward
// once before moving forward.
func (j *Journal) SeekTail() error {
	return j.raw.SeekTail()
}

// SeekRealtime positions at the first entry at or after t.
func (j *Journal) SeekRealtime(t time.Time) error {
	usec, err := timeToUsec("sd_journal_seek_realtime_usec", t)
	if err != nil {
		return err
	}
	return j.raw.SeekRealtimeUsec(usec)
}

// SeekMonotonic positions at the first entry of boot at or after d.
func (j *Journal) SeekMonotonic(boot id128.ID, d time.Duration) error {
	usec, err := durationToUsec("sd_journal_seek_monotonic_usec", d)
	if err != nil {
		return err
	}
	return j.raw.SeekMonotonicUsec(boot, usec)
}

// SeekCursor positions at the entry a cursor was taken from. Call Next or
// Previous to make it current.
func (j *Journal) SeekCursor(cursor string) error {
	return j.raw.SeekCursor(cursor)
}

// Cursor returns a token for the current entry that stays valid across
// reopening the journal.
func (j *Journal) Cursor() (string, error) {
	const op = "sd_journal_get_cursor"
	b, err := j.raw.GetCursor()
	if err != nil {
		return "", err
	}
	return decode(op, b)
}

// CursorMatches reports whether cursor points at the current entry.
func (j *Journal) CursorMatches(cursor string) (bool, error) {
	return j.raw.TestCursor(cursor)
}

// Data returns the value of field in the current entry. A missing field
// fails with syscall.ENOENT.
func (j *Journal) Data(field string) (string, error) {
	const op = "sd_journal_get_data"
	v, err := j.DataBytes(field)
	if err != nil {
		return "", err
	}
	return decode(op, v)
}

// DataBytes is Data without decoding.
func (j *Journal) DataBytes(field string) ([]byte, error) {
	const op = "sd_journal_get_data"
	b, err := j.raw.GetData(field)
	if err != nil {
		return nil, err
	}
	return stripField(op, field, b)
}

// Realtime returns the wallclock time of the current entry.
func (j *Journal) Realtime() (time.Time, error) {
	const op = "sd_journal_get_realtime_usec"
	usec, err := j.raw.GetRealtimeUsec()
	if err != nil {
		return time.Time{}, err
	}
	return usecToTime(op, usec)
}

// Monotonic returns the monotonic time and boot of the current entry.
func (j *Journal) Monotonic() (Monotonic, error) {
	const op = "sd_journal_get_monotonic_usec"
	usec, boot, err := j.raw.GetMonotonicUsec()
	if err != nil {
		return Monotonic{}, err
	}
	d, err := usecToDuration(op, usec)
	if err != nil {
		return Monotonic{}, err
	}
	return Monotonic{Elapsed: d, BootID: boot}, nil
}

// RealtimeCutoff returns the times of the oldest and newest entries. ok is
// false for an empty journal.
func (j *Journal) RealtimeCutoff() (from, to time.Time, ok bool, err error) {
	const op = "sd_journal_get_cutoff_realtime_usec"
	f, t, ok, err := j.raw.GetCutoffRealtimeUsec()
	if err != nil || !ok {
		return time.Time{}, time.Time{}, false, err
	}
	if from, err = usecToTime(op, f); err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	if to, err = usecToTime(op, t); err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	return from, to, true, nil
}

// MonotonicCutoff returns the monotonic range of the entries of one boot. ok
// is false when the boot has no entries.
func (j *Journal) MonotonicCutoff(boot id128.ID) (from, to time.Duration, ok bool, err error) {
	const op = "sd_journal_get_cutoff_monotonic_usec"
	f, t, ok, err := j.raw.GetCutoffMonotonicUsec(boot)
	if err != nil || !ok {
		return 0, 0, false, err
	}
	if from, err = usecToDuration(op, f); err != nil {
		return 0, 0, false, err
	}
	if to, err = usecToDuration(op, t); err != nil {
		return 0, 0, false, err
	}
	return from, to, true, nil
}

func splitEnumeration(op string, e Enumeration[[]byte], err error) (Enumeration[Field], error) {
	if err != nil {
		return raw.EndOfEnumeration[Field](), err
	}
	return raw.Map(e, func(b []byte) (Field, error) { return splitField(op, b) })
}

// EnumerateFields returns the next field of the current entry. The
// enumeration restarts whenever the journal moves.
func (j *Journal) EnumerateFields() (Enumeration[Field], error) {
	e, err := j.raw.EnumerateData()
	return splitEnumeration("sd_journal_enumerate_data", e, err)
}

// EnumerateAvailableFields is EnumerateFields skipping fields that cannot be
// read, for example because they are compressed with an unsupported
// algorithm.
func (j *Journal) EnumerateAvailableFields() (Enumeration[Field], error) {
	e, err := j.raw.EnumerateAvailableData()
	return splitEnumeration("sd_journal_enumerate_available_data", e, err)
}

// RestartFields restarts the field enumeration of the current entry.
func (j *Journal) RestartFields() error {
	return j.raw.RestartData()
}

// EnumerateFieldNames returns the next field name used anywhere in the
// journal.
func (j *Journal) EnumerateFieldNames() (Enumeration[string], error) {
	const op = "sd_journal_enumerate_fields"
	e, err := j.raw.EnumerateFields()
	if err != nil {
		return raw.EndOfEnumeration[string](), err
	}
	return raw.Map(e, func(b []byte) (string, error) { return decode(op, b) })
}

// RestartFieldNames restarts the field name enumeration.
func (j *Journal) RestartFieldNames() error {
	return j.raw.RestartFields()
}

// QueryUnique selects the field whose distinct values EnumerateUniqueValues
// returns.
func (j *Journal) QueryUnique(field string) error {
	return j.raw.QueryUnique(field)
}

func valueEnumeration(op string, e Enumeration[[]byte], err error) (Enumeration[string], error) {
	if err != nil {
		return raw.EndOfEnumeration[string](), err
	}
	return raw.Map(e, func(b []byte) (string, error) {
		f, err := splitField(op, b)
		return f.Value, err
	})
}

// EnumerateUniqueValues returns the next distinct value of the field
// selected with QueryUnique. Matches do not apply.
func (j *Journal) EnumerateUniqueValues() (Enumeration[string], error) {
	e, err := j.raw.EnumerateUnique()
	return valueEnumeration("sd_journal_enumerate_unique", e, err)
}

// EnumerateAvailableUniqueValues is EnumerateUniqueValues skipping values
// that cannot be read.
func (j *Journal) EnumerateAvailableUniqueValues() (Enumeration[string], error) {
	e, err := j.raw.EnumerateAvailableUnique()
	return valueEnumeration("sd_journal_enumerate_available_unique", e, err)
}

// RestartUniqueValues restarts the unique value enumeration.
func (j *Journal) RestartUniqueValues() error {
	return j.raw.RestartUnique()
}

// AddMatch adds a FIELD=value match. Matches on different fields must all
// hold, matches on the same field are alternatives.
func (j *Journal) AddMatch(match string) error {
	return j.raw.AddMatch([]byte(match))
}

// AddMatchBytes adds a match whose value may be binary.
func (j *Journal) AddMatchBytes(match []byte) error {
	return j.raw.AddMatch(match)
}

// AddMatchField adds a match of field against value.
func (j *Journal) AddMatchField(field, value string) error {
	return j.raw.AddMatch([]byte(field + "=" + value))
}

// AddDisjunction ORs the matches added so far with the ones that follow.
func (j *Journal) AddDisjunction() error {
	return j.raw.AddDisjunction()
}

// AddConjunction ANDs the matches added so far with the ones that follow.
func (j *Journal) AddConjunction() error {
	return j.raw.AddConjunction()
}

// FlushMatches removes all matches.
func (j *Journal) FlushMatches() error {
	return j.raw.FlushMatches()
}

// Catalog returns the catalog text for the current entry's MESSAGE_ID with
// its @FIELD@ placeholders filled in.
func (j *Journal) Catalog() (string, error) {
	const op = "sd_journal_get_catalog"
	b, err := j.raw.GetCatalog()
	if err != nil {
		return "", err
	}
	return decode(op, b)
}

// Fd returns a file descriptor to poll for journal changes. Poll it for
// Events and call Process when it is ready.
func (j *Journal) Fd() (int, error) {
	return j.raw.GetFd()
}

// Events returns the poll events for Fd.
func (j *Journal) Events() (int, error) {
	return j.raw.GetEvents()
}

// Timeout returns the CLOCK_MONOTONIC time by which Process must be called
// even if Fd did not become ready, or IndefiniteWait.
func (j *Journal) Timeout() (time.Duration, error) {
	const op = "sd_journal_get_timeout"
	usec, err := j.raw.GetTimeout()
	if err != nil {
		return 0, err
	}
	if usec == math.MaxUint64 {
		return IndefiniteWait, nil
	}
	return usecToDuration(op, usec)
}

// Process handles changes after Fd became ready.
func (j *Journal) Process() (Event, error) {
	return j.raw.Process()
}

// Wait blocks until the journal changes or timeout passes. IndefiniteWait
// blocks without limit.
func (j *Journal) Wait(timeout time.Duration) (Event, error) {
	const op = "sd_journal_wait"
	if timeout == IndefiniteWait {
		return j.raw.Wait(math.MaxUint64)
	}
	usec, err := durationToUsec(op, timeout)
	if err != nil {
		return EventNOP, err
	}
	return j.raw.Wait(usec)
}

// Usage returns the disk space used by the journal files in bytes.
func (j *Journal) Usage() (uint64, error) {
	return j.raw.GetUsage()
}

// HasRuntimeFiles reports whether volatile journal files are open.
func (j *Journal) HasRuntimeFiles() (bool, error) {
	return j.raw.HasRuntimeFiles()
}

// HasPersistentFiles reports whether persistent journal files are open.
func (j *Journal) HasPersistentFiles() (bool, error) {
	return j.raw.HasPersistentFiles()
}

// SetDataThreshold limits how many bytes of a field value are returned. 0
// means no limit.
func (j *Journal) SetDataThreshold(n uint64) error {
	return j.raw.SetDataThreshold(n)
}

// DataThreshold returns the limit set with SetDataThreshold.
func (j *Journal) DataThreshold() (uint64, error) {
	return j.raw.GetDataThreshold()
}

// Snapshot is a copy of one entry that stays valid after the journal moves.
type Snapshot struct {
	Cursor    string    `json:"cursor" yaml:"cursor"`
	Realtime  time.Time `json:"realtime" yaml:"realtime"`
	Monotonic Monotonic `json:"monotonic" yaml:"monotonic"`
	Fields    []Field   `json:"fields" yaml:"fields"`
}

// Get returns the first value of field.
func (s *Snapshot) Get(name string) (string, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Snapshot copies the current entry. The field enumeration is restarted
// before and after.
func (j *Journal) Snapshot() (*Snapshot, error) {
	var (
		s   Snapshot
		err error
	)
	if s.Cursor, err = j.Cursor(); err != nil {
		return nil, err
	}
	if s.Realtime, err = j.Realtime(); err != nil {
		return nil, err
	}
	if s.Monotonic, err = j.Monotonic(); err != nil {
		return nil, err
	}

	if err := j.RestartFields(); err != nil {
		return nil, err
	}
	for f, err := range j.Fields() {
		if err != nil {
			return nil, fmt.Errorf("reading fields: %w", err)
		}
		s.Fields = append(s.Fields, f)
	}
	if err := j.RestartFields(); err != nil {
		return nil, err
	}
	return &s, nil
}
