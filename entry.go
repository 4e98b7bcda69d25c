package sdjournal

import (
	"iter"
	"time"
)

// Entry reads the entry the journal is currently positioned at. It does not
// pin that entry: once the journal moves, an Entry reads the new position.
// Use Snapshot to keep an entry.
type Entry struct {
	j *Journal
}

func (e Entry) Data(field string) (string, error) { return e.j.Data(field) }
func (e Entry) DataBytes(field string) ([]byte, error) { return e.j.DataBytes(field) }
func (e Entry) Realtime() (time.Time, error) { return e.j.Realtime() }
func (e Entry) Monotonic() (Monotonic, error) { return e.j.Monotonic() }
func (e Entry) Cursor() (string, error) { return e.j.Cursor() }
func (e Entry) CursorMatches(cursor string) (bool, error) { return e.j.CursorMatches(cursor) }
func (e Entry) Catalog() (string, error) { return e.j.Catalog() }
func (e Entry) EnumerateFields() (Enumeration[Field], error) { return e.j.EnumerateFields() }
func (e Entry) RestartFields() error { return e.j.RestartFields() }
func (e Entry) Fields() iter.Seq2[Field, error] { return e.j.Fields() }
func (e Entry) Snapshot() (*Snapshot, error) { return e.j.Snapshot() }

func (e Entry) EnumerateAvailableFields() (Enumeration[Field], error) {
	return e.j.EnumerateAvailableFields()
}
