package sdjournal

import (
	"iter"
)

func entries(j *Journal, move func() (Movement, error)) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		for {
			m, err := move()
			if err != nil {
				yield(Entry{}, err)
				return
			}
			if m.Kind == EOF {
				return
			}
			if !yield(Entry{j: j}, nil) {
				return
			}
		}
	}
}

// Entries moves forward one entry per step until the end of the journal.
// An error ends the sequence after it is yielded. Breaking out leaves the
// journal at the last entry yielded.
func (j *Journal) Entries() iter.Seq2[Entry, error] {
	return entries(j, j.Next)
}

// EntriesReverse is Entries moving backward.
func (j *Journal) EntriesReverse() iter.Seq2[Entry, error] {
	return entries(j, j.Previous)
}

func enumerate[T any](next func() (Enumeration[T], error)) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			e, err := next()
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			v, ok := e.Get()
			if !ok || !yield(v, nil) {
				return
			}
		}
	}
}

// Fields enumerates the remaining fields of the current entry.
func (j *Journal) Fields() iter.Seq2[Field, error] {
	return enumerate(j.EnumerateFields)
}

// FieldNames enumerates the remaining field names of the journal.
func (j *Journal) FieldNames() iter.Seq2[string, error] {
	return enumerate(j.EnumerateFieldNames)
}

// UniqueValues queries field and enumerates its distinct values.
func (j *Journal) UniqueValues(field string) (iter.Seq2[string, error], error) {
	if err := j.QueryUnique(field); err != nil {
		return nil, err
	}
	return enumerate(j.EnumerateUniqueValues), nil
}
