package recordio

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"iter"
)

// ErrNoSeparator is returned for data that has no '=' between field name and value.
var ErrNoSeparator = errors.New("missing '=' separator")

// Record represents a single journal field
type Record struct {
	Field string
	Value []byte
}

// Split splits FIELD=value data at the first '='. The value aliases data.
func Split(data []byte) (Record, error) {
	i := bytes.IndexByte(data, '=')
	if i < 0 {
		return Record{}, ErrNoSeparator
	}
	return Record{Field: string(data[:i]), Value: data[i+1:]}, nil
}

// Records returns an iterator over the FIELD=value items. A malformed item
// yields its error and ends the iteration.
func Records(data [][]byte) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for _, d := range data {
			r, err := Split(d)
			if err != nil {
				yield(Record{}, fmt.Errorf("splitting %q: %w", truncate(d), err))
				return
			}
			if !yield(r, nil) {
				return
			}
		}
	}
}

// ExportEntries reads entries in the journal export format. Each entry is a
// run of fields terminated by an empty line. Text fields are FIELD=value
// lines, binary fields are FIELD\n followed by a little endian uint64 length,
// the value and a newline.
func ExportEntries(r io.Reader) iter.Seq2[[]Record, error] {
	return func(yield func([]Record, error) bool) {
		br := bufio.NewReader(r)
		var entry []Record
		for {
			line, err := br.ReadBytes('\n')
			if err == io.EOF && len(line) == 0 {
				if len(entry) > 0 {
					yield(entry, nil)
				}
				return
			}
			if err != nil {
				yield(nil, fmt.Errorf("reading export stream: %w", err))
				return
			}
			line = line[:len(line)-1]

			if len(line) == 0 {
				if len(entry) > 0 && !yield(entry, nil) {
					return
				}
				entry = nil
				continue
			}

			if bytes.IndexByte(line, '=') >= 0 {
				rec, _ := Split(line)
				rec.Value = bytes.Clone(rec.Value)
				entry = append(entry, rec)
				continue
			}

			// Binary field
			var size uint64
			if err := binary.Read(br, binary.LittleEndian, &size); err != nil {
				yield(nil, fmt.Errorf("reading size of field %s: %w", line, err))
				return
			}
			value := make([]byte, size+1)
			if _, err := io.ReadFull(br, value); err != nil {
				yield(nil, fmt.Errorf("reading value of field %s: %w", line, err))
				return
			}
			if value[size] != '\n' {
				yield(nil, fmt.Errorf("field %s: missing newline after binary value", line))
				return
			}
			entry = append(entry, Record{Field: string(line), Value: value[:size]})
		}
	}
}

func truncate(b []byte) []byte {
	if len(b) > 32 {
		return b[:32]
	}
	return b
}
