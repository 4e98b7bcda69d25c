package recordio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	// MaxFieldNameLen is the longest field name journald accepts.
	MaxFieldNameLen = 64
)

// ErrInvalidFieldName is returned for field names journald would drop.
var ErrInvalidFieldName = errors.New("invalid field name")

// ValidFieldName reports whether name is a well formed journal field name:
// uppercase letters, digits and underscores, not starting with a digit.
func ValidFieldName(name string) bool {
	if name == "" || len(name) > MaxFieldNameLen {
		return false
	}
	if name[0] >= '0' && name[0] <= '9' {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if !(c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_') {
			return false
		}
	}
	return true
}

// ValidUserFieldName is ValidFieldName without the trusted '_' prefix, which
// only journald itself may write.
func ValidUserFieldName(name string) bool {
	return ValidFieldName(name) && name[0] != '_'
}

// NormalizeFieldName maps an arbitrary key to a valid user field name, or
// returns "" if nothing usable remains.
func NormalizeFieldName(key string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(key) {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	name := strings.TrimLeft(b.String(), "_0123456789")
	if len(name) > MaxFieldNameLen {
		name = name[:MaxFieldNameLen]
	}
	return name
}

// Encode returns FIELD=value.
func (r Record) Encode() []byte {
	buf := make([]byte, 0, len(r.Field)+1+len(r.Value))
	buf = append(buf, r.Field...)
	buf = append(buf, '=')
	return append(buf, r.Value...)
}

// WriteRecords encodes records as FIELD=value items ready for sd_journal_sendv.
func WriteRecords(records []Record) ([][]byte, error) {
	out := make([][]byte, 0, len(records))
	for _, r := range records {
		if !ValidUserFieldName(r.Field) {
			return nil, fmt.Errorf("field %q: %w", r.Field, ErrInvalidFieldName)
		}
		out = append(out, r.Encode())
	}
	return out, nil
}

// WriteExport writes one entry in the journal export format.
func WriteExport(w io.Writer, entry []Record) error {
	var buf bytes.Buffer
	for _, r := range entry {
		buf.WriteString(r.Field)
		if bytes.IndexByte(r.Value, '\n') < 0 {
			buf.WriteByte('=')
			buf.Write(r.Value)
			buf.WriteByte('\n')
			continue
		}

		buf.WriteByte('\n')
		_ = binary.Write(&buf, binary.LittleEndian, uint64(len(r.Value)))
		buf.Write(r.Value)
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')

	_, err := w.Write(buf.Bytes())
	return err
}
