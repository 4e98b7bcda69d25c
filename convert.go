package sdjournal

import (
	"bytes"
	"fmt"
	"math"
	"time"
	"unicode/utf8"
)

var maxRealtime = time.UnixMicro(math.MaxInt64)

func decode(op string, b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidUTF8)
	}
	return string(b), nil
}

// splitField decodes FIELD=value data, splitting at the first '='.
func splitField(op string, b []byte) (Field, error) {
	i := bytes.IndexByte(b, '=')
	if i < 0 {
		return Field{}, fmt.Errorf("%s: %w", op, ErrUnexpectedDataFormat)
	}
	s, err := decode(op, b)
	if err != nil {
		return Field{}, err
	}
	return Field{Name: s[:i], Value: s[i+1:]}, nil
}

// stripField removes the "field=" prefix libsystemd puts before every value.
func stripField(op, field string, b []byte) ([]byte, error) {
	if len(b) <= len(field) || string(b[:len(field)]) != field || b[len(field)] != '=' {
		return nil, fmt.Errorf("%s: %w", op, ErrUnexpectedDataFormat)
	}
	return b[len(field)+1:], nil
}

func usecToDuration(op string, usec uint64) (time.Duration, error) {
	if usec > math.MaxInt64/uint64(time.Microsecond) {
		return 0, fmt.Errorf("%s: %d µs: %w", op, usec, ErrTimestampRange)
	}
	return time.Duration(usec) * time.Microsecond, nil
}

func usecToTime(op string, usec uint64) (time.Time, error) {
	if usec > math.MaxInt64 {
		return time.Time{}, fmt.Errorf("%s: %d µs: %w", op, usec, ErrTimestampRange)
	}
	return time.UnixMicro(int64(usec)).UTC(), nil
}

func durationToUsec(op string, d time.Duration) (uint64, error) {
	if d < 0 {
		return 0, fmt.Errorf("%s: %v: %w", op, d, ErrTimestampRange)
	}
	return uint64(d / time.Microsecond), nil
}

func timeToUsec(op string, t time.Time) (uint64, error) {
	if t.Before(time.Unix(0, 0)) || t.After(maxRealtime) {
		return 0, fmt.Errorf("%s: %v: %w", op, t, ErrTimestampRange)
	}
	return uint64(t.UnixMicro()), nil
}
