package raw

import (
	"errors"
	"fmt"
	"syscall"
)

var (
	// ErrEmbeddedNUL is returned when a string passed to the native library
	// contains a NUL byte.
	ErrEmbeddedNUL = errors.New("string contains NUL byte")
	// ErrRange is returned for a negative skip count.
	ErrRange = errors.New("skip count out of range")
	// ErrTimestampRange is returned for times and durations that cannot be
	// expressed as unsigned microseconds.
	ErrTimestampRange = errors.New("timestamp out of range")
	// ErrUnexpectedDataFormat is returned when the native library hands back
	// data that is not FIELD=value.
	ErrUnexpectedDataFormat = errors.New("unexpected data format")
	// ErrClosed is returned by every operation on a closed journal.
	ErrClosed = errors.New("journal is closed")
)

// NativeError is a negative return code of a libsystemd call.
type NativeError struct {
	Op   string
	Code int
}

func (e *NativeError) Error() string {
	if e.Code < 0 {
		return fmt.Sprintf("%s: %v", e.Op, syscall.Errno(-e.Code))
	}
	return fmt.Sprintf("%s: unexpected result %d", e.Op, e.Code)
}

// Unwrap returns the syscall.Errno so callers can use errors.Is with
// well-known codes such as syscall.ENOENT.
func (e *NativeError) Unwrap() error {
	if e.Code < 0 {
		return syscall.Errno(-e.Code)
	}
	return nil
}
