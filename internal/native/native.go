// Package native describes the sd-journal C API as Go interfaces.
//
// Every method maps to exactly one libsystemd entry point and returns the
// entry point's integer result unchanged: negative values are negated errno
// codes. Byte slices returned by GetData and the Enumerate* methods are
// borrowed from the native library and are only valid until the next call on
// the same Handle. Buffers returned by GetCursor, GetCatalog and
// CatalogForMessageID are owned by the caller and must be released with Free.
package native

import (
	"github.com/dynoinc/sdjournal/id128"
)

// Flags accepted by the open entry points.
const (
	LocalOnly               = 1 << 0
	RuntimeOnly             = 1 << 1
	System                  = 1 << 2
	CurrentUser             = 1 << 3
	OSRoot                  = 1 << 4
	AllNamespaces           = 1 << 5
	IncludeDefaultNamespace = 1 << 6
)

// Wake reasons returned by Wait and Process.
const (
	EventNOP        = 0
	EventAppend     = 1
	EventInvalidate = 2
)

// Buffer is memory allocated by the native library on behalf of the caller.
type Buffer interface {
	// Bytes returns the buffer contents without the trailing NUL. The slice
	// aliases native memory and must not be used after Free.
	Bytes() []byte
	Free()
}

// Library holds the process-wide entry points.
type Library interface {
	Print(priority int, message string) int
	Sendv(fields [][]byte) int

	Open(flags int) (Handle, int)
	// OpenNamespace passes a NULL namespace when namespace is nil.
	OpenNamespace(namespace *string, flags int) (Handle, int)
	OpenDirectory(path string, flags int) (Handle, int)
	OpenFiles(paths []string, flags int) (Handle, int)

	CatalogForMessageID(id id128.ID) (Buffer, int)
}

// Handle is one open sd_journal context.
type Handle interface {
	Close()

	Next() int
	Previous() int
	NextSkip(skip uint64) int
	PreviousSkip(skip uint64) int

	SeekHead() int
	SeekTail() int
	SeekMonotonicUsec(boot id128.ID, usec uint64) int
	SeekRealtimeUsec(usec uint64) int
	SeekCursor(cursor string) int
	TestCursor(cursor string) int

	GetCursor() (Buffer, int)
	GetRealtimeUsec() (uint64, int)
	GetMonotonicUsec() (uint64, id128.ID, int)
	GetCutoffRealtimeUsec() (from, to uint64, rc int)
	GetCutoffMonotonicUsec(boot id128.ID) (from, to uint64, rc int)

	GetData(field string) ([]byte, int)
	EnumerateData() ([]byte, int)
	EnumerateAvailableData() ([]byte, int)
	RestartData()

	EnumerateFields() ([]byte, int)
	RestartFields()

	QueryUnique(field string) int
	EnumerateUnique() ([]byte, int)
	EnumerateAvailableUnique() ([]byte, int)
	RestartUnique()

	AddMatch(data []byte) int
	AddDisjunction() int
	AddConjunction() int
	FlushMatches()

	GetCatalog() (Buffer, int)

	GetFd() int
	GetEvents() int
	GetTimeout() (uint64, int)
	Process() int
	Wait(timeoutUsec uint64) int

	GetUsage() (uint64, int)
	HasRuntimeFiles() int
	HasPersistentFiles() int
	SetDataThreshold(size uint64) int
	GetDataThreshold() (uint64, int)
}
