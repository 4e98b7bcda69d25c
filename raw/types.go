package raw

import (
	"strconv"

	"github.com/dynoinc/sdjournal/internal/native"
)

// MovementKind tells how far a movement got.
type MovementKind int

const (
	// Done means the full requested distance was moved.
	Done MovementKind = iota
	// Limited means the movement stopped early at the end of the journal.
	Limited
	// EOF means there was no entry to move to.
	EOF
)

func (k MovementKind) String() string {
	switch k {
	case Done:
		return "done"
	case Limited:
		return "limited"
	case EOF:
		return "eof"
	}
	return "MovementKind(" + strconv.Itoa(int(k)) + ")"
}

// Movement is the result of Next, Previous and their skipping variants.
// Count is the number of entries traversed.
type Movement struct {
	Kind  MovementKind
	Count uint64
}

func movement(rc int, requested uint64) Movement {
	switch {
	case rc == 0:
		return Movement{Kind: EOF}
	case uint64(rc) < requested:
		return Movement{Kind: Limited, Count: uint64(rc)}
	default:
		return Movement{Kind: Done, Count: uint64(rc)}
	}
}

// Enumeration is one step of an enumeration: either a value or the end.
type Enumeration[T any] struct {
	value T
	ok    bool
}

// Value returns an Enumeration holding v.
func Value[T any](v T) Enumeration[T] {
	return Enumeration[T]{value: v, ok: true}
}

// EndOfEnumeration returns the Enumeration that marks the end.
func EndOfEnumeration[T any]() Enumeration[T] {
	return Enumeration[T]{}
}

// EOF reports whether the enumeration is exhausted.
func (e Enumeration[T]) EOF() bool {
	return !e.ok
}

// Get returns the value and whether there was one.
func (e Enumeration[T]) Get() (T, bool) {
	return e.value, e.ok
}

// Map converts the value of an Enumeration.
func Map[T, U any](e Enumeration[T], f func(T) (U, error)) (Enumeration[U], error) {
	if !e.ok {
		return EndOfEnumeration[U](), nil
	}
	u, err := f(e.value)
	if err != nil {
		return EndOfEnumeration[U](), err
	}
	return Value(u), nil
}

// Level is a syslog priority.
type Level int

const (
	LevelEmergency Level = iota
	LevelAlert
	LevelCritical
	LevelError
	LevelWarning
	LevelNotice
	LevelInfo
	LevelDebug
)

var levelNames = [...]string{"emerg", "alert", "crit", "err", "warning", "notice", "info", "debug"}

func (l Level) String() string {
	if l.Valid() {
		return levelNames[l]
	}
	return "Level(" + strconv.Itoa(int(l)) + ")"
}

// Valid reports whether l is one of the eight syslog priorities.
func (l Level) Valid() bool {
	return l >= LevelEmergency && l <= LevelDebug
}

// Field renders the level as a PRIORITY=n journal field.
func (l Level) Field() string {
	return "PRIORITY=" + strconv.Itoa(int(l))
}

// ParseLevel accepts a priority number or one of the names of String.
func ParseLevel(s string) (Level, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		l := Level(n)
		return l, l.Valid()
	}
	for i, name := range levelNames {
		if name == s {
			return Level(i), true
		}
	}
	return 0, false
}

// FileFlags restricts which journal files are opened.
type FileFlags int

const (
	AllFiles         FileFlags = 0
	LocalOnly        FileFlags = native.LocalOnly
	RuntimeOnly      FileFlags = native.RuntimeOnly
	LocalRuntimeOnly FileFlags = native.LocalOnly | native.RuntimeOnly
)

// UserFlags restricts whose journal files are opened.
type UserFlags int

const (
	AllUsers             UserFlags = 0
	SystemOnly           UserFlags = native.System
	CurrentUserOnly      UserFlags = native.CurrentUser
	CurrentUserAndSystem UserFlags = native.System | native.CurrentUser
)

// NamespaceFlags selects whether the default namespace is opened alongside
// a named one.
type NamespaceFlags int

const (
	SelectedNamespaceOnly    NamespaceFlags = 0
	DefaultNamespaceIncluded NamespaceFlags = native.IncludeDefaultNamespace
)

// PathFlags tells how the path of OpenDirectory is interpreted.
type PathFlags int

const (
	// FullPath is a directory containing journal files.
	FullPath PathFlags = 0
	// PathToOSRoot is the root of an OS tree whose journal is opened.
	PathToOSRoot PathFlags = native.OSRoot
)

// Event is the reason Wait or Process returned.
type Event int

const (
	EventNOP        Event = native.EventNOP
	EventAppend     Event = native.EventAppend
	EventInvalidate Event = native.EventInvalidate
)

func (e Event) String() string {
	switch e {
	case EventNOP:
		return "nop"
	case EventAppend:
		return "append"
	case EventInvalidate:
		return "invalidate"
	}
	return "Event(" + strconv.Itoa(int(e)) + ")"
}
