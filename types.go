package sdjournal

import (
	"time"

	"github.com/dynoinc/sdjournal/id128"
	"github.com/dynoinc/sdjournal/raw"
)

type (
	Movement       = raw.Movement
	MovementKind   = raw.MovementKind
	Level          = raw.Level
	Event          = raw.Event
	FileFlags      = raw.FileFlags
	UserFlags      = raw.UserFlags
	NamespaceFlags = raw.NamespaceFlags
	PathFlags      = raw.PathFlags
)

// Enumeration is one step of an enumeration: a value or the end.
type Enumeration[T any] = raw.Enumeration[T]

const (
	Done    = raw.Done
	Limited = raw.Limited
	EOF     = raw.EOF

	LevelEmergency = raw.LevelEmergency
	LevelAlert     = raw.LevelAlert
	LevelCritical  = raw.LevelCritical
	LevelError     = raw.LevelError
	LevelWarning   = raw.LevelWarning
	LevelNotice    = raw.LevelNotice
	LevelInfo      = raw.LevelInfo
	LevelDebug     = raw.LevelDebug

	EventNOP        = raw.EventNOP
	EventAppend     = raw.EventAppend
	EventInvalidate = raw.EventInvalidate

	AllFiles         = raw.AllFiles
	LocalOnly        = raw.LocalOnly
	RuntimeOnly      = raw.RuntimeOnly
	LocalRuntimeOnly = raw.LocalRuntimeOnly

	AllUsers             = raw.AllUsers
	SystemOnly           = raw.SystemOnly
	CurrentUserOnly      = raw.CurrentUserOnly
	CurrentUserAndSystem = raw.CurrentUserAndSystem

	SelectedNamespaceOnly    = raw.SelectedNamespaceOnly
	DefaultNamespaceIncluded = raw.DefaultNamespaceIncluded

	FullPath     = raw.FullPath
	PathToOSRoot = raw.PathToOSRoot
)

// IndefiniteWait makes Wait block until the journal changes.
const IndefiniteWait = time.Duration(1<<63 - 1)

// Field is one FIELD=value item of an entry.
type Field struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Monotonic is a CLOCK_MONOTONIC timestamp, meaningful only within its boot.
type Monotonic struct {
	Elapsed time.Duration `json:"elapsed" yaml:"elapsed"`
	BootID  id128.ID      `json:"boot_id" yaml:"boot_id"`
}
