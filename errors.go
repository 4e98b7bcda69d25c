package sdjournal

import (
	"errors"

	"github.com/dynoinc/sdjournal/internal/recordio"
	"github.com/dynoinc/sdjournal/raw"
)

var (
	// ErrInvalidUTF8 is returned when text from the journal is not valid
	// UTF-8. Use Raw or DataBytes to read such values.
	ErrInvalidUTF8 = errors.New("invalid UTF-8")
	// ErrInvalidFieldName is returned by LogFields for names journald would
	// drop: anything but A-Z, 0-9 and '_', or a leading '_' or digit.
	ErrInvalidFieldName = recordio.ErrInvalidFieldName

	ErrEmbeddedNUL          = raw.ErrEmbeddedNUL
	ErrRange                = raw.ErrRange
	ErrTimestampRange       = raw.ErrTimestampRange
	ErrUnexpectedDataFormat = raw.ErrUnexpectedDataFormat
	ErrClosed               = raw.ErrClosed
)

// NativeError is a negative return code of a libsystemd call.
type NativeError = raw.NativeError
