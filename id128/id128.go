// Package id128 implements the 128-bit identifiers systemd uses for boot IDs,
// machine IDs and catalog message IDs.
package id128

import (
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// ID is a 128-bit systemd identifier. The zero value is the null ID.
type ID [16]byte

// Null is the all-zero ID.
var Null ID

// Parse parses an ID in the 32 hex digit form systemd prints, or in any of the
// UUID forms accepted by uuid.Parse.
func Parse(s string) (ID, error) {
	if len(s) == 32 {
		var id ID
		if _, err := hex.Decode(id[:], []byte(s)); err != nil {
			return Null, fmt.Errorf("parsing id128 %q: %w", s, err)
		}
		return id, nil
	}

	u, err := uuid.Parse(s)
	if err != nil {
		return Null, fmt.Errorf("parsing id128 %q: %w", s, err)
	}
	return ID(u), nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) ID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

// FromUUID converts a UUID into an ID.
func FromUUID(u uuid.UUID) ID {
	return ID(u)
}

// String formats the ID as 32 lowercase hex digits.
func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

// UUID formats the ID in the hyphenated UUID form.
func (id ID) UUID() uuid.UUID {
	return uuid.UUID(id)
}

// IsNull reports whether all bytes are zero.
func (id ID) IsNull() bool {
	return id == Null
}

func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ID) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*id = v
	return nil
}
