package internal

import (
	"fmt"

	"github.com/google/uuid"
)

// GUID is a Windows GUID in its on-disk byte order: the first three groups
// are little-endian. UUID converts it to the RFC 4122 layout.
type GUID uuid.UUID

// swapGroups converts between the mixed-endian on-disk layout and the RFC
// 4122 layout. It is its own inverse.
func swapGroups(b [16]byte) [16]byte {
	b[0], b[1], b[2], b[3] = b[3], b[2], b[1], b[0]
	b[4], b[5] = b[5], b[4]
	b[6], b[7] = b[7], b[6]
	return b
}

// ReadGUID reads a 16-byte GUID at offset.
func ReadGUID(data []byte, offset int) (GUID, error) {
	b, err := Slice(data, offset, 16)
	if err != nil {
		return GUID{}, err
	}
	id, err := uuid.FromBytes(b)
	if err != nil {
		return GUID{}, err
	}
	return GUID(id), nil
}

// FromUUID converts an RFC 4122 UUID to on-disk order.
func FromUUID(id uuid.UUID) GUID {
	return GUID(swapGroups(id))
}

// MustParseGUID parses the canonical textual form and panics on failure. It
// is meant for package level constants.
func MustParseGUID(s string) GUID {
	guid, err := ParseGUID(s)
	if err != nil {
		panic(err)
	}
	return guid
}

// ParseGUID parses "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx", with or without
// surrounding braces.
func ParseGUID(s string) (GUID, error) {
	if len(s) != 36 && len(s) != 38 {
		return GUID{}, fmt.Errorf("invalid guid %q", s)
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return GUID{}, fmt.Errorf("invalid guid %q: %w", s, err)
	}
	return FromUUID(id), nil
}

// UUID returns the GUID in RFC 4122 byte order.
func (g GUID) UUID() uuid.UUID {
	return uuid.UUID(swapGroups(g))
}

func (g GUID) String() string {
	return g.UUID().String()
}

// IsZero reports whether every byte of the GUID is zero.
func (g GUID) IsZero() bool {
	return uuid.UUID(g) == uuid.Nil
}

// MarshalText renders the GUID in its canonical form for JSON output.
func (g GUID) MarshalText() ([]byte, error) {
	return g.UUID().MarshalText()
}
