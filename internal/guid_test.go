package internal

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGUID(t *testing.T) {
	onDisk := []byte{
		0x01, 0x14, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00,
		0xC0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x46,
	}
	guid, err := ReadGUID(onDisk, 0)
	require.NoError(t, err)
	assert.Equal(t, "00021401-0000-0000-c000-000000000046", guid.String())
	assert.Equal(t, guid, MustParseGUID("{00021401-0000-0000-C000-000000000046}"))
	assert.False(t, guid.IsZero())
	assert.True(t, GUID{}.IsZero())

	encoded, err := json.Marshal(map[string]GUID{"id": guid})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"00021401-0000-0000-c000-000000000046"}`, string(encoded))

	canonical := uuid.MustParse("00021401-0000-0000-c000-000000000046")
	assert.Equal(t, canonical, guid.UUID())
	assert.Equal(t, guid, FromUUID(canonical))
	assert.Equal(t, onDisk, guid[:])

	_, err = ReadGUID(onDisk, 1)
	assert.Error(t, err)
}

func TestParseGUIDInvalid(t *testing.T) {
	for _, s := range []string{"", "not-a-guid", "00021401-0000-0000-C000-00000000004", "00021401000000000C000000000000046xxxx"} {
		_, err := ParseGUID(s)
		assert.Error(t, err, s)
	}
	assert.Panics(t, func() { MustParseGUID("nope") })
}
