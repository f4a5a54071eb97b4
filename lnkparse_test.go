package lnkparse

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math/rand"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewstucki/lnkparse/lnk"
)

// minimalLink is a header without optional sections followed by the extra
// data terminator.
func minimalLink(flags lnk.LinkFlags) []byte {
	var buf bytes.Buffer
	write := func(v interface{}) { _ = binary.Write(&buf, binary.LittleEndian, v) }
	write(uint32(lnk.HeaderSize))
	buf.Write(lnk.LinkCLSID[:])
	write(uint32(flags))
	write(uint32(lnk.FileAttributeArchive))
	write([3]uint64{})
	write(uint32(0))
	write(uint32(0))
	write(uint32(lnk.ShowNormal))
	write(uint16(0))
	buf.Write(make([]byte, 10))
	write(uint32(0))
	return buf.Bytes()
}

func TestParseShortcut(t *testing.T) {
	data := minimalLink(0)
	require.True(t, IsShortcut(data))

	info, err := Parse(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, MIME, info.MIME)
	assert.Equal(t, len(data), info.Size)

	sum := sha256.Sum256(data)
	assert.Equal(t, hex.EncodeToString(sum[:]), info.SHA256)
	assert.Len(t, info.MD5, 32)
	assert.Len(t, info.SHA1, 40)
	assert.Empty(t, info.SSDEEP)

	require.NotNil(t, info.LNK)
	assert.Equal(t, lnk.ShowNormal, info.LNK.Header.ShowCommand)
	assert.Empty(t, info.LNK.ExtraData)
}

func TestParseBrokenShortcut(t *testing.T) {
	// the ID list flag is set but nothing follows the header
	data := minimalLink(lnk.HasLinkTargetIDList)[:lnk.HeaderSize]
	info, err := Parse(bytes.NewReader(data))
	require.Error(t, err)
	assert.Nil(t, info)

	var rangeErr *lnk.RangeError
	assert.ErrorAs(t, err, &rangeErr)
}

func TestParseOtherFiles(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected string
	}{
		{"text", []byte("just some notes\n"), "text/plain"},
		{"empty", nil, "text/plain"},
		{"binary", []byte{0x00, 0xFF, 0xFE, 0x80, 0x81}, "application/octet-stream"},
		{"png", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x0dIHDR"), "image/png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := Parse(bytes.NewReader(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, info.MIME)
			assert.Nil(t, info.LNK)
			assert.Equal(t, len(tt.data), info.Size)
			assert.False(t, IsShortcut(tt.data))
		})
	}
}

func TestIsShortcutNeedsCLSID(t *testing.T) {
	data := minimalLink(0)
	assert.False(t, IsShortcut(data[:sniffSize-1]))

	data[10] ^= 0xFF
	assert.False(t, IsShortcut(data))
	assert.False(t, IsShortcut([]byte(strings.Repeat("L", 64))))
}

func noise(size int) []byte {
	data := make([]byte, size)
	rand.New(rand.NewSource(1)).Read(data)
	return data
}

func TestParseFuzzyHash(t *testing.T) {
	format := regexp.MustCompile(`^\d+:[A-Za-z0-9+/]+:[A-Za-z0-9+/]*$`)

	tests := []struct {
		name  string
		data  []byte
		empty bool
	}{
		{"below threshold", noise(minFileSize - 1), true},
		{"at threshold", noise(minFileSize), true},
		{"above threshold", noise(minFileSize + 1), false},
		{"large", noise(64 * 1024), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := Parse(bytes.NewReader(tt.data))
			require.NoError(t, err)
			if tt.empty {
				assert.Empty(t, info.SSDEEP)
				return
			}
			assert.Regexp(t, format, info.SSDEEP)

			again, err := Parse(bytes.NewReader(tt.data))
			require.NoError(t, err)
			assert.Equal(t, info.SSDEEP, again.SSDEEP)
		})
	}
}

func TestSsdeep(t *testing.T) {
	_, err := ssdeep(noise(minFileSize - 1))
	assert.Equal(t, errNotEnoughData, err)

	// a constant input never triggers a piece boundary
	_, err = ssdeep(make([]byte, 2*minFileSize))
	assert.Equal(t, errBlockTooSmall, err)

	assert.Equal(t, 3, initialBlockSize(minFileSize/spamSumLength/2))
	assert.Equal(t, 192, initialBlockSize(8192))
	assert.Equal(t, 384, initialBlockSize(12289))

	hash, err := ssdeep(noise(8192))
	require.NoError(t, err)
	parts := strings.Split(hash, ":")
	require.Len(t, parts, 3)
	assert.GreaterOrEqual(t, len(parts[1]), spamSumLength/2)
	assert.LessOrEqual(t, len(parts[1]), spamSumLength)
	assert.LessOrEqual(t, len(parts[2]), spamSumLength/2)
}
