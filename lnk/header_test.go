package lnk

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeHeader(t *testing.T) {
	data := headerBytes(HasName | IsUnicode)

	header, err := DecodeHeader(data, 0)
	require.NoError(t, err)

	expected := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, uint32(HeaderSize), header.HeaderSize)
	assert.Equal(t, LinkCLSID, header.LinkCLSID)
	assert.True(t, header.LinkFlags.Has(HasName))
	assert.True(t, header.LinkFlags.Has(IsUnicode))
	assert.False(t, header.LinkFlags.Has(HasLinkInfo))
	assert.Equal(t, FileAttributeArchive, header.FileAttributes)
	require.NotNil(t, header.CreationTime)
	assert.True(t, expected.Equal(*header.CreationTime))
	assert.Nil(t, header.AccessTime)
	require.NotNil(t, header.WriteTime)
	assert.Equal(t, uint32(1234), header.FileSize)
	assert.Equal(t, ShowNormal, header.ShowCommand)
	assert.Nil(t, header.HotKey)
}

func TestDecodeHeaderAtOffset(t *testing.T) {
	data := append([]byte{0xAA, 0xBB}, headerBytes(0)...)
	header, err := DecodeHeader(data, 2)
	require.NoError(t, err)
	assert.Equal(t, ShowNormal, header.ShowCommand)
}

func TestDecodeHeaderHotKey(t *testing.T) {
	data := headerBytes(0)
	data[0x40] = 'K'
	data[0x41] = byte(HotKeyControl | HotKeyAlt)

	header, err := DecodeHeader(data, 0)
	require.NoError(t, err)
	require.NotNil(t, header.HotKey)
	assert.Equal(t, VirtualKey('K'), header.HotKey.Key)
	assert.Equal(t, "CONTROL+ALT+K", header.HotKey.String())
}

func TestDecodeHeaderErrors(t *testing.T) {
	t.Run("short buffer", func(t *testing.T) {
		_, err := DecodeHeader(headerBytes(0)[:HeaderSize-1], 0)
		var rangeErr *RangeError
		require.ErrorAs(t, err, &rangeErr)
		assert.Equal(t, HeaderSize, rangeErr.Length)
	})

	t.Run("unknown show command", func(t *testing.T) {
		data := headerBytes(0)
		data[0x3C] = 2
		_, err := DecodeHeader(data, 0)
		var formatErr *FormatError
		require.ErrorAs(t, err, &formatErr)
		assert.Equal(t, 0x3C, formatErr.Offset)
	})

	t.Run("header size", func(t *testing.T) {
		data := headerBytes(0)
		data[0] = 0x50

		_, err := DecodeHeader(data, 0)
		var formatErr *FormatError
		require.ErrorAs(t, err, &formatErr)

		header, err := DecodeHeader(data, 0, WithStrict(false))
		require.NoError(t, err)
		assert.Equal(t, uint32(0x50), header.HeaderSize)
	})

	t.Run("clsid", func(t *testing.T) {
		data := headerBytes(0)
		data[4] ^= 0xFF

		_, err := DecodeHeader(data, 0)
		var formatErr *FormatError
		require.ErrorAs(t, err, &formatErr)
		assert.Equal(t, 4, formatErr.Offset)

		_, err = DecodeHeader(data, 0, WithStrict(false))
		require.NoError(t, err)
	})
}

func TestDecodeHeaderArbitraryBytes(t *testing.T) {
	random := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		data := make([]byte, HeaderSize)
		random.Read(data)
		if i%2 == 0 {
			// valid show command so more runs reach the end of the header
			data[0x3C], data[0x3D], data[0x3E], data[0x3F] = 7, 0, 0, 0
		}
		require.NotPanics(t, func() {
			header, err := DecodeHeader(data, 0, WithStrict(false))
			if err == nil {
				assert.NotNil(t, header)
			} else {
				assert.Nil(t, header)
			}
		})
	}
}

func TestShowCommandString(t *testing.T) {
	for command, expected := range map[ShowCommand]string{
		ShowNormal:      "SW_SHOWNORMAL",
		ShowMaximized:   "SW_SHOWMAXIMIZED",
		ShowMinNoActive: "SW_SHOWMINNOACTIVE",
		ShowCommand(9):  "0x00000009",
	} {
		assert.Equal(t, expected, command.String())
	}
}

func TestFlagNames(t *testing.T) {
	flags := HasLinkTargetIDList | IsUnicode | LinkFlags(1<<30)
	assert.Equal(t, "HasLinkTargetIDList|IsUnicode|0x40000000", flags.String())

	attributes := FileAttributeHidden | FileAttributeDirectory
	data, err := attributes.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `["FILE_ATTRIBUTE_HIDDEN","FILE_ATTRIBUTE_DIRECTORY"]`, string(data))
}
