package lnk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func volumeIDBytes(label string) []byte {
	return newBuilder().
		u32(uint32(16 + len(label) + 1)).
		u32(uint32(DriveFixed)).
		u32(0x1234ABCD).
		u32(0x10).
		cstring(label).
		build()
}

func unicodeVolumeIDBytes(label string) []byte {
	encoded := utf16Bytes(label)
	return newBuilder().
		u32(uint32(20 + len(encoded))).
		u32(uint32(DriveRemovable)).
		u32(1).
		u32(unicodeVolumeLabelOffset).
		u32(20).
		raw(encoded).
		build()
}

// localLinkInfo lays out a legacy link info: header, volume ID, base path
// and suffix.
func localLinkInfo(volume []byte, basePath, suffix string) []byte {
	const headerSize = 0x1C
	volumeOffset := headerSize
	basePathOffset := volumeOffset + len(volume)
	suffixOffset := basePathOffset + len(basePath) + 1
	size := suffixOffset + len(suffix) + 1
	return newBuilder().
		u32(uint32(size)).
		u32(headerSize).
		u32(uint32(VolumeIDAndLocalBasePath)).
		u32(uint32(volumeOffset)).
		u32(uint32(basePathOffset)).
		u32(0).
		u32(uint32(suffixOffset)).
		raw(volume).
		cstring(basePath).
		cstring(suffix).
		build()
}

func TestDecodeLinkInfoLocal(t *testing.T) {
	data := localLinkInfo(volumeIDBytes("DATA"), `C:\Windows\`, "notepad.exe")
	data = append(data, 0xFF, 0xFF)

	info, consumed, err := DecodeLinkInfo(data, 0, utf8Options()...)
	require.NoError(t, err)
	assert.Equal(t, len(data)-2, consumed)
	assert.Equal(t, uint32(consumed), info.Size)

	require.NotNil(t, info.VolumeID)
	assert.Equal(t, DriveFixed, info.VolumeID.DriveType)
	assert.Equal(t, "DRIVE_FIXED", info.VolumeID.DriveType.String())
	assert.Equal(t, uint32(0x1234ABCD), info.VolumeID.DriveSerialNumber)
	assert.Equal(t, "DATA", info.VolumeID.VolumeLabel)
	assert.False(t, info.VolumeID.IsUnicode)

	require.NotNil(t, info.LocalBasePath)
	assert.Equal(t, `C:\Windows\`, *info.LocalBasePath)
	require.NotNil(t, info.CommonPathSuffix)
	assert.Equal(t, "notepad.exe", *info.CommonPathSuffix)
	assert.Nil(t, info.CommonNetworkRelativeLink)
	assert.Nil(t, info.LocalBasePathUnicode)

	path, ok := info.Path()
	require.True(t, ok)
	assert.Equal(t, `C:\Windows\notepad.exe`, path)
}

func TestDecodeLinkInfoUnicodeVolumeLabel(t *testing.T) {
	data := localLinkInfo(unicodeVolumeIDBytes("Stick ✓"), `E:\`, "")
	info, _, err := DecodeLinkInfo(data, 0, utf8Options()...)
	require.NoError(t, err)
	require.NotNil(t, info.VolumeID)
	assert.True(t, info.VolumeID.IsUnicode)
	assert.Equal(t, "Stick ✓", info.VolumeID.VolumeLabel)
	assert.Equal(t, DriveRemovable, info.VolumeID.DriveType)
}

func TestDecodeLinkInfoCodepage(t *testing.T) {
	// "Café\" in windows-1252
	data := localLinkInfo(volumeIDBytes(""), "C:\\Caf\xe9\\", "")

	info, _, err := DecodeLinkInfo(data, 0, WithSystemDefaultEncoding("cp1252"))
	require.NoError(t, err)
	assert.Equal(t, `C:\Café\`, *info.LocalBasePath)

	_, _, err = DecodeLinkInfo(data, 0, WithSystemDefaultEncoding("utf-8"))
	var malformed *MalformedStringError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "utf-8", malformed.Encoding)
}

func TestDecodeLinkInfoExtendedHeader(t *testing.T) {
	const headerSize = 0x24
	volume := volumeIDBytes("SYS")
	volumeOffset := headerSize
	basePathOffset := volumeOffset + len(volume)
	suffixOffset := basePathOffset + len(`C:\Users\`) + 1
	unicodeBasePathOffset := suffixOffset + 1
	unicodeBasePath := utf16Bytes(`C:\Users\Zoë\`)
	unicodeSuffixOffset := unicodeBasePathOffset + len(unicodeBasePath)
	unicodeSuffix := utf16Bytes("")
	size := unicodeSuffixOffset + len(unicodeSuffix)

	data := newBuilder().
		u32(uint32(size)).
		u32(headerSize).
		u32(uint32(VolumeIDAndLocalBasePath)).
		u32(uint32(volumeOffset)).
		u32(uint32(basePathOffset)).
		u32(0).
		u32(uint32(suffixOffset)).
		u32(uint32(unicodeBasePathOffset)).
		u32(uint32(unicodeSuffixOffset)).
		raw(volume).
		cstring(`C:\Users\`).
		cstring("").
		raw(unicodeBasePath).
		raw(unicodeSuffix).
		build()

	info, consumed, err := DecodeLinkInfo(data, 0, utf8Options()...)
	require.NoError(t, err)
	assert.Equal(t, size, consumed)
	assert.Equal(t, `C:\Users\`, *info.LocalBasePath)
	require.NotNil(t, info.LocalBasePathUnicode)
	assert.Equal(t, `C:\Users\Zoë\`, *info.LocalBasePathUnicode)
	require.NotNil(t, info.CommonPathSuffixUnicode)

	path, ok := info.Path()
	require.True(t, ok)
	assert.Equal(t, `C:\Users\Zoë\`, path)
}

func networkLinkInfo(networkLink []byte) []byte {
	const headerSize = 0x1C
	return newBuilder().
		u32(uint32(headerSize + len(networkLink))).
		u32(headerSize).
		u32(uint32(CommonNetworkRelativeLinkAndPathSuffix)).
		u32(0).
		u32(0).
		u32(headerSize).
		u32(0).
		raw(networkLink).
		build()
}

func TestDecodeLinkInfoNetwork(t *testing.T) {
	netName := `\\fileserver\public`
	device := "Z:"
	networkLink := newBuilder().
		u32(uint32(0x14 + len(netName) + 1 + len(device) + 1)).
		u32(uint32(ValidDevice | ValidNetType)).
		u32(0x14).
		u32(uint32(0x14 + len(netName) + 1)).
		u32(0x00020000).
		cstring(netName).
		cstring(device).
		build()

	info, _, err := DecodeLinkInfo(networkLinkInfo(networkLink), 0, utf8Options()...)
	require.NoError(t, err)
	assert.Nil(t, info.VolumeID)
	assert.Nil(t, info.LocalBasePath)
	// no local base path offset, so no suffix either
	assert.Nil(t, info.CommonPathSuffix)

	link := info.CommonNetworkRelativeLink
	require.NotNil(t, link)
	assert.Equal(t, netName, link.NetName)
	require.NotNil(t, link.DeviceName)
	assert.Equal(t, device, *link.DeviceName)
	require.NotNil(t, link.NetworkProviderType)
	assert.Equal(t, "WNNC_NET_LANMAN", link.NetworkProviderType.String())

	path, ok := info.Path()
	require.True(t, ok)
	assert.Equal(t, netName, path)
}

func TestDecodeLinkInfoSuffixWithUnicodeBasePathOnly(t *testing.T) {
	const headerSize = 0x24
	netName := `\\fileserver\public`
	networkLink := newBuilder().
		u32(uint32(0x14 + len(netName) + 1)).
		u32(0).
		u32(0x14).
		u32(0).
		u32(0).
		cstring(netName).
		build()
	suffixOffset := headerSize + len(networkLink)
	basePathUnicodeOffset := suffixOffset + len("report.docx") + 1
	suffixUnicodeOffset := basePathUnicodeOffset + 2*len(`\\fileserver\`) + 2
	body := newBuilder().
		raw(networkLink).
		cstring("report.docx").
		wstring(`\\fileserver\`).
		wstring("report.docx").
		build()
	data := newBuilder().
		u32(uint32(headerSize + len(body))).
		u32(headerSize).
		u32(uint32(CommonNetworkRelativeLinkAndPathSuffix)).
		u32(0).
		u32(0).
		u32(headerSize).
		u32(uint32(suffixOffset)).
		u32(uint32(basePathUnicodeOffset)).
		u32(uint32(suffixUnicodeOffset)).
		raw(body).
		build()

	info, consumed, err := DecodeLinkInfo(data, 0, utf8Options()...)
	require.NoError(t, err)
	assert.Equal(t, len(data), consumed)
	assert.Nil(t, info.LocalBasePath)
	require.NotNil(t, info.CommonPathSuffix)
	assert.Equal(t, "report.docx", *info.CommonPathSuffix)
	require.NotNil(t, info.CommonPathSuffixUnicode)
	assert.Equal(t, "report.docx", *info.CommonPathSuffixUnicode)
	require.NotNil(t, info.CommonNetworkRelativeLink)
	assert.Equal(t, netName, info.CommonNetworkRelativeLink.NetName)
}

func TestDecodeLinkInfoNetworkUnicodeNotImplemented(t *testing.T) {
	networkLink := newBuilder().
		u32(0x20).
		u32(0).
		u32(0x1C).
		u32(0).
		u32(0).
		u32(0x1C).
		u32(0).
		u32(0).
		build()
	data := networkLinkInfo(networkLink)

	_, _, err := DecodeLinkInfo(data, 0)
	var notImplemented *NotImplementedError
	require.ErrorAs(t, err, &notImplemented)
	assert.Equal(t, 0x1C, notImplemented.Offset)
}

func TestDecodeLinkInfoErrors(t *testing.T) {
	t.Run("size below header", func(t *testing.T) {
		_, _, err := DecodeLinkInfo(newBuilder().u32(8).u32(0x1C).build(), 0)
		var formatErr *FormatError
		require.ErrorAs(t, err, &formatErr)
	})

	t.Run("size beyond buffer", func(t *testing.T) {
		data := localLinkInfo(volumeIDBytes("A"), `C:\`, "")
		_, _, err := DecodeLinkInfo(data[:len(data)-1], 0)
		var rangeErr *RangeError
		require.ErrorAs(t, err, &rangeErr)
	})

	t.Run("volume offset beyond record", func(t *testing.T) {
		data := localLinkInfo(volumeIDBytes("A"), `C:\`, "")
		data[12] = 0xF0
		_, _, err := DecodeLinkInfo(append([]byte{0, 0, 0, 0}, data...), 4, utf8Options()...)
		var rangeErr *RangeError
		require.ErrorAs(t, err, &rangeErr)
		assert.Equal(t, 4+0xF0, rangeErr.Offset)
	})
}
