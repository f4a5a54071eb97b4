package lnk

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/andrewstucki/lnkparse/internal"
)

// HeaderSize is the fixed size of the ShellLinkHeader.
const HeaderSize = 0x0000004C

// GUID is a Windows class or object identifier.
type GUID = internal.GUID

// LinkCLSID is the class identifier every shell link header carries.
var LinkCLSID = internal.MustParseGUID("00021401-0000-0000-C000-000000000046")

// ShowCommand is the window state the target is launched with.
type ShowCommand uint32

// Show commands.
const (
	ShowNormal      ShowCommand = 0x00000001
	ShowMaximized   ShowCommand = 0x00000003
	ShowMinNoActive ShowCommand = 0x00000007
)

func (c ShowCommand) valid() bool {
	switch c {
	case ShowNormal, ShowMaximized, ShowMinNoActive:
		return true
	}
	return false
}

func (c ShowCommand) String() string {
	switch c {
	case ShowNormal:
		return "SW_SHOWNORMAL"
	case ShowMaximized:
		return "SW_SHOWMAXIMIZED"
	case ShowMinNoActive:
		return "SW_SHOWMINNOACTIVE"
	}
	return fmt.Sprintf("0x%08x", uint32(c))
}

// MarshalText renders the show command by name.
func (c ShowCommand) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ShellLinkHeader is the fixed 76-byte record at the start of every shell
// link. Its LinkFlags decide which optional structures follow.
type ShellLinkHeader struct {
	HeaderSize     uint32         `json:"headerSize"`
	LinkCLSID      GUID           `json:"linkClsid"`
	LinkFlags      LinkFlags      `json:"linkFlags"`
	FileAttributes FileAttributes `json:"fileAttributes"`
	CreationTime   *time.Time     `json:"creationTime,omitempty"`
	AccessTime     *time.Time     `json:"accessTime,omitempty"`
	WriteTime      *time.Time     `json:"writeTime,omitempty"`
	FileSize       uint32         `json:"fileSize"`
	IconIndex      int32          `json:"iconIndex"`
	ShowCommand    ShowCommand    `json:"showCommand"`
	HotKey         *HotKey        `json:"hotKey,omitempty"`
}

// DecodeHeader decodes the ShellLinkHeader found at offset.
func DecodeHeader(data []byte, offset int, opts ...Option) (*ShellLinkHeader, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, wrap(err)
	}
	header, err := decodeHeader(data, offset, o)
	return header, wrap(err)
}

func decodeHeader(data []byte, offset int, o *options) (*ShellLinkHeader, error) {
	raw, err := internal.Slice(data, offset, HeaderSize)
	if err != nil {
		return nil, err
	}

	header := &ShellLinkHeader{
		HeaderSize:     binary.LittleEndian.Uint32(raw[0x00:0x04]),
		LinkFlags:      LinkFlags(binary.LittleEndian.Uint32(raw[0x14:0x18])),
		FileAttributes: FileAttributes(binary.LittleEndian.Uint32(raw[0x18:0x1C])),
		CreationTime:   internal.Filetime(binary.LittleEndian.Uint64(raw[0x1C:0x24])),
		AccessTime:     internal.Filetime(binary.LittleEndian.Uint64(raw[0x24:0x2C])),
		WriteTime:      internal.Filetime(binary.LittleEndian.Uint64(raw[0x2C:0x34])),
		FileSize:       binary.LittleEndian.Uint32(raw[0x34:0x38]),
		IconIndex:      int32(binary.LittleEndian.Uint32(raw[0x38:0x3C])),
		ShowCommand:    ShowCommand(binary.LittleEndian.Uint32(raw[0x3C:0x40])),
	}
	copy(header.LinkCLSID[:], raw[0x04:0x14])

	if o.strict {
		if header.HeaderSize != HeaderSize {
			return nil, formatError(offset, "header size 0x%08x, expected 0x%08x", header.HeaderSize, HeaderSize)
		}
		if header.LinkCLSID != LinkCLSID {
			return nil, formatError(offset+0x04, "link CLSID %s, expected %s", header.LinkCLSID, LinkCLSID)
		}
	}
	if !header.ShowCommand.valid() {
		return nil, formatError(offset+0x3C, "unknown show command 0x%08x", uint32(header.ShowCommand))
	}

	// a hot key is only set when its key byte is
	if raw[0x40] != 0 {
		header.HotKey = &HotKey{
			Key:       VirtualKey(raw[0x40]),
			Modifiers: HotKeyModifiers(raw[0x41]),
		}
	}
	return header, nil
}
