package lnk

import (
	"encoding/binary"

	"github.com/andrewstucki/lnkparse/internal"
)

// ConsoleSignature identifies a ConsoleDataBlock.
const ConsoleSignature = 0xA0000002

const consoleBlockSize = 0x000000CC

// Coordinates is a console cell position or extent.
type Coordinates struct {
	X int16 `json:"x"`
	Y int16 `json:"y"`
}

// ConsoleDataBlock holds the display settings of a console application
// target.
type ConsoleDataBlock struct {
	ExtraDataHeader
	FillAttributes         uint16      `json:"fillAttributes"`
	PopupFillAttributes    uint16      `json:"popupFillAttributes"`
	ScreenBufferSize       Coordinates `json:"screenBufferSize"`
	WindowSize             Coordinates `json:"windowSize"`
	WindowOrigin           Coordinates `json:"windowOrigin"`
	FontSize               uint32      `json:"fontSize"`
	FontFamily             uint32      `json:"fontFamily"`
	FontWeight             uint32      `json:"fontWeight"`
	FaceName               string      `json:"faceName"`
	CursorSize             uint32      `json:"cursorSize"`
	FullScreen             bool        `json:"fullScreen"`
	QuickEdit              bool        `json:"quickEdit"`
	InsertMode             bool        `json:"insertMode"`
	AutoPosition           bool        `json:"autoPosition"`
	HistoryBufferSize      uint32      `json:"historyBufferSize"`
	NumberOfHistoryBuffers uint32      `json:"numberOfHistoryBuffers"`
	HistoryNoDup           bool        `json:"historyNoDup"`
	ColorTable             [16]uint32  `json:"colorTable"`
}

func (b *ConsoleDataBlock) kind() string { return "ConsoleDataBlock" }

func parseExtraConsole(block []byte, o *options) (*ConsoleDataBlock, error) {
	raw, err := internal.Slice(block, 0, consoleBlockSize)
	if err != nil {
		return nil, err
	}
	u16 := func(offset int) uint16 { return binary.LittleEndian.Uint16(raw[offset : offset+2]) }
	u32 := func(offset int) uint32 { return binary.LittleEndian.Uint32(raw[offset : offset+4]) }
	coordinates := func(offset int) Coordinates {
		return Coordinates{X: int16(u16(offset)), Y: int16(u16(offset + 2))}
	}

	// 32 UTF-16 characters at 44
	faceName, _, err := internal.ReadUnicode(raw[44:108], 0)
	if err != nil {
		return nil, internal.Rebase(err, 44)
	}

	console := &ConsoleDataBlock{
		ExtraDataHeader:        readExtraDataHeader(raw),
		FillAttributes:         u16(8),
		PopupFillAttributes:    u16(10),
		ScreenBufferSize:       coordinates(12),
		WindowSize:             coordinates(16),
		WindowOrigin:           coordinates(20),
		FontSize:               u32(32),
		FontFamily:             u32(36),
		FontWeight:             u32(40),
		FaceName:               faceName,
		CursorSize:             u32(108),
		FullScreen:             u32(112) != 0,
		QuickEdit:              u32(116) != 0,
		InsertMode:             u32(120) != 0,
		AutoPosition:           u32(124) != 0,
		HistoryBufferSize:      u32(128),
		NumberOfHistoryBuffers: u32(132),
		HistoryNoDup:           u32(136) != 0,
	}
	for i := range console.ColorTable {
		console.ColorTable[i] = u32(140 + 4*i)
	}
	return console, nil
}
