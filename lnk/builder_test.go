package lnk

import (
	"bytes"
	"encoding/binary"
	"unicode/utf16"
)

// builder assembles little-endian test inputs.
type builder struct {
	buf bytes.Buffer
}

func newBuilder() *builder { return &builder{} }

func (b *builder) u8(v uint8) *builder {
	b.buf.WriteByte(v)
	return b
}

func (b *builder) u16(v uint16) *builder {
	_ = binary.Write(&b.buf, binary.LittleEndian, v)
	return b
}

func (b *builder) u32(v uint32) *builder {
	_ = binary.Write(&b.buf, binary.LittleEndian, v)
	return b
}

func (b *builder) u64(v uint64) *builder {
	_ = binary.Write(&b.buf, binary.LittleEndian, v)
	return b
}

func (b *builder) raw(p []byte) *builder {
	b.buf.Write(p)
	return b
}

func (b *builder) zeros(n int) *builder {
	b.buf.Write(make([]byte, n))
	return b
}

// cstring writes s followed by a NUL.
func (b *builder) cstring(s string) *builder {
	b.buf.WriteString(s)
	b.buf.WriteByte(0)
	return b
}

// wstring writes s as UTF-16LE followed by a 2-byte NUL.
func (b *builder) wstring(s string) *builder {
	for _, unit := range utf16.Encode([]rune(s)) {
		b.u16(unit)
	}
	return b.u16(0)
}

// fixed pads the output with NULs up to n bytes.
func (b *builder) fixed(n int) *builder {
	if pad := n - b.buf.Len(); pad > 0 {
		b.zeros(pad)
	}
	return b
}

func (b *builder) len() int { return b.buf.Len() }

func (b *builder) build() []byte {
	return append([]byte(nil), b.buf.Bytes()...)
}

func utf16Bytes(s string) []byte {
	return newBuilder().wstring(s).build()
}

// shellItem prefixes body with its 2-byte item size.
func shellItem(body []byte) []byte {
	return newBuilder().u16(uint16(len(body) + 2)).raw(body).build()
}

// idList wraps items in a list size field and the terminal ID.
func idList(items ...[]byte) []byte {
	body := newBuilder()
	for _, item := range items {
		body.raw(item)
	}
	body.u16(0)
	return newBuilder().u16(uint16(body.len())).raw(body.build()).build()
}

// extraBlock prefixes body with the block size and signature.
func extraBlock(signature uint32, body []byte) []byte {
	return newBuilder().u32(uint32(len(body) + 8)).u32(signature).raw(body).build()
}

const (
	filetime2020 = 132223104000000000 // 2020-01-01T00:00:00Z
	dosDate      = 21092              // 2021-03-04
	dosTime      = 21135              // 10:20:30
)

func headerBytes(flags LinkFlags) []byte {
	return newBuilder().
		u32(HeaderSize).
		raw(LinkCLSID[:]).
		u32(uint32(flags)).
		u32(uint32(FileAttributeArchive)).
		u64(filetime2020).
		u64(0).
		u64(filetime2020).
		u32(1234).
		u32(0).
		u32(uint32(ShowNormal)).
		u16(0).
		zeros(10).
		build()
}

func volumeItem(name string) []byte {
	return shellItem(newBuilder().u8(0x2F).cstring(name).fixed(0x17).build())
}

func fileEntryItem(indicator byte, name string, extension []byte) []byte {
	body := newBuilder().
		u8(indicator).
		u8(0).
		u32(42).
		u16(dosDate).
		u16(dosTime).
		u16(uint16(FileAttributeArchive))
	if FileEntryShellItemFlags(indicator&0x0F).Has(FileEntryHasUnicodeStrings) {
		body.wstring(name)
	} else {
		body.cstring(name)
	}
	// the record starts with the 2 size bytes
	if (body.len()+2)%2 != 0 {
		body.u8(0)
	}
	body.raw(extension)
	return shellItem(body.build())
}

func rootFolderItem(folder GUID) []byte {
	return shellItem(newBuilder().u8(0x1F).u8(0x50).raw(folder[:]).build())
}
