package internal

import "bytes"

// ReadString reads a NUL-terminated 8-bit string starting at offset. The end
// of data acts as a terminator. The returned size is the number of string
// bytes, not counting the terminator.
func ReadString(data []byte, offset int, enc *Encoding) (string, int, error) {
	if _, err := Slice(data, offset, 0); err != nil {
		return "", 0, err
	}
	raw := data[offset:]
	if end := bytes.IndexByte(raw, 0); end >= 0 {
		raw = raw[:end]
	}
	value, err := enc.Decode(raw, offset)
	if err != nil {
		return "", 0, err
	}
	return value, len(raw), nil
}

// ReadUnicode reads a NUL-terminated UTF-16LE string starting at offset. The
// terminator is searched on 2-byte boundaries; the end of data acts as a
// terminator. The returned size excludes the 2-byte terminator.
func ReadUnicode(data []byte, offset int) (string, int, error) {
	if _, err := Slice(data, offset, 0); err != nil {
		return "", 0, err
	}
	raw := data[offset:]
	end := len(raw) &^ 1
	for i := 0; i+1 < len(raw); i += 2 {
		if raw[i] == 0 && raw[i+1] == 0 {
			end = i
			break
		}
	}
	raw = raw[:end]
	value, err := UTF16LE.Decode(raw, offset)
	if err != nil {
		return "", 0, err
	}
	return value, len(raw), nil
}

// ReadCountedString reads a 2-byte character count followed by that many
// characters, each two bytes wide when unicode is set and one byte wide
// otherwise. The returned size includes the count field.
func ReadCountedString(data []byte, offset int, unicode bool, enc *Encoding) (string, int, error) {
	count, err := Uint16(data, offset)
	if err != nil {
		return "", 0, err
	}
	width := 1
	if unicode {
		width = 2
		enc = UTF16LE
	}
	raw, err := Slice(data, offset+2, int(count)*width)
	if err != nil {
		return "", 0, err
	}
	value, err := enc.Decode(raw, offset+2)
	if err != nil {
		return "", 0, err
	}
	return value, 2 + len(raw), nil
}
