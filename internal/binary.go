// Package internal holds the primitive readers shared by the shell link decoders.
package internal

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// RangeError is returned by every reader when the requested bytes fall outside
// of the buffer.
type RangeError struct {
	Offset int
	Length int
	Size   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("read of %d bytes at offset %d is out of range (buffer size %d)", e.Length, e.Offset, e.Size)
}

// Slice returns data[offset:offset+length] after bounds checking it.
func Slice(data []byte, offset, length int) ([]byte, error) {
	if offset < 0 || length < 0 || offset > len(data) || len(data)-offset < length {
		return nil, &RangeError{Offset: offset, Length: length, Size: len(data)}
	}
	return data[offset : offset+length], nil
}

// Uint8 reads a single byte at offset.
func Uint8(data []byte, offset int) (uint8, error) {
	b, err := Slice(data, offset, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Uint16 reads a little-endian uint16 at offset.
func Uint16(data []byte, offset int) (uint16, error) {
	b, err := Slice(data, offset, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// Uint32 reads a little-endian uint32 at offset.
func Uint32(data []byte, offset int) (uint32, error) {
	b, err := Slice(data, offset, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Int32 reads a little-endian int32 at offset.
func Int32(data []byte, offset int) (int32, error) {
	v, err := Uint32(data, offset)
	return int32(v), err
}

// Uint64 reads a little-endian uint64 at offset.
func Uint64(data []byte, offset int) (uint64, error) {
	b, err := Slice(data, offset, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// Rebase shifts the offset carried by reader errors by base, so that errors
// produced while reading a sub-slice point into the enclosing buffer.
func Rebase(err error, base int) error {
	if err == nil || base == 0 {
		return err
	}
	var rangeErr *RangeError
	if errors.As(err, &rangeErr) {
		shifted := *rangeErr
		shifted.Offset += base
		return &shifted
	}
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		shifted := *decodeErr
		shifted.Offset += base
		return &shifted
	}
	return err
}
