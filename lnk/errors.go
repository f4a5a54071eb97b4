package lnk

import (
	"fmt"

	"github.com/go-errors/errors"

	"github.com/andrewstucki/lnkparse/internal"
)

// RangeError is returned when a structure points outside of the buffer.
type RangeError = internal.RangeError

// MalformedStringError is returned when string bytes do not decode under
// the encoding selected for them.
type MalformedStringError = internal.DecodeError

// ClassTypeRange is an inclusive range of shell item class type indicators.
type ClassTypeRange struct {
	Low  byte
	High byte
}

// Contains reports whether indicator falls inside the range.
func (r ClassTypeRange) Contains(indicator byte) bool {
	return indicator >= r.Low && indicator <= r.High
}

func (r ClassTypeRange) String() string {
	if r.Low == r.High {
		return fmt.Sprintf("{0x%02x}", r.Low)
	}
	return fmt.Sprintf("{0x%02x..0x%02x}", r.Low, r.High)
}

// ClassTypeMismatchError is returned when a shell item decoder is handed a
// record whose class type indicator it does not accept.
type ClassTypeMismatchError struct {
	Observed byte
	Expected ClassTypeRange
}

func (e *ClassTypeMismatchError) Error() string {
	return fmt.Sprintf("class type indicator mismatch: expected any of %s, observed 0x%02x", e.Expected, e.Observed)
}

// MissingTerminalIDError is returned when a target ID list does not end with
// the 2-byte terminal ID.
type MissingTerminalIDError struct {
	Offset   int
	Observed []byte
	Expected []byte
}

func (e *MissingTerminalIDError) Error() string {
	return fmt.Sprintf("missing terminal ID at offset %d: expected %x, observed %x", e.Offset, e.Expected, e.Observed)
}

// BlockSizeMismatchError is returned in strict mode when a known extra data
// block declares a size other than its fixed one.
type BlockSizeMismatchError struct {
	Block    string
	Observed uint32
	Expected uint32
}

func (e *BlockSizeMismatchError) Error() string {
	return fmt.Sprintf("%s: block size mismatch: expected 0x%08x, observed 0x%08x", e.Block, e.Expected, e.Observed)
}

// SignatureMismatchError is returned when an extra data block decoder is
// handed a block carrying another signature.
type SignatureMismatchError struct {
	Block    string
	Observed uint32
	Expected uint32
}

func (e *SignatureMismatchError) Error() string {
	return fmt.Sprintf("%s: signature mismatch: expected 0x%08x, observed 0x%08x", e.Block, e.Expected, e.Observed)
}

// TrackerLengthMismatchError is returned in strict mode when the inner
// length of a tracker block is not 0x58.
type TrackerLengthMismatchError struct {
	Observed uint32
	Expected uint32
}

func (e *TrackerLengthMismatchError) Error() string {
	return fmt.Sprintf("tracker data block length mismatch: expected 0x%08x, observed 0x%08x", e.Expected, e.Observed)
}

// TrackerVersionMismatchError is returned in strict mode when the version of
// a tracker block is not 0.
type TrackerVersionMismatchError struct {
	Observed uint32
	Expected uint32
}

func (e *TrackerVersionMismatchError) Error() string {
	return fmt.Sprintf("tracker data block version mismatch: expected 0x%08x, observed 0x%08x", e.Expected, e.Observed)
}

// NotImplementedError marks a structure variant that exists in the format
// but is not decoded. It is not a sign of malformed input.
type NotImplementedError struct {
	Structure string
	Offset    int
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("%s at offset %d is not implemented", e.Structure, e.Offset)
}

// FormatError reports input that violates the layout of the format.
type FormatError struct {
	Offset int
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid shell link at offset %d: %s", e.Offset, e.Reason)
}

func formatError(offset int, format string, args ...interface{}) error {
	return &FormatError{Offset: offset, Reason: fmt.Sprintf(format, args...)}
}

// rebase moves the offsets of errors raised while decoding a sub-slice so
// they point into the enclosing buffer.
func rebase(err error, base int) error {
	if err == nil {
		return nil
	}
	switch e := err.(type) {
	case *FormatError:
		return &FormatError{Offset: e.Offset + base, Reason: e.Reason}
	case *NotImplementedError:
		return &NotImplementedError{Structure: e.Structure, Offset: e.Offset + base}
	case *MissingTerminalIDError:
		return &MissingTerminalIDError{Offset: e.Offset + base, Observed: e.Observed, Expected: e.Expected}
	}
	return internal.Rebase(err, base)
}

// wrap attaches a stack trace for callers of the exported decoders.
func wrap(err error) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, 2)
}
