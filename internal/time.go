package internal

import "time"

// 100ns intervals between 1601-01-01 and 1970-01-01
const filetimeEpochDelta = 116444736000000000

// Filetime converts a FILETIME to a UTC time. A zero FILETIME means the value
// was never set and maps to nil.
func Filetime(value uint64) *time.Time {
	if value == 0 {
		return nil
	}
	intervals := int64(value - filetimeEpochDelta)
	if value < filetimeEpochDelta {
		intervals = -int64(filetimeEpochDelta - value)
	}
	t := time.Unix(intervals/10000000, (intervals%10000000)*100).UTC()
	return &t
}

// ReadFiletime reads an 8-byte FILETIME at offset.
func ReadFiletime(data []byte, offset int) (*time.Time, error) {
	value, err := Uint64(data, offset)
	if err != nil {
		return nil, err
	}
	return Filetime(value), nil
}

// DOSDateTime combines a FAT date and time. A zero date maps to nil.
func DOSDateTime(date, clock uint16) *time.Time {
	if date == 0 {
		return nil
	}
	t := time.Date(
		int(date>>9)+1980,
		time.Month((date>>5)&0x0f),
		int(date&0x1f),
		int(clock>>11),
		int((clock>>5)&0x3f),
		int(clock&0x1f)*2,
		0,
		time.UTC,
	)
	return &t
}

// ReadDOSDateTime reads a 2-byte FAT date followed by a 2-byte FAT time.
func ReadDOSDateTime(data []byte, offset int) (*time.Time, error) {
	date, err := Uint16(data, offset)
	if err != nil {
		return nil, err
	}
	clock, err := Uint16(data, offset+2)
	if err != nil {
		return nil, err
	}
	return DOSDateTime(date, clock), nil
}
