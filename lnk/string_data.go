package lnk

import (
	"github.com/andrewstucki/lnkparse/internal"
)

// StringData holds the optional display strings following the link info. A
// nil field was absent from the file, which is distinct from an empty one.
type StringData struct {
	Name         *string `json:"name,omitempty"`
	RelativePath *string `json:"relativePath,omitempty"`
	WorkingDir   *string `json:"workingDir,omitempty"`
	Arguments    *string `json:"arguments,omitempty"`
	IconLocation *string `json:"iconLocation,omitempty"`
}

// DecodeStringData decodes the string data fields selected by flags,
// starting at offset. It returns the number of bytes consumed.
func DecodeStringData(data []byte, offset int, flags LinkFlags, opts ...Option) (*StringData, int, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, 0, wrap(err)
	}
	strings, consumed, err := decodeStringData(data, offset, flags, o)
	return strings, consumed, wrap(err)
}

func decodeStringData(data []byte, offset int, flags LinkFlags, o *options) (*StringData, int, error) {
	strings := &StringData{}
	// fixed on-disk order
	fields := []struct {
		flag   LinkFlags
		target **string
	}{
		{HasName, &strings.Name},
		{HasRelativePath, &strings.RelativePath},
		{HasWorkingDir, &strings.WorkingDir},
		{HasArguments, &strings.Arguments},
		{HasIconLocation, &strings.IconLocation},
	}

	unicode := flags.Has(IsUnicode)
	start := offset
	for _, field := range fields {
		if !flags.Has(field.flag) {
			continue
		}
		value, n, err := internal.ReadCountedString(data, offset, unicode, o.encoding)
		if err != nil {
			return nil, 0, err
		}
		*field.target = &value
		offset += n
	}
	return strings, offset - start, nil
}
