package lnk

import (
	"encoding/json"
	"strings"

	"github.com/andrewstucki/lnkparse/internal"
)

// ShellItem is one step of a shell namespace path. It is one of
// *VolumeShellItem, *RootFolderShellItem, *FileEntryShellItem or
// *UnknownShellItem.
type ShellItem interface {
	ClassTypeIndicator() byte
	kind() string
}

// Accepted class type indicators per shell item variant.
var (
	RootFolderClassTypes = ClassTypeRange{Low: 0x1F, High: 0x1F}
	VolumeClassTypes     = ClassTypeRange{Low: 0x20, High: 0x2F}
	FileEntryClassTypes  = ClassTypeRange{Low: 0x30, High: 0x3F}
)

type shellItemDecoder struct {
	name    string
	accepts ClassTypeRange
	decode  func(record []byte, o *options) (ShellItem, error)
}

var (
	rootFolderDecoder = &shellItemDecoder{
		name:    "RootFolderShellItem",
		accepts: RootFolderClassTypes,
		decode: func(record []byte, o *options) (ShellItem, error) {
			return decodeRootFolderShellItem(record, o)
		},
	}
	volumeDecoder = &shellItemDecoder{
		name:    "VolumeShellItem",
		accepts: VolumeClassTypes,
		decode: func(record []byte, o *options) (ShellItem, error) {
			return decodeVolumeShellItem(record, o)
		},
	}
	fileEntryDecoder = &shellItemDecoder{
		name:    "FileEntryShellItem",
		accepts: FileEntryClassTypes,
		decode: func(record []byte, o *options) (ShellItem, error) {
			return decodeFileEntryShellItem(record, o)
		},
	}

	// class type indicator -> decoder, filled once at startup
	shellItemDecoders = newShellItemRegistry(rootFolderDecoder, volumeDecoder, fileEntryDecoder)
)

func newShellItemRegistry(decoders ...*shellItemDecoder) map[byte]*shellItemDecoder {
	registry := make(map[byte]*shellItemDecoder)
	for _, decoder := range decoders {
		for indicator := int(decoder.accepts.Low); indicator <= int(decoder.accepts.High); indicator++ {
			registry[byte(indicator)] = decoder
		}
	}
	return registry
}

// run checks, in strict mode, that the record carries an indicator the
// decoder accepts before decoding it.
func (d *shellItemDecoder) run(record []byte, o *options) (ShellItem, error) {
	indicator, err := internal.Uint8(record, 2)
	if err != nil {
		return nil, err
	}
	if o.strict && !d.accepts.Contains(indicator) {
		return nil, &ClassTypeMismatchError{Observed: indicator, Expected: d.accepts}
	}
	return d.decode(record, o)
}

// UnknownShellItem keeps the raw record of a shell item whose class type
// indicator has no decoder.
type UnknownShellItem struct {
	Indicator byte   `json:"classTypeIndicator"`
	Data      []byte `json:"data"`
}

// ClassTypeIndicator returns the indicator byte of the record.
func (i *UnknownShellItem) ClassTypeIndicator() byte { return i.Indicator }

func (i *UnknownShellItem) kind() string { return "UnknownShellItem" }

// DecodeShellItem decodes one raw shell item record, size field included.
func DecodeShellItem(record []byte, opts ...Option) (ShellItem, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, wrap(err)
	}
	item, err := decodeShellItem(record, o)
	return item, wrap(err)
}

// DecodeVolumeShellItem decodes a record known to hold a volume item.
func DecodeVolumeShellItem(record []byte, opts ...Option) (*VolumeShellItem, error) {
	item, err := decodeTyped(volumeDecoder, record, opts)
	if err != nil {
		return nil, err
	}
	return item.(*VolumeShellItem), nil
}

// DecodeRootFolderShellItem decodes a record known to hold a root folder item.
func DecodeRootFolderShellItem(record []byte, opts ...Option) (*RootFolderShellItem, error) {
	item, err := decodeTyped(rootFolderDecoder, record, opts)
	if err != nil {
		return nil, err
	}
	return item.(*RootFolderShellItem), nil
}

// DecodeFileEntryShellItem decodes a record known to hold a file entry item.
func DecodeFileEntryShellItem(record []byte, opts ...Option) (*FileEntryShellItem, error) {
	item, err := decodeTyped(fileEntryDecoder, record, opts)
	if err != nil {
		return nil, err
	}
	return item.(*FileEntryShellItem), nil
}

func decodeTyped(decoder *shellItemDecoder, record []byte, opts []Option) (ShellItem, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, wrap(err)
	}
	item, err := decoder.run(record, o)
	if err != nil {
		return nil, wrap(err)
	}
	return item, nil
}

func decodeShellItem(record []byte, o *options) (ShellItem, error) {
	if len(record) < 3 {
		return nil, formatError(0, "shell item of %d bytes has no class type indicator", len(record))
	}
	indicator := record[2]
	decoder, ok := shellItemDecoders[indicator]
	if !ok {
		o.logger.Debug().Uint8("classTypeIndicator", indicator).Int("size", len(record)).Msg("keeping unknown shell item as raw bytes")
		data := make([]byte, len(record))
		copy(data, record)
		return &UnknownShellItem{Indicator: indicator, Data: data}, nil
	}
	return decoder.run(record, o)
}

// splitShellItems cuts the item records starting at offset until only the
// terminal ID fits before end or, when end is negative, until a zero item
// size. It returns the records and the offset right after the last one.
func splitShellItems(data []byte, offset, end int) ([][]byte, int, error) {
	records := [][]byte{}
	for {
		if end >= 0 && end-offset <= len(terminalID) {
			if end-offset != len(terminalID) {
				return nil, 0, formatError(offset, "%d bytes left for the terminal ID", end-offset)
			}
			return records, offset, nil
		}
		size, err := internal.Uint16(data, offset)
		if err != nil {
			return nil, 0, err
		}
		if size == 0 {
			if end < 0 {
				return records, offset, nil
			}
			return nil, 0, formatError(offset, "zero sized shell item inside the item list")
		}
		if size < 2 {
			return nil, 0, formatError(offset, "shell item size %d is smaller than its size field", size)
		}
		if end >= 0 && offset+int(size) > end {
			return nil, 0, formatError(offset, "shell item of %d bytes overruns the item list", size)
		}
		record, err := internal.Slice(data, offset, int(size))
		if err != nil {
			return nil, 0, err
		}
		records = append(records, record)
		offset += int(size)
	}
}

func decodeShellItems(records [][]byte, offsets []int, o *options) ([]ShellItem, error) {
	items := make([]ShellItem, 0, len(records))
	for i, record := range records {
		item, err := decodeShellItem(record, o)
		if err != nil {
			return nil, rebase(err, offsets[i])
		}
		items = append(items, item)
	}
	return items, nil
}

func recordOffsets(records [][]byte, start int) []int {
	offsets := make([]int, len(records))
	for i, record := range records {
		offsets[i] = start
		start += len(record)
	}
	return offsets
}

// ShellItems is an ordered shell item list. Order matters: it is the path
// from the namespace root to the target.
type ShellItems []ShellItem

type taggedShellItem struct {
	Type string    `json:"type"`
	Item ShellItem `json:"item"`
}

// MarshalJSON tags each item with its variant name.
func (items ShellItems) MarshalJSON() ([]byte, error) {
	tagged := make([]taggedShellItem, len(items))
	for i, item := range items {
		tagged[i] = taggedShellItem{Type: item.kind(), Item: item}
	}
	return json.Marshal(tagged)
}

// Path joins the path segments contributed by the items: the name of named
// volumes and the primary name of file entries. It reports false when no
// item contributes a segment.
func (items ShellItems) Path() (string, bool) {
	segments := []string{}
	for _, item := range items {
		switch typed := item.(type) {
		case *VolumeShellItem:
			if typed.Name != nil {
				segments = append(segments, *typed.Name)
			}
		case *FileEntryShellItem:
			segments = append(segments, typed.PrimaryName)
		}
	}
	if len(segments) == 0 {
		return "", false
	}
	return joinWindowsPath(segments), true
}

func joinWindowsPath(segments []string) string {
	var path strings.Builder
	for i, segment := range segments {
		segment = strings.Replace(segment, "/", `\`, -1)
		if i > 0 {
			current := path.String()
			isDrive := len(current) == 2 && current[1] == ':'
			if !strings.HasSuffix(current, `\`) && !isDrive && !strings.HasPrefix(segment, `\`) {
				path.WriteByte('\\')
			}
		}
		path.WriteString(segment)
	}
	return path.String()
}
