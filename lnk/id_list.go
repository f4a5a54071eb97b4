package lnk

import (
	"bytes"

	"github.com/andrewstucki/lnkparse/internal"
)

var terminalID = []byte{0x00, 0x00}

// LinkTargetIDList is the shell namespace path of the link target.
type LinkTargetIDList struct {
	// IDListSize covers the items and the terminal ID, not the size field.
	IDListSize uint16     `json:"idListSize"`
	Items      ShellItems `json:"items"`
}

// Path is the displayable path reconstructed from the items.
func (l *LinkTargetIDList) Path() (string, bool) {
	return l.Items.Path()
}

// DecodeLinkTargetIDList decodes the list whose size field is at offset. It
// returns the number of bytes consumed, size field included.
func DecodeLinkTargetIDList(data []byte, offset int, opts ...Option) (*LinkTargetIDList, int, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, 0, wrap(err)
	}
	list, consumed, err := decodeLinkTargetIDList(data, offset, o)
	return list, consumed, wrap(err)
}

func decodeLinkTargetIDList(data []byte, offset int, o *options) (*LinkTargetIDList, int, error) {
	size, err := internal.Uint16(data, offset)
	if err != nil {
		return nil, 0, err
	}
	if int(size) < len(terminalID) {
		return nil, 0, formatError(offset, "id list size %d cannot hold the terminal ID", size)
	}

	start := offset + 2
	records, terminalOffset, err := splitShellItems(data, start, start+int(size))
	if err != nil {
		return nil, 0, err
	}

	observed, err := internal.Slice(data, terminalOffset, len(terminalID))
	if err != nil {
		return nil, 0, err
	}
	if !bytes.Equal(observed, terminalID) {
		return nil, 0, &MissingTerminalIDError{
			Offset:   terminalOffset,
			Observed: append([]byte(nil), observed...),
			Expected: append([]byte(nil), terminalID...),
		}
	}

	items, err := decodeShellItems(records, recordOffsets(records, start), o)
	if err != nil {
		return nil, 0, err
	}
	o.logger.Debug().Int("offset", offset).Int("items", len(items)).Msg("decoded link target id list")

	return &LinkTargetIDList{
		IDListSize: size,
		Items:      items,
	}, 2 + int(size), nil
}
