package lnk

import (
	"github.com/andrewstucki/lnkparse/internal"
)

// SpecialFolderSignature identifies a SpecialFolderDataBlock.
const SpecialFolderSignature = 0xA0000005

const specialFolderBlockSize = 0x00000010

// SpecialFolderDataBlock locates the target relative to a CSIDL special
// folder.
type SpecialFolderDataBlock struct {
	ExtraDataHeader
	SpecialFolderID uint32 `json:"specialFolderId"`
	// Offset of the first item of the target ID list inside the folder.
	Offset uint32 `json:"offset"`
}

func (b *SpecialFolderDataBlock) kind() string { return "SpecialFolderDataBlock" }

func parseExtraSpecialFolder(block []byte, o *options) (*SpecialFolderDataBlock, error) {
	id, err := internal.Uint32(block, 8)
	if err != nil {
		return nil, err
	}
	offset, err := internal.Uint32(block, 12)
	if err != nil {
		return nil, err
	}
	return &SpecialFolderDataBlock{
		ExtraDataHeader: readExtraDataHeader(block),
		SpecialFolderID: id,
		Offset:          offset,
	}, nil
}
