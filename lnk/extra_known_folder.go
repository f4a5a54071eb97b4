package lnk

import (
	"github.com/andrewstucki/lnkparse/internal"
)

// KnownFolderSignature identifies a KnownFolderDataBlock.
const KnownFolderSignature = 0xA000000B

const knownFolderBlockSize = 0x0000001C

// KnownFolderDataBlock locates the target relative to a known folder.
type KnownFolderDataBlock struct {
	ExtraDataHeader
	KnownFolderID GUID   `json:"knownFolderId"`
	Offset        uint32 `json:"offset"`
}

func (b *KnownFolderDataBlock) kind() string { return "KnownFolderDataBlock" }

func parseExtraKnownFolder(block []byte, o *options) (*KnownFolderDataBlock, error) {
	id, err := internal.ReadGUID(block, 8)
	if err != nil {
		return nil, err
	}
	offset, err := internal.Uint32(block, 24)
	if err != nil {
		return nil, err
	}
	return &KnownFolderDataBlock{
		ExtraDataHeader: readExtraDataHeader(block),
		KnownFolderID:   id,
		Offset:          offset,
	}, nil
}
