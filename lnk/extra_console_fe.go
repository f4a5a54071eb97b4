package lnk

import (
	"github.com/andrewstucki/lnkparse/internal"
)

// ConsoleFESignature identifies a ConsoleFEDataBlock.
const ConsoleFESignature = 0xA0000004

const consoleFEBlockSize = 0x0000000C

// ConsoleFEDataBlock holds the code page of a console window.
type ConsoleFEDataBlock struct {
	ExtraDataHeader
	CodePage uint32 `json:"codePage"`
}

func (b *ConsoleFEDataBlock) kind() string { return "ConsoleFEDataBlock" }

func parseExtraConsoleFE(block []byte, o *options) (*ConsoleFEDataBlock, error) {
	codePage, err := internal.Uint32(block, 8)
	if err != nil {
		return nil, err
	}
	return &ConsoleFEDataBlock{
		ExtraDataHeader: readExtraDataHeader(block),
		CodePage:        codePage,
	}, nil
}
