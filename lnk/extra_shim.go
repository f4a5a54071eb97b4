package lnk

import (
	"github.com/andrewstucki/lnkparse/internal"
)

// ShimSignature identifies a ShimDataBlock.
const ShimSignature = 0xA0000008

const shimMinBlockSize = 0x00000088

// ShimDataBlock names the compatibility shim layer applied to the target.
type ShimDataBlock struct {
	ExtraDataHeader
	LayerName string `json:"layerName"`
}

func (b *ShimDataBlock) kind() string { return "ShimDataBlock" }

func parseExtraShim(block []byte, o *options) (*ShimDataBlock, error) {
	name, _, err := internal.ReadUnicode(block, 8)
	if err != nil {
		return nil, err
	}
	return &ShimDataBlock{
		ExtraDataHeader: readExtraDataHeader(block),
		LayerName:       name,
	}, nil
}
