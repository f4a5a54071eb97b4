package lnk

// PropertyStoreSignature identifies a PropertyStoreDataBlock.
const PropertyStoreSignature = 0xA0000009

// PropertyStoreDataBlock holds serialized property storages describing the
// target. Its size is computed from the storages rather than fixed.
type PropertyStoreDataBlock struct {
	ExtraDataHeader
	Storages []*PropertyStorage `json:"storages"`

	computedSize uint32
}

// Size is the 8-byte block prefix plus the size of every storage.
func (b *PropertyStoreDataBlock) Size() uint32 { return b.computedSize }

func (b *PropertyStoreDataBlock) kind() string { return "PropertyStoreDataBlock" }

func parseExtraPropertyStore(block []byte, o *options) (*PropertyStoreDataBlock, error) {
	storages, size, err := decodePropertyStorages(block, 8, o)
	if err != nil {
		return nil, err
	}
	return &PropertyStoreDataBlock{
		ExtraDataHeader: readExtraDataHeader(block),
		Storages:        storages,
		computedSize:    uint32(8 + size),
	}, nil
}
