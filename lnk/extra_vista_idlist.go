package lnk

// VistaAndAboveIDListSignature identifies a VistaAndAboveIDListDataBlock.
const VistaAndAboveIDListSignature = 0xA000000C

// VistaAndAboveIDListDataBlock is an alternate target ID list.
type VistaAndAboveIDListDataBlock struct {
	ExtraDataHeader
	Items ShellItems `json:"items"`
}

func (b *VistaAndAboveIDListDataBlock) kind() string { return "VistaAndAboveIDListDataBlock" }

func parseExtraVistaAndAboveIDList(block []byte, o *options) (*VistaAndAboveIDListDataBlock, error) {
	records, _, err := splitShellItems(block, 8, -1)
	if err != nil {
		return nil, err
	}
	items, err := decodeShellItems(records, recordOffsets(records, 8), o)
	if err != nil {
		return nil, err
	}
	return &VistaAndAboveIDListDataBlock{
		ExtraDataHeader: readExtraDataHeader(block),
		Items:           items,
	}, nil
}
