package lnk

// DarwinSignature identifies a DarwinDataBlock.
const DarwinSignature = 0xA0000006

// DarwinDataBlock holds the application identifier of a Windows Installer
// advertised shortcut.
type DarwinDataBlock struct {
	ExtraDataHeader
	DarwinDataANSI    string `json:"darwinDataAnsi"`
	DarwinDataUnicode string `json:"darwinDataUnicode"`
}

func (b *DarwinDataBlock) kind() string { return "DarwinDataBlock" }

func parseExtraDarwin(block []byte, o *options) (*DarwinDataBlock, error) {
	ansi, unicode, err := readTargetStrings(block, o)
	if err != nil {
		return nil, err
	}
	return &DarwinDataBlock{
		ExtraDataHeader:   readExtraDataHeader(block),
		DarwinDataANSI:    ansi,
		DarwinDataUnicode: unicode,
	}, nil
}
