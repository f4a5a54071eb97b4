package lnk

// IconEnvironmentSignature identifies an IconEnvironmentDataBlock.
const IconEnvironmentSignature = 0xA0000007

// IconEnvironmentDataBlock holds an icon path built from environment
// variables.
type IconEnvironmentDataBlock struct {
	ExtraDataHeader
	TargetANSI    string `json:"targetAnsi"`
	TargetUnicode string `json:"targetUnicode"`
}

func (b *IconEnvironmentDataBlock) kind() string { return "IconEnvironmentDataBlock" }

func parseExtraIconEnvironment(block []byte, o *options) (*IconEnvironmentDataBlock, error) {
	ansi, unicode, err := readTargetStrings(block, o)
	if err != nil {
		return nil, err
	}
	return &IconEnvironmentDataBlock{
		ExtraDataHeader: readExtraDataHeader(block),
		TargetANSI:      ansi,
		TargetUnicode:   unicode,
	}, nil
}
