package lnk

import (
	"github.com/andrewstucki/lnkparse/internal"
)

// EnvironmentVariableSignature identifies an EnvironmentVariableDataBlock.
const EnvironmentVariableSignature = 0xA0000001

// size shared by the blocks holding a 260-byte ANSI and a 520-byte Unicode
// target
const targetBlockSize = 0x00000314

// EnvironmentVariableDataBlock holds a target path built from environment
// variables, e.g. "%windir%\explorer.exe".
type EnvironmentVariableDataBlock struct {
	ExtraDataHeader
	TargetANSI    string `json:"targetAnsi"`
	TargetUnicode string `json:"targetUnicode"`
}

func (b *EnvironmentVariableDataBlock) kind() string { return "EnvironmentVariableDataBlock" }

func parseExtraEnvironment(block []byte, o *options) (*EnvironmentVariableDataBlock, error) {
	ansi, unicode, err := readTargetStrings(block, o)
	if err != nil {
		return nil, err
	}
	return &EnvironmentVariableDataBlock{
		ExtraDataHeader: readExtraDataHeader(block),
		TargetANSI:      ansi,
		TargetUnicode:   unicode,
	}, nil
}

// readTargetStrings reads the NUL-padded ANSI target at 8 and the Unicode
// target at 268.
func readTargetStrings(block []byte, o *options) (string, string, error) {
	ansiField, err := internal.Slice(block, 8, 260)
	if err != nil {
		return "", "", err
	}
	unicodeField, err := internal.Slice(block, 268, 520)
	if err != nil {
		return "", "", err
	}
	ansi, _, err := internal.ReadString(ansiField, 0, o.encoding)
	if err != nil {
		return "", "", internal.Rebase(err, 8)
	}
	unicode, _, err := internal.ReadUnicode(unicodeField, 0)
	if err != nil {
		return "", "", internal.Rebase(err, 268)
	}
	return ansi, unicode, nil
}
