package lnk

import (
	"time"

	"github.com/andrewstucki/lnkparse/internal"
)

// FileEntryExtensionSignature identifies the extension block trailing file
// entry shell items written since Windows XP.
const FileEntryExtensionSignature = 0xBEEF0004

// NTFSFileReference locates an MFT entry.
type NTFSFileReference struct {
	MFTEntryIndex  uint64 `json:"mftEntryIndex"`
	SequenceNumber uint16 `json:"sequenceNumber"`
}

// FileEntryExtensionBlock carries the long and localized names of a file
// entry plus timestamps the short entry has no room for.
type FileEntryExtensionBlock struct {
	Size          uint16             `json:"size"`
	Version       uint16             `json:"version"`
	CreationTime  *time.Time         `json:"creationTime,omitempty"`
	AccessTime    *time.Time         `json:"accessTime,omitempty"`
	FileReference *NTFSFileReference `json:"fileReference,omitempty"`
	LongName      string             `json:"longName,omitempty"`
	LocalizedName *string            `json:"localizedName,omitempty"`
}

func decodeFileEntryExtensionBlock(data []byte, o *options) (*FileEntryExtensionBlock, error) {
	size, err := internal.Uint16(data, 0)
	if err != nil {
		return nil, err
	}
	raw, err := internal.Slice(data, 0, int(size))
	if err != nil {
		return nil, err
	}
	version, err := internal.Uint16(raw, 2)
	if err != nil {
		return nil, err
	}
	signature, err := internal.Uint32(raw, 4)
	if err != nil {
		return nil, err
	}
	if signature != FileEntryExtensionSignature {
		return nil, &SignatureMismatchError{Block: "FileEntryExtensionBlock", Observed: signature, Expected: FileEntryExtensionSignature}
	}

	block := &FileEntryExtensionBlock{Size: size, Version: version}
	if block.CreationTime, err = internal.ReadDOSDateTime(raw, 8); err != nil {
		return nil, err
	}
	if block.AccessTime, err = internal.ReadDOSDateTime(raw, 12); err != nil {
		return nil, err
	}

	offset := 18
	if version >= 7 {
		index, err := internal.Slice(raw, 20, 6)
		if err != nil {
			return nil, err
		}
		sequence, err := internal.Uint16(raw, 26)
		if err != nil {
			return nil, err
		}
		reference := &NTFSFileReference{SequenceNumber: sequence}
		for i := len(index) - 1; i >= 0; i-- {
			reference.MFTEntryIndex = reference.MFTEntryIndex<<8 | uint64(index[i])
		}
		block.FileReference = reference
		offset = 36
	}
	if version < 3 {
		return block, nil
	}

	longStringSize, err := internal.Uint16(raw, offset)
	if err != nil {
		return nil, err
	}
	offset += 2
	if version >= 9 {
		offset += 4
	}
	if version >= 8 {
		offset += 4
	}

	// the trailing 2 bytes hold the offset of the block version field
	body := raw[:len(raw)-2]
	name, n, err := internal.ReadUnicode(body, offset)
	if err != nil {
		return nil, err
	}
	block.LongName = name
	offset += n + 2

	if longStringSize > 0 && offset < len(body) {
		var localized string
		if version >= 7 {
			localized, _, err = internal.ReadUnicode(body, offset)
		} else {
			localized, _, err = internal.ReadString(body, offset, o.encoding)
		}
		if err != nil {
			return nil, err
		}
		block.LocalizedName = &localized
	}
	return block, nil
}
