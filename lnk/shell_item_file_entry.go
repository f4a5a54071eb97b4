package lnk

import (
	"encoding/binary"
	"time"

	"github.com/andrewstucki/lnkparse/internal"
)

// FileEntryShellItem is a file or directory step of the path.
type FileEntryShellItem struct {
	Indicator      byte                    `json:"classTypeIndicator"`
	Flags          FileEntryShellItemFlags `json:"flags"`
	FileSize       *uint32                 `json:"fileSize,omitempty"`
	LastModified   *time.Time              `json:"lastModified,omitempty"`
	FileAttributes FileAttributes          `json:"fileAttributes"`
	PrimaryName    string                  `json:"primaryName"`
	// ExtensionBlock is nil when the trailing bytes are not a file entry
	// extension block; ExtensionData always holds them.
	ExtensionBlock *FileEntryExtensionBlock `json:"extensionBlock,omitempty"`
	ExtensionData  []byte                   `json:"extensionData,omitempty"`
}

// ClassTypeIndicator returns the indicator byte of the record.
func (i *FileEntryShellItem) ClassTypeIndicator() byte { return i.Indicator }

func (i *FileEntryShellItem) kind() string { return "FileEntryShellItem" }

const fileEntryNameOffset = 14

func decodeFileEntryShellItem(record []byte, o *options) (*FileEntryShellItem, error) {
	if _, err := internal.Slice(record, 0, fileEntryNameOffset); err != nil {
		return nil, err
	}

	item := &FileEntryShellItem{
		Indicator:      record[2],
		Flags:          FileEntryShellItemFlags(record[2] & 0x0F),
		LastModified:   internal.DOSDateTime(binary.LittleEndian.Uint16(record[8:10]), binary.LittleEndian.Uint16(record[10:12])),
		FileAttributes: FileAttributes(binary.LittleEndian.Uint16(record[12:14])),
	}
	if size := binary.LittleEndian.Uint32(record[4:8]); size != 0 {
		item.FileSize = &size
	}

	offset := fileEntryNameOffset
	if item.Flags.Has(FileEntryHasUnicodeStrings) {
		name, n, err := internal.ReadUnicode(record, offset)
		if err != nil {
			return nil, err
		}
		item.PrimaryName = name
		offset += n + 2
	} else {
		name, n, err := internal.ReadString(record, offset, o.encoding)
		if err != nil {
			return nil, err
		}
		item.PrimaryName = name
		offset += n + 1
	}
	// the extension block is 2-byte aligned
	offset += offset % 2

	if offset < len(record) {
		item.ExtensionData = append([]byte(nil), record[offset:]...)
		extension, err := decodeFileEntryExtensionBlock(item.ExtensionData, o)
		if err != nil {
			o.logger.Debug().Err(err).Str("name", item.PrimaryName).Msg("keeping file entry extension block as raw bytes")
		} else {
			item.ExtensionBlock = extension
		}
	}
	return item, nil
}
