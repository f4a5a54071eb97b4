package lnk

import (
	"fmt"

	"github.com/andrewstucki/lnkparse/internal"
)

// DriveType is the type of drive the link target was stored on.
type DriveType uint32

// Drive types.
const (
	DriveUnknown DriveType = iota
	DriveNoRootDir
	DriveRemovable
	DriveFixed
	DriveRemote
	DriveCDROM
	DriveRAMDisk
)

var driveTypeNames = map[DriveType]string{
	DriveUnknown:   "DRIVE_UNKNOWN",
	DriveNoRootDir: "DRIVE_NO_ROOT_DIR",
	DriveRemovable: "DRIVE_REMOVABLE",
	DriveFixed:     "DRIVE_FIXED",
	DriveRemote:    "DRIVE_REMOTE",
	DriveCDROM:     "DRIVE_CDROM",
	DriveRAMDisk:   "DRIVE_RAMDISK",
}

func (d DriveType) String() string {
	if name, ok := driveTypeNames[d]; ok {
		return name
	}
	return fmt.Sprintf("0x%08x", uint32(d))
}

// MarshalText renders the drive type by name.
func (d DriveType) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// a label offset of 0x14 moves the label to a UTF-16 string whose offset
// follows at +0x10
const unicodeVolumeLabelOffset = 0x14

// VolumeID describes the volume holding the link target.
type VolumeID struct {
	Size              uint32    `json:"size"`
	DriveType         DriveType `json:"driveType"`
	DriveSerialNumber uint32    `json:"driveSerialNumber"`
	VolumeLabel       string    `json:"volumeLabel"`
	// IsUnicode is set when the label was stored as UTF-16.
	IsUnicode bool `json:"isUnicode"`
}

func decodeVolumeID(data []byte, offset int, o *options) (*VolumeID, error) {
	size, err := internal.Uint32(data, offset)
	if err != nil {
		return nil, err
	}
	if size < 0x10 {
		return nil, formatError(offset, "volume ID size 0x%x is smaller than its header", size)
	}
	raw, err := internal.Slice(data, offset, int(size))
	if err != nil {
		return nil, err
	}

	volume := &VolumeID{Size: size}
	driveType, _ := internal.Uint32(raw, 4)
	volume.DriveType = DriveType(driveType)
	volume.DriveSerialNumber, _ = internal.Uint32(raw, 8)
	labelOffset, _ := internal.Uint32(raw, 12)

	if labelOffset == unicodeVolumeLabelOffset {
		unicodeOffset, err := internal.Uint32(raw, 16)
		if err != nil {
			return nil, rebase(err, offset)
		}
		label, _, err := internal.ReadUnicode(raw, int(unicodeOffset))
		if err != nil {
			return nil, rebase(err, offset)
		}
		volume.VolumeLabel = label
		volume.IsUnicode = true
		return volume, nil
	}

	label, _, err := internal.ReadString(raw, int(labelOffset), o.encoding)
	if err != nil {
		return nil, rebase(err, offset)
	}
	volume.VolumeLabel = label
	return volume, nil
}
