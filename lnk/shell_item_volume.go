package lnk

import (
	"github.com/andrewstucki/lnkparse/internal"
)

// VolumeShellItem names a drive, e.g. "C:\".
type VolumeShellItem struct {
	Indicator byte                 `json:"classTypeIndicator"`
	Flags     VolumeShellItemFlags `json:"flags"`
	// Name is nil when the HAS_NAME flag is unset.
	Name *string `json:"name,omitempty"`
	// Data holds every byte after the indicator.
	Data []byte `json:"data"`
}

// ClassTypeIndicator returns the indicator byte of the record.
func (i *VolumeShellItem) ClassTypeIndicator() byte { return i.Indicator }

func (i *VolumeShellItem) kind() string { return "VolumeShellItem" }

func decodeVolumeShellItem(record []byte, o *options) (*VolumeShellItem, error) {
	if _, err := internal.Slice(record, 0, 3); err != nil {
		return nil, err
	}
	item := &VolumeShellItem{
		Indicator: record[2],
		Flags:     VolumeShellItemFlags(record[2] & 0x0F),
		Data:      append([]byte(nil), record[3:]...),
	}
	if item.Flags.Has(VolumeHasName) {
		name, _, err := internal.ReadString(record, 3, o.encoding)
		if err != nil {
			return nil, err
		}
		if name == "" {
			o.logger.Warn().Uint8("classTypeIndicator", item.Indicator).Msg("volume shell item flags a name but holds none")
		}
		item.Name = &name
	}
	return item, nil
}
