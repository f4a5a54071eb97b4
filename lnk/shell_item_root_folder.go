package lnk

import (
	"github.com/andrewstucki/lnkparse/internal"
)

// RootFolderShellItem is a shell folder such as "My Computer". It adds no
// segment to the reconstructed path.
type RootFolderShellItem struct {
	Indicator             byte   `json:"classTypeIndicator"`
	SortIndex             uint8  `json:"sortIndex"`
	ShellFolderIdentifier GUID   `json:"shellFolderIdentifier"`
	ExtensionBlock        []byte `json:"extensionBlock,omitempty"`
}

// ClassTypeIndicator returns the indicator byte of the record.
func (i *RootFolderShellItem) ClassTypeIndicator() byte { return i.Indicator }

func (i *RootFolderShellItem) kind() string { return "RootFolderShellItem" }

// FolderName is the display name of well known shell folders.
func (i *RootFolderShellItem) FolderName() (string, bool) {
	name, ok := shellFolderNames[i.ShellFolderIdentifier]
	return name, ok
}

var shellFolderNames = map[GUID]string{
	internal.MustParseGUID("20D04FE0-3AEA-1069-A2D8-08002B30309D"): "My Computer",
	internal.MustParseGUID("450D8FBA-AD25-11D0-98A8-0800361B1103"): "My Documents",
	internal.MustParseGUID("208D2C60-3AEA-1069-A2D7-08002B30309D"): "My Network Places",
	internal.MustParseGUID("F02C1A0D-BE21-4350-88B0-7367FC96EF3C"): "Network",
	internal.MustParseGUID("645FF040-5081-101B-9F08-00AA002F954E"): "Recycle Bin",
	internal.MustParseGUID("21EC2020-3AEA-1069-A2DD-08002B30309D"): "Control Panel",
	internal.MustParseGUID("26EE0668-A00A-44D7-9371-BEB064C98683"): "Control Panel",
	internal.MustParseGUID("871C5380-42A0-1069-A2EA-08002B30309D"): "Internet Explorer",
	internal.MustParseGUID("59031A47-3F72-44A7-89C5-5595FE6B30EE"): "Users Files",
	internal.MustParseGUID("031E4825-7B94-4DC3-B131-E946B44C8DD5"): "Libraries",
	internal.MustParseGUID("679F85CB-0220-4080-B29B-5540CC05AAB6"): "Quick Access",
}

func decodeRootFolderShellItem(record []byte, o *options) (*RootFolderShellItem, error) {
	if _, err := internal.Slice(record, 0, 20); err != nil {
		return nil, err
	}
	item := &RootFolderShellItem{
		Indicator:      record[2],
		SortIndex:      record[3],
		ExtensionBlock: append([]byte(nil), record[20:]...),
	}
	copy(item.ShellFolderIdentifier[:], record[4:20])
	return item, nil
}
