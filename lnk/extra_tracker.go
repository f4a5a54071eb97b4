package lnk

import (
	"github.com/andrewstucki/lnkparse/internal"
)

// TrackerSignature identifies a TrackerDataBlock.
const TrackerSignature = 0xA0000003

const (
	trackerBlockSize = 0x00000060
	trackerLength    = 0x00000058
	trackerVersion   = 0x00000000
)

// TrackerDataBlock carries the distributed link tracking identifiers of the
// target.
type TrackerDataBlock struct {
	ExtraDataHeader
	Length     uint32  `json:"length"`
	Version    uint32  `json:"version"`
	MachineID  string  `json:"machineId"`
	Droid      [2]GUID `json:"droid"`
	DroidBirth [2]GUID `json:"droidBirth"`
}

func (b *TrackerDataBlock) kind() string { return "TrackerDataBlock" }

func parseExtraTracker(block []byte, o *options) (*TrackerDataBlock, error) {
	if _, err := internal.Slice(block, 0, trackerBlockSize); err != nil {
		return nil, err
	}
	tracker := &TrackerDataBlock{ExtraDataHeader: readExtraDataHeader(block)}
	tracker.Length, _ = internal.Uint32(block, 8)
	tracker.Version, _ = internal.Uint32(block, 12)
	if o.strict {
		if tracker.Length != trackerLength {
			return nil, &TrackerLengthMismatchError{Observed: tracker.Length, Expected: trackerLength}
		}
		if tracker.Version != trackerVersion {
			return nil, &TrackerVersionMismatchError{Observed: tracker.Version, Expected: trackerVersion}
		}
	}

	machineID, _, err := internal.ReadString(block[16:32], 0, internal.ASCII)
	if err != nil {
		return nil, internal.Rebase(err, 16)
	}
	tracker.MachineID = machineID

	for i, offset := range []int{32, 48} {
		tracker.Droid[i], _ = internal.ReadGUID(block, offset)
	}
	for i, offset := range []int{64, 80} {
		tracker.DroidBirth[i], _ = internal.ReadGUID(block, offset)
	}
	return tracker, nil
}
